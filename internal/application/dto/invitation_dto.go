package dto

import (
	"time"

	"github.com/jhoicas/Directorio-api/internal/domain/entity"
)

// CreateInvitationRequest cuerpo de emisión de una invitación.
type CreateInvitationRequest struct {
	Email string `json:"email"`
}

// InvitationResponse una invitación en el wire. Code solo viene poblado para
// invitaciones emitidas desde esta instancia: el remoto nunca lo devuelve.
type InvitationResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code,omitempty"`
	Email     string     `json:"email,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	CreatedBy string     `json:"created_by,omitempty"`
	Active    bool       `json:"active"`
}

// ToInvitationResponse proyecta la entidad al wire.
func ToInvitationResponse(inv entity.Invitation) InvitationResponse {
	resp := InvitationResponse{
		ID:        inv.ID,
		Code:      inv.Code,
		Email:     inv.Email,
		CreatedBy: inv.CreatedBy,
		Active:    inv.Active,
	}
	if !inv.CreatedAt.IsZero() {
		t := inv.CreatedAt
		resp.CreatedAt = &t
	}
	return resp
}

// ToInvitationListResponse proyecta el ledger completo.
func ToInvitationListResponse(list []entity.Invitation) []InvitationResponse {
	out := make([]InvitationResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, ToInvitationResponse(inv))
	}
	return out
}
