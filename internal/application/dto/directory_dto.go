package dto

import (
	"time"

	"github.com/jhoicas/Directorio-api/internal/domain/entity"
)

// RosterEntryResponse una entidad del directorio fusionado en el wire.
type RosterEntryResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	State       string `json:"state"`
	// PublicationCount se omite para cuentas privilegiadas: la UI no lo
	// muestra y el wire no lo filtra dos veces.
	PublicationCount *int       `json:"publication_count,omitempty"`
	IsPrivileged     bool       `json:"is_privileged"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
}

// DirectoryResponse listado del directorio.
type DirectoryResponse struct {
	Entries []RosterEntryResponse `json:"entries"`
	Total   int                   `json:"total"`
}

// ToRosterEntryResponse proyecta la entidad de dominio al wire.
func ToRosterEntryResponse(e entity.RosterEntity) RosterEntryResponse {
	resp := RosterEntryResponse{
		ID:           e.ID,
		Kind:         string(e.Kind),
		DisplayName:  e.DisplayName,
		Email:        e.Email,
		Role:         string(e.Role),
		State:        e.State.String(),
		IsPrivileged: e.IsPrivileged,
		CreatedAt:    e.CreatedAt,
	}
	if !e.IsPrivileged {
		count := e.PublicationCount
		resp.PublicationCount = &count
	}
	return resp
}

// ToDirectoryResponse proyecta el roster completo.
func ToDirectoryResponse(roster []entity.RosterEntity) DirectoryResponse {
	entries := make([]RosterEntryResponse, 0, len(roster))
	for _, e := range roster {
		entries = append(entries, ToRosterEntryResponse(e))
	}
	return DirectoryResponse{Entries: entries, Total: len(entries)}
}

// MetricsResponse métricas poblacionales del directorio.
type MetricsResponse struct {
	ActiveIndividuals int `json:"active_individuals"`
	ActiveClients     int `json:"active_clients"`
	DeletedClients    int `json:"deleted_clients"`
	NewWithin30Days   int `json:"new_within_30_days"`
}
