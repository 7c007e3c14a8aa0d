package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Directorio-api/internal/application/dto"
	"github.com/jhoicas/Directorio-api/internal/application/invitation"
	"github.com/jhoicas/Directorio-api/internal/domain/entity"
)

// InvitationHandler expone el ledger de invitaciones reconciliado.
type InvitationHandler struct {
	svc *invitation.Service
}

// NewInvitationHandler construye el handler de invitaciones.
func NewInvitationHandler(svc *invitation.Service) *InvitationHandler {
	return &InvitationHandler{svc: svc}
}

// List godoc
// @Summary      Listar invitaciones reconciliadas
// @Tags         invitations
// @Produce      json
// @Param        all  query  bool  false  "true devuelve el ledger completo, incluidas consumidas y placeholders"
// @Success      200  {array}  dto.InvitationResponse
// @Router       /api/invitations [get]
func (h *InvitationHandler) List(c *fiber.Ctx) error {
	merged, err := h.svc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !c.QueryBool("all") {
		merged = invitation.Visible(merged, time.Now())
	}
	return c.JSON(dto.ToInvitationListResponse(merged))
}

// Create godoc
// @Summary      Emitir una invitación
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  false  "email opcional del invitado"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/invitations [post]
func (h *InvitationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	inv, err := h.svc.Create(c.Context(), in.Email)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToInvitationResponse(*inv))
}

// Delete godoc
// @Summary      Revocar una invitación
// @Tags         invitations
// @Produce      json
// @Param        id  path  string  true  "id de la invitación (servidor o local-*)"
// @Success      204
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invitations/{id} [delete]
func (h *InvitationHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	// El id basta para revocar: la forma del id decide si hay borrado remoto.
	if err := h.svc.Revoke(c.Context(), entity.Invitation{ID: id}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
