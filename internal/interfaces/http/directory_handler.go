package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Directorio-api/internal/application/dto"
	"github.com/jhoicas/Directorio-api/internal/application/ports"
	"github.com/jhoicas/Directorio-api/internal/application/roster"
	"github.com/jhoicas/Directorio-api/internal/domain"
	"github.com/jhoicas/Directorio-api/internal/domain/entity"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/export"
)

// DirectoryHandler expone el roster fusionado: listado con filtro de estado,
// borrados y exportaciones.
type DirectoryHandler struct {
	svc *roster.Service
	api ports.DirectoryAPI
	pdf *export.RosterPDFGenerator
}

// NewDirectoryHandler construye el handler del directorio.
func NewDirectoryHandler(svc *roster.Service, api ports.DirectoryAPI, pdf *export.RosterPDFGenerator) *DirectoryHandler {
	return &DirectoryHandler{svc: svc, api: api, pdf: pdf}
}

// List godoc
// @Summary      Listar el directorio fusionado
// @Tags         directory
// @Produce      json
// @Param        state  query  string  false  "active (por defecto) | deleted | all"
// @Success      200    {object}  dto.DirectoryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/directory [get]
func (h *DirectoryHandler) List(c *fiber.Ctx) error {
	state := c.Query("state", "active")
	switch state {
	case "active", "deleted", "all":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "state debe ser active, deleted o all"})
	}

	filter := roster.Filter{IncludeDeleted: state != "active"}
	// Si esta descarga quedó superada por otra más reciente, el snapshot
	// vigente es el de la ganadora; se sirve ese.
	h.svc.Refresh(c.Context(), filter)
	entries := filterByState(h.svc.Current(), state)
	return c.JSON(dto.ToDirectoryResponse(entries))
}

// DeleteIndividual godoc
// @Summary      Borrar una cuenta individual en el backend
// @Tags         directory
// @Produce      json
// @Param        id  path  string  true  "id de la cuenta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/directory/individuals/{id} [delete]
func (h *DirectoryHandler) DeleteIndividual(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.api.DeleteIndividual(c.Context(), id); err != nil {
		return deleteError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteClient godoc
// @Summary      Borrar una cuenta cliente en el backend
// @Tags         directory
// @Produce      json
// @Param        id  path  string  true  "id de la cuenta (con o sin prefijo client-)"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/directory/clients/{id} [delete]
func (h *DirectoryHandler) DeleteClient(c *fiber.Ctx) error {
	// El roster sirve ids de cliente con namespacing; el backend los conoce
	// sin prefijo.
	id := strings.TrimPrefix(c.Params("id"), entity.ClientIDPrefix)
	if err := h.api.DeleteClient(c.Context(), id); err != nil {
		return deleteError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportXML godoc
// @Summary      Exportar el directorio como XML
// @Tags         directory
// @Produce      xml
// @Success      200
// @Router       /api/directory/export/xml [get]
func (h *DirectoryHandler) ExportXML(c *fiber.Ctx) error {
	entries := filterByState(h.svc.BuildRoster(c.Context(), roster.Filter{}), "active")
	data, err := export.RosterXML(entries, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="directorio.xml"`)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar el directorio como PDF
// @Tags         directory
// @Produce      application/pdf
// @Success      200
// @Router       /api/directory/export/pdf [get]
func (h *DirectoryHandler) ExportPDF(c *fiber.Ctx) error {
	entries := filterByState(h.svc.BuildRoster(c.Context(), roster.Filter{}), "active")
	data, err := h.pdf.Generate(entries, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="directorio.pdf"`)
	return c.Send(data)
}

func filterByState(all []entity.RosterEntity, state string) []entity.RosterEntity {
	if state == "all" {
		return all
	}
	out := make([]entity.RosterEntity, 0, len(all))
	for _, e := range all {
		switch state {
		case "active":
			if e.State.IsActive() {
				out = append(out, e)
			}
		case "deleted":
			if e.State.IsDeleted() {
				out = append(out, e)
			}
		}
	}
	return out
}

// deleteError traduce los errores del backend a respuestas visibles: el
// borrado es una mutación explícita del operador y su fallo nunca se degrada
// en silencio.
func deleteError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la cuenta no existe en el backend"})
	}
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: err.Error()})
}
