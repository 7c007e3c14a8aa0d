package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Directorio-api/internal/application/auth"
	"github.com/jhoicas/Directorio-api/internal/application/invitation"
	"github.com/jhoicas/Directorio-api/internal/application/metrics"
	"github.com/jhoicas/Directorio-api/internal/application/ports"
	"github.com/jhoicas/Directorio-api/internal/application/roster"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/export"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RosterSvc     *roster.Service
	MetricsSvc    *metrics.Service
	InvitationSvc *invitation.Service
	AuthUC        *auth.UseCase
	API           ports.DirectoryAPI
	PDF           *export.RosterPDFGenerator
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de operador admin)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleAdmin))

	// Directorio (protegido)
	directory := protected.Group("/directory")
	directoryHandler := NewDirectoryHandler(deps.RosterSvc, deps.API, deps.PDF)
	metricsHandler := NewMetricsHandler(deps.MetricsSvc)
	directory.Get("/", directoryHandler.List)
	directory.Get("/metrics", metricsHandler.Global)
	directory.Get("/export/xml", directoryHandler.ExportXML)
	directory.Get("/export/pdf", directoryHandler.ExportPDF)
	directory.Delete("/individuals/:id", directoryHandler.DeleteIndividual)
	directory.Delete("/clients/:id", directoryHandler.DeleteClient)

	// Invitaciones (protegido)
	invitations := protected.Group("/invitations")
	invitationHandler := NewInvitationHandler(deps.InvitationSvc)
	invitations.Get("/", invitationHandler.List)
	invitations.Post("/", invitationHandler.Create)
	invitations.Delete("/:id", invitationHandler.Delete)
}
