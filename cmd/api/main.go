package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Directorio-api/internal/application/auth"
	"github.com/jhoicas/Directorio-api/internal/application/invitation"
	"github.com/jhoicas/Directorio-api/internal/application/metrics"
	"github.com/jhoicas/Directorio-api/internal/application/publications"
	"github.com/jhoicas/Directorio-api/internal/application/roster"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/clipboard"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/export"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/localcache"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/restapi"
	httpRouter "github.com/jhoicas/Directorio-api/internal/interfaces/http"
	"github.com/jhoicas/Directorio-api/pkg/config"
	"github.com/jhoicas/Directorio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	kvRepo := postgres.NewKVRepository(pool)
	if err := kvRepo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("esquema de la caché local")
	}

	// Caché local: un solo escritor serializa todas las mutaciones.
	actor := localcache.NewActor(kvRepo)
	defer actor.Close()
	store := localcache.NewStore(actor, log.Component("localcache"))

	// Cliente del backend del directorio.
	api := restapi.NewClient(restapi.Config{
		BaseURL: cfg.Backend.BaseURL,
		Token:   cfg.Backend.Token,
		Timeout: time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
	})

	counter := publications.NewCounter(publications.NewAliasOwnerResolver())
	rosterSvc := roster.NewService(api, counter, log.Component("roster"))
	metricsSvc := metrics.NewService(api, log.Component("metrics"))
	invitationSvc := invitation.NewService(api, store, clipboard.New(), log.Component("invitation"))

	authUC := auth.NewUseCase(cfg.Admin, store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Directorio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RosterSvc:     rosterSvc,
		MetricsSvc:    metricsSvc,
		InvitationSvc: invitationSvc,
		AuthUC:        authUC,
		API:           api,
		PDF:           export.NewRosterPDFGenerator(),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
