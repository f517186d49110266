package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	_ "github.com/ecogestion/raee-api/docs"
	"github.com/ecogestion/raee-api/internal/application/alerts"
	"github.com/ecogestion/raee-api/internal/application/analytics"
	"github.com/ecogestion/raee-api/internal/application/auth"
	"github.com/ecogestion/raee-api/internal/application/entries"
	"github.com/ecogestion/raee-api/internal/application/indicators"
	"github.com/ecogestion/raee-api/internal/application/reports"
	"github.com/ecogestion/raee-api/internal/application/usecase"
	infrapdf "github.com/ecogestion/raee-api/internal/infrastructure/pdf"
	"github.com/ecogestion/raee-api/internal/infrastructure/postgres"
	"github.com/ecogestion/raee-api/internal/infrastructure/storage"
	httpRouter "github.com/ecogestion/raee-api/internal/interfaces/http"
	"github.com/ecogestion/raee-api/pkg/config"
	"github.com/ecogestion/raee-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	entryRepo := postgres.NewWasteEntryRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	indicatorRepo := postgres.NewIndicatorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	zoneMax := decimal.NewFromInt(int64(cfg.Capacity.ZoneMaxTonnes))

	alertUC := alerts.NewUseCase(txRunner, alertRepo, entryRepo, userRepo, zoneMax, log)
	entryUC := entries.NewUseCase(entryRepo, alertUC, log)
	analyticsUC := analytics.NewUseCase(entryRepo, indicatorRepo, alertUC, entryUC, zoneMax)
	indicatorUC := indicators.NewUseCase(indicatorRepo, alertUC, log)

	userUC := usecase.NewUserUseCase(userRepo)

	// Primer arranque: sin un admin nadie puede iniciar sesión ni registrar
	// usuarios, y las alertas automáticas no tienen autor
	created, err := userUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.FullName)
	if err != nil {
		log.Fatal().Err(err).Msg("admin inicial")
	}
	if created {
		log.Warn().
			Str("username", cfg.Admin.Username).
			Msg("admin inicial creado; cambiar la contraseña por defecto")
	}

	// Barrido inicial: levanta alertas de zonas que ya venían cargadas
	if err := alertUC.CheckAllZones(ctx); err != nil {
		log.Error().Err(err).Msg("verificación inicial de capacidad")
	}

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := reports.NewUseCase(entryUC, pdfGenerator, log)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	store, err := storage.NewLocalStorage(cfg.Storage.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de uploads")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RAEE API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Static("/uploads", store.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		EntryUC:     entryUC,
		ReportUC:    reportUC,
		AlertUC:     alertUC,
		AnalyticsUC: analyticsUC,
		IndicatorUC: indicatorUC,
		Storage:     store,
		JWTSecret:   cfg.JWT.Secret,
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
