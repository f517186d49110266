package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ecogestion/raee-api/internal/application/alerts"
	"github.com/ecogestion/raee-api/internal/application/analytics"
	"github.com/ecogestion/raee-api/internal/application/auth"
	"github.com/ecogestion/raee-api/internal/application/entries"
	"github.com/ecogestion/raee-api/internal/application/indicators"
	"github.com/ecogestion/raee-api/internal/application/reports"
	"github.com/ecogestion/raee-api/internal/application/usecase"
	"github.com/ecogestion/raee-api/internal/infrastructure/storage"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	UserUC      *usecase.UserUseCase
	EntryUC     *entries.UseCase
	ReportUC    *reports.UseCase
	AlertUC     *alerts.UseCase
	AnalyticsUC *analytics.UseCase
	IndicatorUC *indicators.UseCase
	Storage     *storage.LocalStorage
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	entryHandler := NewEntryHandler(deps.EntryUC, deps.ReportUC)
	dashboardHandler := NewDashboardHandler(deps.AnalyticsUC)
	alertHandler := NewAlertHandler(deps.AlertUC)
	indicatorHandler := NewIndicatorHandler(deps.IndicatorUC, deps.AnalyticsUC)
	uploadHandler := NewUploadHandler(deps.Storage)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	authProtected := authGroup.Group("/", AuthMiddleware(deps.JWTSecret))
	authProtected.Get("/me", authHandler.Me)
	authProtected.Get("/verify", authHandler.Verify)
	authProtected.Put("/change-password", authHandler.ChangePassword)

	// Gestión de usuarios (solo admin)
	adminGroup := authProtected.Group("/", RequireAdmin())
	adminGroup.Post("/register", authHandler.Register)
	adminGroup.Get("/users", authHandler.ListUsers)
	adminGroup.Put("/users/:id/deactivate", authHandler.DeactivateUser)

	// Datos operativos (requieren Bearer Token; las mutaciones validan permisos
	// del rol en el caso de uso)
	data := api.Group("/data", AuthMiddleware(deps.JWTSecret))

	data.Post("/waste-entry", entryHandler.Create)
	data.Put("/entry/:entryId/status", entryHandler.UpdateStatus)
	data.Get("/entry/:entryId/history", entryHandler.History)
	data.Get("/recent-entries", entryHandler.Recent)
	data.Get("/latest-entry", entryHandler.Latest)

	data.Get("/capacity", dashboardHandler.Capacity)
	data.Get("/waste-distribution", dashboardHandler.Distribution)
	data.Get("/weekly-waste", dashboardHandler.Weekly)
	data.Get("/monthly", dashboardHandler.Monthly)
	data.Get("/today-stats", dashboardHandler.TodayStats)
	data.Get("/stats-summary", dashboardHandler.StatsSummary)
	data.Get("/dashboard", dashboardHandler.Dashboard)

	data.Get("/reports", entryHandler.Report)
	data.Get("/reports/pdf", entryHandler.ReportPDF)

	data.Get("/environmental", indicatorHandler.Summary)
	data.Post("/environmental", indicatorHandler.Record)

	data.Get("/alerts", alertHandler.List)
	data.Post("/alerts", alertHandler.Create)
	data.Put("/alerts/:id/resolve", alertHandler.Resolve)
	data.Put("/alerts/:id/reactivate", alertHandler.Reactivate)
	data.Put("/alerts/:id/read", alertHandler.MarkRead)

	data.Post("/upload-image", uploadHandler.UploadImage)
}
