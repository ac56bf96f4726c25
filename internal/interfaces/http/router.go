package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reservas-canchas/internal/application/audit"
	"github.com/jhoicas/reservas-canchas/internal/application/auth"
	"github.com/jhoicas/reservas-canchas/internal/application/usecase"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CourtUC     *usecase.CourtUseCase
	UserUC      *usecase.UserUseCase
	AuditSvc    *audit.Service
	AuditExport *audit.ExportUseCase
	Sessions    SessionLoader
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.Sessions)
	optionalAuth := OptionalAuth(deps.JWTSecret, deps.Sessions)

	// Auth: register público; login y logout aceptan sesión opcional
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", optionalAuth, authHandler.Login)
	authGroup.Post("/logout", optionalAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Canchas (protegido; la política por campo se aplica en el caso de uso)
	courtHandler := NewCourtHandler(deps.CourtUC)
	courts := api.Group("/courts", requireAuth)
	courts.Get("/", courtHandler.List)
	courts.Get("/permissions", courtHandler.Permissions)
	courts.Get("/:id", courtHandler.GetByID)
	courts.Post("/", courtHandler.Create)
	courts.Patch("/:id", courtHandler.Update)
	courts.Put("/:id/availability", courtHandler.SetAvailability)
	courts.Delete("/:id", courtHandler.Delete)
	courts.Post("/:id/schedules", courtHandler.AddSchedule)
	courts.Delete("/:id/schedules/:scheduleId", courtHandler.DeleteSchedule)
	api.Get("/court-types", requireAuth, courtHandler.ListTypes)

	// Bitácora: cualquier sesión registra acciones; visor y exportación solo admin
	auditHandler := NewAuditHandler(deps.AuditSvc, deps.AuditExport)
	auditGroup := api.Group("/audit", requireAuth)
	auditGroup.Post("/actions", auditHandler.RecordAction)
	auditGroup.Get("/", RequireRole(entity.RoleAdmin), auditHandler.List)
	auditGroup.Get("/export.pdf", RequireRole(entity.RoleAdmin), auditHandler.ExportPDF)

	// Usuarios: consulta para el visor de bitácora
	userHandler := NewUserHandler(deps.UserUC)
	api.Get("/users/:id", requireAuth, RequireRole(entity.RoleAdmin), userHandler.GetByID)
}
