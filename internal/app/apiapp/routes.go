package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ivankudzin/askbox/backend/internal/config"
	adminsvc "github.com/ivankudzin/askbox/backend/internal/services/admins"
	authsvc "github.com/ivankudzin/askbox/backend/internal/services/auth"
	modsvc "github.com/ivankudzin/askbox/backend/internal/services/moderation"
	reportsvc "github.com/ivankudzin/askbox/backend/internal/services/reports"
	"github.com/ivankudzin/askbox/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	ModerationService *modsvc.Service
	ReportService     *reportsvc.Service
	AdminService      *adminsvc.Service
	JWTManager        *authsvc.JWTManager
	Logger            *zap.Logger
	Config            config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	adminUsersHandler := handlers.NewAdminUsersHandler(deps.ModerationService, deps.AdminService)
	adminReportsHandler := handlers.NewAdminReportsHandler(deps.ModerationService)
	adminManageHandler := handlers.NewAdminManageHandler(deps.AdminService)
	reportHandler := handlers.NewReportHandler(deps.ReportService)

	authMW := AuthMiddleware(deps.JWTManager, deps.Logger)
	adminRoleMW := RequireRole("ADMIN")
	punishmentMW := PunishmentMiddleware(deps.ModerationService, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/admin", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Use(authMW, adminRoleMW)
			r.Get("/", adminUsersHandler.List)
			r.Post("/actions", adminUsersHandler.Action)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(authMW, adminRoleMW)
			r.Get("/", adminReportsHandler.List)
			r.Post("/actions", adminReportsHandler.Action)
			r.Get("/preview", adminReportsHandler.Preview)
		})

		// The manage surface is gated by the static admin key, not JWT.
		r.Route("/manage", func(r chi.Router) {
			r.Get("/", adminManageHandler.List)
			r.Post("/", adminManageHandler.Add)
			r.Patch("/{id}", adminManageHandler.Update)
			r.Delete("/{id}", adminManageHandler.Delete)
			r.Head("/key", adminManageHandler.CheckKey)
		})
	})

	r.With(authMW, punishmentMW).Post("/report", reportHandler.Create)
}
