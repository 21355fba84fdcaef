package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/meridianhq/payroll-backend-go/internal/domain/user"
	"github.com/meridianhq/payroll-backend-go/internal/handler/http/middleware"
	"github.com/meridianhq/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-meridian"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/", payrollHandler.List)
				r.With(middleware.RequirePermission(user.PermissionPayrollPrepare)).Post("/", payrollHandler.Create)

				r.Route("/master", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/", payrollHandler.GetMaster)
					r.With(middleware.RequirePermission(user.PermissionPayrollManageMaster)).Put("/", payrollHandler.UpsertMaster)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/", payrollHandler.Get)
					r.With(middleware.RequirePermission(user.PermissionPayrollPrepare)).Put("/", payrollHandler.Update)
					r.With(middleware.RequirePermission(user.PermissionPayrollPrepare)).Delete("/", payrollHandler.Delete)

					r.With(middleware.RequirePermission(user.PermissionPayrollSubmit)).Post("/submit", payrollHandler.Submit)
					r.With(middleware.RequirePermission(user.PermissionPayrollApprove)).Post("/approve", payrollHandler.Approve)
					r.With(middleware.RequirePermission(user.PermissionPayrollReject)).Post("/reject", payrollHandler.Reject)
					r.With(middleware.RequirePermission(user.PermissionPayrollMarkPaid)).Post("/mark-paid", payrollHandler.MarkPaid)
					r.With(middleware.RequirePermission(user.PermissionPayrollReopen)).Post("/reopen", payrollHandler.Reopen)
				})
			})
		})
	})
	return r
}
