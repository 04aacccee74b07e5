package wire

import (
	"bootcamp-platform/internal/adaptor"
	"bootcamp-platform/pkg/middleware"
	"bootcamp-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/logout", authHandler.Logout)
	r.Post("/api/auth/verify-email", authHandler.VerifyEmail)
	r.Post("/api/auth/approve-admin", authHandler.ApproveAdmin)
	r.Post("/api/auth/forgot-password", authHandler.ForgotPassword)
	r.Post("/api/auth/reset-password/{token}", authHandler.ResetPassword)

	// ==================== PROTECTED ROUTES ====================
	// Session introspection for the SPA
	r.With(middleware.AuthToken(config.JWT, log)).Get("/api/auth/check-auth", authHandler.CheckAuth)
}
