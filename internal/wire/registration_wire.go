package wire

import (
	"bootcamp-platform/internal/adaptor"
	"bootcamp-platform/pkg/middleware"
	"bootcamp-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRegistration(
	r chi.Router,
	registrationHandler *adaptor.RegistrationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	// GET /api/registrations/me - the caller's enrollment history
	r.With(middleware.AuthToken(config.JWT, log)).Get("/api/registrations/me", registrationHandler.GetMyRegistrations)
}
