package wire

import (
	"bootcamp-platform/internal/adaptor"
	"bootcamp-platform/internal/data/repository"
	"bootcamp-platform/pkg/middleware"
	"bootcamp-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSubmission(
	r chi.Router,
	submissionHandler *adaptor.SubmissionHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/submissions", func(r chi.Router) {
		r.Use(middleware.AuthToken(config.JWT, log)) // Must be authenticated
		r.Use(middleware.Admin(repo.User, log))      // Must be an approved admin

		// PUT /api/admin/submissions/{id}/review
		r.Put("/{id}/review", submissionHandler.ReviewSubmission)
	})
}
