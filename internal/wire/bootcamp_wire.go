package wire

import (
	"bootcamp-platform/internal/adaptor"
	"bootcamp-platform/internal/data/repository"
	"bootcamp-platform/pkg/middleware"
	"bootcamp-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBootcamp(
	r chi.Router,
	bootcampHandler *adaptor.BootcampHandler,
	registrationHandler *adaptor.RegistrationHandler,
	submissionHandler *adaptor.SubmissionHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/bootcamps - catalog listing (public, anyone can view)
	r.Get("/api/bootcamps", bootcampHandler.GetBootcamps)

	// GET /api/bootcamps/{id} - bootcamp details (public)
	r.Get("/api/bootcamps/{id}", bootcampHandler.GetBootcampByID)

	// ==================== PROTECTED ROUTES ====================
	// Enrollment and project submissions require a logged-in user
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthToken(config.JWT, log))

		r.Post("/api/bootcamps/{id}/register", registrationHandler.Register)
		r.Post("/api/bootcamps/{id}/submit-project", submissionHandler.SubmitProject)
		r.Get("/api/bootcamps/{id}/my-submissions", submissionHandler.GetMySubmissions)
	})

	// ==================== ADMIN ROUTES ====================
	// Mutations share the public paths but sit behind the admin gate
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthToken(config.JWT, log)) // Must be authenticated
		r.Use(middleware.Admin(repo.User, log))      // Must be an approved admin

		r.Post("/api/bootcamps", bootcampHandler.CreateBootcamp)
		r.Put("/api/bootcamps/{id}", bootcampHandler.UpdateBootcamp)
		r.Put("/api/bootcamps/{id}/status", bootcampHandler.UpdateBootcampStatus)
		r.Delete("/api/bootcamps/{id}", bootcampHandler.DeleteBootcamp)
	})
}
