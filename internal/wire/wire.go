package wire

import (
	"net/http"

	"bootcamp-platform/internal/adaptor"
	"bootcamp-platform/internal/data/repository"
	"bootcamp-platform/internal/usecase"
	"bootcamp-platform/pkg/mailer"
	"bootcamp-platform/pkg/middleware"
	"bootcamp-platform/pkg/storage"
	"bootcamp-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(
	repo *repository.Repository,
	fileStorage storage.FileStorage,
	m *mailer.Mailer,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	// Initialize services and handlers
	service := usecase.NewService(repo, fileStorage, m, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	// Setup router
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, config, logger)
	wireBootcamp(r, handler.Bootcamp, handler.Registration, handler.Submission, repo, config, logger)
	wireRegistration(r, handler.Registration, config, logger)
	wireSubmission(r, handler.Submission, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
