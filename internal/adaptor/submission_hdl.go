package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"bootcamp-platform/internal/dto/request"
	"bootcamp-platform/internal/usecase"
	"bootcamp-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SubmissionHandler struct {
	service usecase.SubmissionService
	log     *zap.Logger
}

func NewSubmissionHandler(service usecase.SubmissionService, log *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		log:     log,
	}
}

// SubmitProject handles POST /api/bootcamps/{id}/submit-project.
// The body is multipart form data carrying projectNumber and the PDF.
func (h *SubmissionHandler) SubmitProject(w http.ResponseWriter, r *http.Request) {
	// Get user ID from context (set by auth middleware)
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bootcampID := chi.URLParam(r, "id")
	if bootcampID == "" {
		utils.ResponseBadRequest(w, "Bootcamp ID is required", nil)
		return
	}

	projectNumber, err := strconv.Atoi(r.FormValue("projectNumber"))
	if err != nil {
		utils.ResponseBadRequest(w, "projectNumber must be 1 or 2", nil)
		return
	}

	// Validate request
	req := request.SubmitProjectRequest{ProjectNumber: projectNumber}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	file, err := utils.ParsePDFUpload(r, "file")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}
	defer file.File.Close()

	response, err := h.service.Submit(r.Context(), userID, bootcampID, projectNumber, file)
	if err != nil {
		h.handleServiceError(w, err, "submit project")
		return
	}

	utils.ResponseCreated(w, "Project submitted successfully", response)
}

// GetMySubmissions handles GET /api/bootcamps/{id}/my-submissions
func (h *SubmissionHandler) GetMySubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bootcampID := chi.URLParam(r, "id")
	if bootcampID == "" {
		utils.ResponseBadRequest(w, "Bootcamp ID is required", nil)
		return
	}

	response, err := h.service.ListMine(r.Context(), userID, bootcampID)
	if err != nil {
		h.handleServiceError(w, err, "list submissions")
		return
	}

	utils.ResponseSuccess(w, "Submissions retrieved successfully", response)
}

// ReviewSubmission handles PUT /api/admin/submissions/{id}/review (admin only)
func (h *SubmissionHandler) ReviewSubmission(w http.ResponseWriter, r *http.Request) {
	// Get reviewer ID from context (set by auth middleware)
	reviewerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	submissionID := chi.URLParam(r, "id")
	if submissionID == "" {
		utils.ResponseBadRequest(w, "Submission ID is required", nil)
		return
	}

	var req request.ReviewSubmissionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Review(r.Context(), reviewerID, submissionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "review submission")
		return
	}

	utils.ResponseSuccess(w, "Submission reviewed successfully", response)
}

// handleServiceError handles errors for submission operations
func (h *SubmissionHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already submitted"),
		strings.Contains(errMsg, "cannot re-upload"):
		h.log.Warn(operation+" failed - slot conflict", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
