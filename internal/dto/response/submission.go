package response

import (
	"time"

	"bootcamp-platform/internal/data/entity"
)

type SubmissionResponse struct {
	ID            string                  `json:"id"`
	BootcampID    string                  `json:"bootcamp_id"`
	ProjectNumber int                     `json:"project_number"`
	FileURL       string                  `json:"file_url"`
	Status        entity.SubmissionStatus `json:"status"`
	Feedback      *string                 `json:"feedback,omitempty"`
	ReviewedAt    *time.Time              `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

func SubmissionToResponse(submission *entity.ProjectSubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:            submission.ID.Hex(),
		BootcampID:    submission.BootcampID.Hex(),
		ProjectNumber: submission.ProjectNumber,
		FileURL:       submission.FileURL,
		Status:        submission.Status,
		Feedback:      submission.Feedback,
		ReviewedAt:    submission.ReviewedAt,
		CreatedAt:     submission.CreatedAt,
		UpdatedAt:     submission.UpdatedAt,
	}
}

func SubmissionsToResponse(submissions []*entity.ProjectSubmission) []SubmissionResponse {
	result := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		result = append(result, SubmissionToResponse(submission))
	}
	return result
}
