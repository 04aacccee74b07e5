package request

type SubmitProjectRequest struct {
	ProjectNumber int `json:"projectNumber" validate:"required,oneof=1 2"`
}

type ReviewSubmissionRequest struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected"`
	Feedback string `json:"feedback,omitempty"`
}
