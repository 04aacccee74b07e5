package request

// Bootcamp payloads arrive as multipart form fields, so dates come in as
// strings and are parsed by the service

type CreateBootcampRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate,omitempty" validate:"omitempty"`
}

type UpdateBootcampRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

type UpdateBootcampStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
