package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// ProjectSubmission is the single row per (user, bootcamp, projectNumber)
// slot, enforced by a unique index. Lifecycle: pending -> approved|rejected,
// with rejected -> pending the only re-entrant transition (resubmission).
type ProjectSubmission struct {
	Base          `bson:",inline"`
	UserID        bson.ObjectID `bson:"user"`
	BootcampID    bson.ObjectID `bson:"bootcamp"`
	ProjectNumber int           `bson:"project_number"`

	// Denormalized for mail templates
	Name  string `bson:"name"`
	Email string `bson:"email"`

	FileURL      string           `bson:"file_url"`
	FilePublicID string           `bson:"file_public_id"`
	Status       SubmissionStatus `bson:"status"`

	ReviewedBy *bson.ObjectID `bson:"reviewed_by,omitempty"`
	ReviewedAt *time.Time     `bson:"reviewed_at,omitempty"`
	Feedback   *string        `bson:"feedback,omitempty"`
}
