package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Bootcamp struct {
	Base               `bson:",inline"`
	Title              string        `bson:"title"`
	Description        string        `bson:"description"`
	StartDate          time.Time     `bson:"start_date"`
	EndDate            *time.Time    `bson:"end_date,omitempty"`
	IsActive           bool          `bson:"is_active"`
	CoverImage         *string       `bson:"cover_image,omitempty"`
	CoverImagePublicID *string       `bson:"cover_image_public_id,omitempty"`
	CreatedBy          bson.ObjectID `bson:"created_by"`
}
