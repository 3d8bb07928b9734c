package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is an uploaded binary stored as a document. Images are written once
// by the upload endpoint and never modified or deleted afterwards.
type Image struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Data        []byte             `bson:"data" json:"-"`
	ContentType string             `bson:"contentType" json:"contentType"`
	FileName    string             `bson:"fileName,omitempty" json:"fileName,omitempty"`
	UploadedBy  primitive.ObjectID `bson:"uploadedBy,omitempty" json:"uploadedBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
