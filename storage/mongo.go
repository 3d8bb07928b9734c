package storage

import (
	"context"
	"time"

	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore keeps uploaded images as binary documents in the images
// collection. The canonical path is /api/uploads/{objectId}.
type MongoStore struct {
	Collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{Collection: collection}
}

func (s *MongoStore) Save(ctx context.Context, data []byte, contentType, filename, uploaderID string) (string, error) {
	if err := ValidateUpload(contentType, filename, int64(len(data))); err != nil {
		return "", err
	}

	img := models.Image{
		ID:          primitive.NewObjectID(),
		Data:        data,
		ContentType: contentType,
		FileName:    filename,
		CreatedAt:   time.Now(),
	}
	if uploaderID != "" {
		if oid, err := primitive.ObjectIDFromHex(uploaderID); err == nil {
			img.UploadedBy = oid
		}
	}

	if _, err := s.Collection.InsertOne(ctx, img); err != nil {
		return "", err
	}

	return "/api/uploads/" + img.ID.Hex(), nil
}

func (s *MongoStore) Get(ctx context.Context, ref string) ([]byte, string, error) {
	hex := ref
	if i := len("/api/uploads/"); len(ref) > i && ref[:i] == "/api/uploads/" {
		hex = ref[i:]
	}

	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, "", ErrNotFound
	}

	var img models.Image
	err = s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&img)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	return img.Data, img.ContentType, nil
}
