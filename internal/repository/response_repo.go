package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formforge/internal/model"
)

// ResponseRepo handles MongoDB operations for responses
type ResponseRepo interface {
	Create(ctx context.Context, response *model.Response) (string, error)
	GetByID(ctx context.Context, id string) (*model.Response, error)
	GetByFormID(ctx context.Context, formID string) ([]*model.Response, error)
	GetByUserID(ctx context.Context, userID string) ([]*model.Response, error)
	CountByFormIDs(ctx context.Context, formIDs []string) (int64, error)
	DeleteByFormID(ctx context.Context, formID string) error
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, response *model.Response) (string, error) {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, response)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	response.ID = oid.Hex()
	return response.ID, nil
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var response model.Response
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepo) GetByFormID(ctx context.Context, formID string) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"formId": formID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) GetByUserID(ctx context.Context, userID string) ([]*model.Response, error) {
	opts := options.Find().SetSort(bson.M{"submittedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountByFormIDs(ctx context.Context, formIDs []string) (int64, error) {
	if len(formIDs) == 0 {
		return 0, nil
	}
	return r.collection.CountDocuments(ctx, bson.M{"formId": bson.M{"$in": formIDs}})
}

func (r *responseRepo) DeleteByFormID(ctx context.Context, formID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"formId": formID})
	return err
}
