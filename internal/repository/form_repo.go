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

// FormRepo handles MongoDB operations for forms
type FormRepo interface {
	Create(ctx context.Context, form *model.Form) (string, error)
	GetByID(ctx context.Context, id string) (*model.Form, error)
	GetByUserID(ctx context.Context, userID string) ([]*model.Form, error)
	AddQuestion(ctx context.Context, formID, questionID string) error
	RemoveQuestion(ctx context.Context, formID, questionID string) error
	AddResponse(ctx context.Context, formID, responseID string) error
	Delete(ctx context.Context, id string) error
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type formRepo struct {
	collection *mongo.Collection
}

// NewFormRepo creates a new form repository
func NewFormRepo(db *mongo.Database) FormRepo {
	return &formRepo{
		collection: db.Collection("forms"),
	}
}

func (r *formRepo) Create(ctx context.Context, form *model.Form) (string, error) {
	form.CreatedAt = time.Now()
	if form.QuestionIDs == nil {
		form.QuestionIDs = []string{}
	}
	if form.ResponseIDs == nil {
		form.ResponseIDs = []string{}
	}

	result, err := r.collection.InsertOne(ctx, form)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	form.ID = oid.Hex()
	return form.ID, nil
}

func (r *formRepo) GetByID(ctx context.Context, id string) (*model.Form, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var form model.Form
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&form)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepo) GetByUserID(ctx context.Context, userID string) ([]*model.Form, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var forms []*model.Form
	if err = cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepo) AddQuestion(ctx context.Context, formID, questionID string) error {
	oid, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"questionIds": questionID}})
	return err
}

func (r *formRepo) RemoveQuestion(ctx context.Context, formID, questionID string) error {
	oid, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$pull": bson.M{"questionIds": questionID}})
	return err
}

func (r *formRepo) AddResponse(ctx context.Context, formID, responseID string) error {
	oid, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"responseIds": responseID}})
	return err
}

func (r *formRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *formRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID})
}
