package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"formforge/internal/model"
)

// QuestionRepo handles MongoDB operations for questions
type QuestionRepo interface {
	Create(ctx context.Context, question *model.Question) (string, error)
	GetByID(ctx context.Context, id string) (*model.Question, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) (string, error) {
	result, err := r.collection.InsertOne(ctx, question)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	question.ID = oid.Hex()
	return question.ID, nil
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var question model.Question
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// GetByIDs fetches the given questions in the order the ids were passed.
// Ids that resolve to nothing (deleted questions) are silently omitted.
func (r *questionRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Question, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var fetched []*model.Question
	if err = cursor.All(ctx, &fetched); err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Question, len(fetched))
	for _, q := range fetched {
		byID[q.ID] = q
	}

	ordered := make([]*model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

func (r *questionRepo) Update(ctx context.Context, question *model.Question) error {
	oid, err := primitive.ObjectIDFromHex(question.ID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"type":          question.Type,
		"text":          question.Text,
		"image":         question.Image,
		"categories":    question.Categories,
		"items":         question.Items,
		"passage":       question.Passage,
		"blankAnswers":  question.BlankAnswers,
		"subQuestions":  question.SubQuestions,
		"options":       question.Options,
		"correctAnswer": question.CorrectAnswer,
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *questionRepo) DeleteMany(ctx context.Context, ids []string) error {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil
	}

	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	return err
}
