package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hyperhive-backend/internal/errs"
	"hyperhive-backend/internal/models"
)

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection("quizzes")}
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Validationf("invalid quiz id %q", id)
	}
	var quiz models.Quiz
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundf("quiz %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByLearner(ctx context.Context, learnerID primitive.ObjectID) ([]models.Quiz, error) {
	opts := options.Find().SetSort(bson.D{{Key: "generated_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"learner_id": learnerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var quizzes []models.Quiz
	for cur.Next(ctx) {
		var q models.Quiz
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}

func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	res, err := r.Col.InsertOne(ctx, quiz)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		quiz.ID = oid
	}
	return nil
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.Validationf("invalid quiz id %q", id)
	}
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.NotFoundf("quiz %s", id)
	}
	return nil
}
