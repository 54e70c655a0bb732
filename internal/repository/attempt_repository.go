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

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("quiz_attempts")}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	res, err := r.Col.InsertOne(ctx, attempt)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		attempt.ID = oid
	}
	return nil
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*models.QuizAttempt, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Validationf("invalid attempt id %q", id)
	}
	var attempt models.QuizAttempt
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&attempt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundf("quiz attempt %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindByQuizAndLearner returns nil, nil when the learner has not
// attempted the quiz.
func (r *AttemptRepository) FindByQuizAndLearner(ctx context.Context, quizID, learnerID primitive.ObjectID) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.Col.FindOne(ctx, bson.M{"quiz_id": quizID, "learner_id": learnerID}).Decode(&attempt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindByLearner(ctx context.Context, learnerID primitive.ObjectID) ([]models.QuizAttempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"learner_id": learnerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.QuizAttempt
	for cur.Next(ctx) {
		var a models.QuizAttempt
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

func (r *AttemptRepository) CountByQuiz(ctx context.Context, quizID primitive.ObjectID) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"quiz_id": quizID})
}

// DeleteByQuiz removes all attempts for a quiz. Used when a quiz is
// deleted so orphaned attempts do not linger.
func (r *AttemptRepository) DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"quiz_id": quizID})
	return err
}
