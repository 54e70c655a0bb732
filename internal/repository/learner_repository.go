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

type LearnerRepository struct {
	Col *mongo.Collection
}

func NewLearnerRepository(db *mongo.Database) *LearnerRepository {
	return &LearnerRepository{Col: db.Collection("learners")}
}

// FindPage returns one page of learners, newest first, plus the total
// collection count.
func (r *LearnerRepository) FindPage(ctx context.Context, page, pageSize int) ([]models.Learner, int64, error) {
	total, err := r.Col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var learners []models.Learner
	for cur.Next(ctx) {
		var l models.Learner
		if err := cur.Decode(&l); err != nil {
			return nil, 0, err
		}
		learners = append(learners, l)
	}
	return learners, total, nil
}

func (r *LearnerRepository) FindByID(ctx context.Context, id string) (*models.Learner, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Validationf("invalid learner id %q", id)
	}
	var learner models.Learner
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&learner)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundf("learner %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &learner, nil
}

func (r *LearnerRepository) FindByEmail(ctx context.Context, email string) (*models.Learner, error) {
	var learner models.Learner
	err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&learner)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundf("learner with email %s", email)
	}
	if err != nil {
		return nil, err
	}
	return &learner, nil
}

func (r *LearnerRepository) Create(ctx context.Context, learner *models.Learner) error {
	res, err := r.Col.InsertOne(ctx, learner)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		learner.ID = oid
	}
	return nil
}

func (r *LearnerRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.Validationf("invalid learner id %q", id)
	}
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFoundf("learner %s", id)
	}
	return nil
}

func (r *LearnerRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.Validationf("invalid learner id %q", id)
	}
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.NotFoundf("learner %s", id)
	}
	return nil
}
