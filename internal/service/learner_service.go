package service

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"hyperhive-backend/internal/errs"
	"hyperhive-backend/internal/event"
	"hyperhive-backend/internal/models"
	"hyperhive-backend/internal/repository"
)

type LearnerService struct {
	learners *repository.LearnerRepository
	events   *event.EventPublisher
}

func NewLearnerService(learners *repository.LearnerRepository, events *event.EventPublisher) *LearnerService {
	return &LearnerService{learners: learners, events: events}
}

func (s *LearnerService) CreateLearner(ctx context.Context, request models.CreateLearnerRequest) (*models.Learner, error) {
	existing, err := s.learners.FindByEmail(ctx, request.Email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflictf("learner with email %s already exists", request.Email)
	}

	now := time.Now().UTC()
	joined := request.JoinedDate
	if joined.IsZero() {
		joined = now
	}

	learner := &models.Learner{
		Name:       request.Name,
		Email:      request.Email,
		Position:   request.Position,
		Department: request.Department,
		JoinedDate: joined,
		Bio:        request.Bio,
		AIProfile:  request.AIProfile,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.learners.Create(ctx, learner); err != nil {
		return nil, err
	}

	if err := s.events.Publish(event.LearnerCreated, map[string]string{"learnerId": learner.ID.Hex(), "email": learner.Email}); err != nil {
		log.Printf("Failed to publish learner.created: %v", err)
	}

	return learner, nil
}

func (s *LearnerService) GetLearner(ctx context.Context, id string) (*models.Learner, error) {
	return s.learners.FindByID(ctx, id)
}

func (s *LearnerService) GetLearnerByEmail(ctx context.Context, email string) (*models.Learner, error) {
	return s.learners.FindByEmail(ctx, email)
}

func (s *LearnerService) ListLearners(ctx context.Context, page, pageSize int) (*models.LearnersListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	learners, total, err := s.learners.FindPage(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	if learners == nil {
		learners = []models.Learner{}
	}
	return &models.LearnersListResponse{Learners: learners, TotalCount: total}, nil
}

func (s *LearnerService) UpdateLearner(ctx context.Context, id string, request models.UpdateLearnerRequest) (*models.Learner, error) {
	learner, err := s.learners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"updated_at": time.Now().UTC()}
	if request.Name != "" {
		update["name"] = request.Name
	}
	if request.Email != "" && request.Email != learner.Email {
		other, err := s.learners.FindByEmail(ctx, request.Email)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		if other != nil {
			return nil, errs.Conflictf("learner with email %s already exists", request.Email)
		}
		update["email"] = request.Email
	}
	if request.Position != "" {
		update["position"] = request.Position
	}
	if request.Department != "" {
		update["department"] = request.Department
	}
	if request.JoinedDate != nil {
		update["joined_date"] = *request.JoinedDate
	}
	if request.Bio != nil {
		update["bio"] = *request.Bio
	}
	if request.AIProfile != nil {
		update["ai_profile"] = request.AIProfile
	}

	if err := s.learners.Update(ctx, id, update); err != nil {
		return nil, err
	}

	if err := s.events.Publish(event.LearnerUpdated, map[string]string{"learnerId": id}); err != nil {
		log.Printf("Failed to publish learner.updated: %v", err)
	}

	return s.learners.FindByID(ctx, id)
}

func (s *LearnerService) DeleteLearner(ctx context.Context, id string) error {
	if err := s.learners.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.events.Publish(event.LearnerDeleted, map[string]string{"learnerId": id}); err != nil {
		log.Printf("Failed to publish learner.deleted: %v", err)
	}
	return nil
}
