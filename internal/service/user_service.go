package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"hyperhive-backend/internal/errs"
	"hyperhive-backend/internal/models"
	"hyperhive-backend/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type userStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type UserService struct {
	users userStore
}

func NewUserService(users userStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Signup(ctx context.Context, request models.SignupRequest) (*models.AuthResponse, error) {
	if request.Email == "" || request.Password == "" || request.FirstName == "" || request.LastName == "" {
		return nil, errs.Validationf("email, password, first name and last name are required")
	}
	if !emailPattern.MatchString(request.Email) {
		return nil, errs.Validationf("invalid email format")
	}
	if len(request.Password) < 6 {
		return nil, errs.Validationf("password must be at least 6 characters")
	}

	existing, err := s.users.FindByEmail(ctx, request.Email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflictf("user with email %s already exists", request.Email)
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:        request.Email,
		PasswordHash: hash,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("User %s signed up", user.Email)
	return s.buildAuthResponse(user)
}

func (s *UserService) Login(ctx context.Context, request models.LoginRequest) (*models.AuthResponse, error) {
	if request.Email == "" || request.Password == "" {
		return nil, errs.Validationf("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errors.New("invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, request.Password) {
		return nil, errors.New("invalid email or password")
	}

	return s.buildAuthResponse(user)
}

// GetProfile returns the account behind an authenticated token's user id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserDTO{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *UserService) buildAuthResponse(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := utils.GenerateJWT(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		Token: token,
		User: models.UserDTO{
			ID:        user.ID.Hex(),
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			CreatedAt: user.CreatedAt,
		},
		ExpiresAt: expiresAt,
	}, nil
}
