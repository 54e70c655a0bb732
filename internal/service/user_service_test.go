package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hyperhive-backend/internal/errs"
	"hyperhive-backend/internal/models"
	"hyperhive-backend/internal/utils"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, errs.NotFoundf("user with email %s not found", email)
}

func (f *fakeUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, errs.NotFoundf("user %s not found", id)
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.Email] = user
	return nil
}

func TestSignupValidation(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	testCases := []struct {
		name    string
		request models.SignupRequest
	}{
		{"missing fields", models.SignupRequest{Email: "a@b.co"}},
		{"bad email", models.SignupRequest{Email: "not-an-email", Password: "secret1", FirstName: "Ada", LastName: "L"}},
		{"email with spaces", models.SignupRequest{Email: "a b@c.co", Password: "secret1", FirstName: "Ada", LastName: "L"}},
		{"short password", models.SignupRequest{Email: "a@b.co", Password: "12345", FirstName: "Ada", LastName: "L"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.request)
			if !errors.Is(err, errs.ErrValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestSignupAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	signup := models.SignupRequest{
		Email:     "ada@example.com",
		Password:  "secret1",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}

	resp, err := svc.Signup(context.Background(), signup)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if resp.Token == "" {
		t.Error("signup response missing token")
	}
	if resp.User.Email != signup.Email {
		t.Errorf("User.Email = %q", resp.User.Email)
	}

	stored := store.users[signup.Email]
	if stored.PasswordHash == signup.Password {
		t.Fatal("password stored in plain text")
	}
	if !utils.CheckPassword(stored.PasswordHash, signup.Password) {
		t.Error("stored hash does not verify against the password")
	}
	if !stored.IsActive {
		t.Error("new user not active")
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Signup(context.Background(), signup)
		if !errors.Is(err, errs.ErrConflict) {
			t.Errorf("err = %v, want conflict", err)
		}
	})

	t.Run("login succeeds", func(t *testing.T) {
		got, err := svc.Login(context.Background(), models.LoginRequest{Email: signup.Email, Password: signup.Password})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if got.Token == "" {
			t.Error("login response missing token")
		}
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrongPassword := svc.Login(context.Background(), models.LoginRequest{Email: signup.Email, Password: "wrong"})
		_, errUnknownEmail := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "wrong"})
		if errWrongPassword == nil || errUnknownEmail == nil {
			t.Fatal("expected both logins to fail")
		}
		if errWrongPassword.Error() != errUnknownEmail.Error() {
			t.Errorf("error messages differ: %q vs %q", errWrongPassword, errUnknownEmail)
		}
	})
}

func TestGetProfile(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	resp, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:     "ada@example.com",
		Password:  "secret1",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	profile, err := svc.GetProfile(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Email != "ada@example.com" || profile.FirstName != "Ada" || profile.LastName != "Lovelace" {
		t.Errorf("unexpected profile %+v", profile)
	}
	if profile.ID != resp.User.ID {
		t.Errorf("ID = %q, want %q", profile.ID, resp.User.ID)
	}

	if _, err := svc.GetProfile(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("unknown user err = %v, want not found", err)
	}
}
