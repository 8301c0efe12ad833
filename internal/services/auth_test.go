package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/conceptpulse/conceptpulse-backend/internal/apperr"
	"github.com/conceptpulse/conceptpulse-backend/internal/repos"
	"github.com/conceptpulse/conceptpulse-backend/internal/requestdata"
)

func newAuthFixture(t *testing.T) (AuthService, repos.UserTokenRepo) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	userTokenRepo := repos.NewUserTokenRepo(db, log)
	svc := NewAuthService(db, log, repos.NewUserRepo(db, log), userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
	return svc, userTokenRepo
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterInput{
		Email:    "Student@Example.com",
		Password: "correct-horse",
		Name:     "Student",
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Email != "student@example.com" {
		t.Fatalf("email normalization: got %q", user.Email)
	}
	if user.Password == "correct-horse" {
		t.Fatalf("password stored in plaintext")
	}

	pair, err := svc.LoginUser(ctx, "student@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty token pair: %+v", pair)
	}

	stamped, err := svc.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if got := requestdata.UserID(stamped); got != user.ID {
		t.Fatalf("context user id: want=%s got=%s", user.ID, got)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	in := RegisterInput{Email: "dup@example.com", Password: "long-enough"}
	if _, err := svc.RegisterUser(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.RegisterUser(ctx, in)
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("duplicate register: want ErrAlreadyExists got %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, RegisterInput{Email: "not-an-email", Password: "long-enough"}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("bad email: want ErrInvalidArgument got %v", err)
	}
	if _, err := svc.RegisterUser(ctx, RegisterInput{Email: "ok@example.com", Password: "short"}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("weak password: want ErrInvalidArgument got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, RegisterInput{Email: "who@example.com", Password: "long-enough"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.LoginUser(ctx, "who@example.com", "wrong-pass"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("wrong password: want ErrUnauthorized got %v", err)
	}
	if _, err := svc.LoginUser(ctx, "nobody@example.com", "whatever-pass"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("unknown email: want ErrUnauthorized got %v", err)
	}
}

func TestLogoutClearsRefreshTokens(t *testing.T) {
	svc, userTokenRepo := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterInput{Email: "bye@example.com", Password: "long-enough"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.LoginUser(ctx, "bye@example.com", "long-enough"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.LogoutUser(ctx, user.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	row, err := userTokenRepo.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if row != nil {
		t.Fatalf("refresh token survived logout: %+v", row)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.SetContextFromToken(context.Background(), "not.a.jwt")
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("garbage token: want ErrUnauthorized got %v", err)
	}
}
