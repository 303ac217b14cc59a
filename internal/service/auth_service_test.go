package service

import (
	"context"
	"testing"

	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/domain"
)

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 15
	cfg.Auth.BcryptCost = testBcryptCost
	return NewAuthService(cfg, users), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	user, token, exp, err := svc.Register(ctx, "Uma", "uma@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("self-registered role = %s, want USER", user.Role)
	}
	if token == "" || exp.IsZero() {
		t.Fatal("Register returned no usable token")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleUser {
		t.Fatalf("claims = %+v, want user %s role USER", claims, user.ID)
	}

	if _, _, _, err := svc.Login(ctx, "uma@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, "Uma", "uma@example.com", "hunter2"); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := svc.Register(ctx, "Uma Two", "uma@example.com", "hunter2")
	assertCode(t, err, "CONFLICT")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, "Uma", "uma@example.com", "hunter2"); err != nil {
		t.Fatal(err)
	}

	// unknown account and wrong password are indistinguishable
	_, _, _, err := svc.Login(ctx, "nobody@example.com", "hunter2")
	assertCode(t, err, "UNAUTHORIZED")
	_, _, _, err = svc.Login(ctx, "uma@example.com", "wrong")
	assertCode(t, err, "UNAUTHORIZED")
}
