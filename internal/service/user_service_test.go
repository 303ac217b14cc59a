package service

import (
	"context"
	"testing"

	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/domain"
)

const testBcryptCost = 4 // bcrypt.MinCost, keeps the suite fast

func TestCreateUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, testBcryptCost)
	manager := users.add(domain.User{ID: "m1", Role: domain.RoleManager})
	support := users.add(domain.User{ID: "s1", Role: domain.RoleSupport})
	regular := users.add(domain.User{ID: "u1", Role: domain.RoleUser})
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, manager.AsActor(), UserCreateInput{
		Name:     "Nina",
		Email:    "nina@example.com",
		Password: "s3cret",
		Role:     domain.RoleSupport,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.Role != domain.RoleSupport {
		t.Fatalf("role = %s, want SUPPORT", created.Role)
	}
	if err := auth.ComparePassword(created.PasswordHash, "s3cret"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	t.Run("non-managers denied", func(t *testing.T) {
		for _, actor := range []domain.User{support, regular} {
			_, err := svc.CreateUser(ctx, actor.AsActor(), UserCreateInput{
				Name: "x", Email: "x@example.com", Password: "x", Role: domain.RoleUser,
			})
			assertCode(t, err, "FORBIDDEN")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, manager.AsActor(), UserCreateInput{
			Name: "Nina Again", Email: "nina@example.com", Password: "x", Role: domain.RoleUser,
		})
		assertCode(t, err, "CONFLICT")
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, manager.AsActor(), UserCreateInput{
			Name: "x", Email: "y@example.com", Password: "x", Role: domain.Role("AUDITOR"),
		})
		assertCode(t, err, "VALIDATION_FAILED")
	})
}

func TestListUsers(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, testBcryptCost)
	manager := users.add(domain.User{ID: "m1", Role: domain.RoleManager})
	regular := users.add(domain.User{ID: "u1", Role: domain.RoleUser})
	ctx := context.Background()

	listed, err := svc.ListUsers(ctx, manager.AsActor())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("got %d users, want 2", len(listed))
	}

	_, err = svc.ListUsers(ctx, regular.AsActor())
	assertCode(t, err, "FORBIDDEN")
}
