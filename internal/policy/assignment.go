package policy

import (
	"github.com/spec-kit/ticket-tracker/internal/domain"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// ValidateAssignee checks that a candidate may hold tickets. Only MANAGER
// and SUPPORT are assignable; a USER-role candidate is rejected. There is no
// self-assignment restriction. Candidate existence is the caller's lookup;
// this validates the role only.
func ValidateAssignee(candidate *domain.User) error {
	switch candidate.Role {
	case domain.RoleManager, domain.RoleSupport:
		return nil
	case domain.RoleUser:
		return apperrors.NewIneligibleAssignee(map[string]any{"user_id": candidate.ID})
	}
	return errUnknownRole(candidate.Role)
}
