package policy

import (
	"fmt"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// CanRead reports whether the actor may see the ticket: managers see all,
// support sees tickets assigned to them, users see tickets they created.
// Comment reads and posts reuse this check unchanged; there is no broader
// comment scope.
func CanRead(actor domain.Actor, ticket *domain.Ticket) (bool, error) {
	switch actor.Role {
	case domain.RoleManager:
		return true, nil
	case domain.RoleSupport:
		return ticket.AssignedTo != nil && *ticket.AssignedTo == actor.ID, nil
	case domain.RoleUser:
		return ticket.CreatedBy == actor.ID, nil
	}
	return false, errUnknownRole(actor.Role)
}

// RequireRead turns a failed CanRead into a Forbidden outcome. Callers must
// resolve ticket existence before invoking this, so absence is reported as
// not-found and never conflated with denial.
func RequireRead(actor domain.Actor, ticket *domain.Ticket) error {
	ok, err := CanRead(actor, ticket)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewForbidden("access denied")
	}
	return nil
}

// RequireCapability enforces a global role capability for ticket mutation
// (assign, status change, delete). These are role-wide, not per-ticket.
func RequireCapability(role domain.Role, action Action) error {
	ok, err := Can(role, action)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}

func errUnknownRole(role domain.Role) error {
	return apperrors.NewConfigurationError(fmt.Sprintf("unknown role %q", role))
}
