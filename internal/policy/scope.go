package policy

import (
	"github.com/spec-kit/ticket-tracker/internal/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ListQuery is the normalized input for a scoped list.
type ListQuery struct {
	Page     int
	PageSize int
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
}

// TicketScope is the visibility predicate for list queries. It is the
// authorization boundary for bulk reads: a ticket matches the scope exactly
// when CanRead would admit it for the same actor.
type TicketScope struct {
	CreatedBy  *string
	AssignedTo *string
}

// ScopeForActor builds the base visibility predicate from the capability
// table's list scope.
func ScopeForActor(actor domain.Actor) (TicketScope, error) {
	scope, err := ScopeFor(actor.Role)
	if err != nil {
		return TicketScope{}, err
	}
	switch scope {
	case ScopeAll:
		return TicketScope{}, nil
	case ScopeAssigned:
		id := actor.ID
		return TicketScope{AssignedTo: &id}, nil
	default:
		id := actor.ID
		return TicketScope{CreatedBy: &id}, nil
	}
}

// Matches evaluates the predicate in memory. Kept alongside the SQL
// rendering in the repository so the two can be checked against each other.
func (s TicketScope) Matches(t *domain.Ticket) bool {
	if s.CreatedBy != nil && t.CreatedBy != *s.CreatedBy {
		return false
	}
	if s.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *s.AssignedTo) {
		return false
	}
	return true
}

// NormalizePage coerces page and pageSize to positive values, substituting
// the defaults for zero or negative input.
func NormalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = defaultPage
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// Offset converts a normalized page/pageSize pair into a row offset.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
