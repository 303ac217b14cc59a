package policy

import (
	"fmt"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// statusFlow is the only legal progression; a transition must advance by
// exactly one position. CLOSED is terminal.
var statusFlow = []domain.TicketStatus{
	domain.TicketStatusOpen,
	domain.TicketStatusInProgress,
	domain.TicketStatusResolved,
	domain.TicketStatusClosed,
}

func statusIndex(status domain.TicketStatus) int {
	for i, s := range statusFlow {
		if s == status {
			return i
		}
	}
	return -1
}

// NextStatus returns the single legal successor of current, or false when
// current is terminal.
func NextStatus(current domain.TicketStatus) (domain.TicketStatus, bool) {
	idx := statusIndex(current)
	if idx < 0 || idx+1 >= len(statusFlow) {
		return "", false
	}
	return statusFlow[idx+1], true
}

// ValidateTransition checks the forward-one-step rule. A stored status
// outside the enumeration is a configuration defect; a requested status that
// is unknown, equal, behind, or skipping ahead fails as an invalid
// transition. Role eligibility is enforced by the caller via the capability
// table; this check is role-agnostic.
func ValidateTransition(current, requested domain.TicketStatus) error {
	currentIdx := statusIndex(current)
	if currentIdx < 0 {
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown ticket status %q", current))
	}
	requestedIdx := statusIndex(requested)
	if requestedIdx != currentIdx+1 {
		return apperrors.NewInvalidTransition(string(current), string(requested))
	}
	return nil
}
