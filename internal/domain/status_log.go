package domain

import "time"

// TicketStatusLog is an immutable audit entry, appended exactly once per
// successful status transition in the same transaction as the mutation.
type TicketStatusLog struct {
	ID        string
	TicketID  string
	OldStatus TicketStatus
	NewStatus TicketStatus
	ChangedBy string
	ChangedAt time.Time
}
