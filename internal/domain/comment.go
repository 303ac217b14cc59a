package domain

import "time"

// Comment captures discussion on a ticket. Visibility always follows the
// parent ticket; edit and delete are restricted to the author or a manager.
type Comment struct {
	ID        string
	TicketID  string
	UserID    string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
