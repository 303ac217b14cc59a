package domain

import "time"

// User is the domain model for accounts that file and handle tickets.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the authenticated caller context policy checks work with.
type Actor struct {
	ID   string
	Role Role
}

// AsActor narrows a user to the identity/role pair the policy layer needs.
func (u *User) AsActor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
