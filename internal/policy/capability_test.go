package policy

import (
	"testing"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

func TestCan(t *testing.T) {
	cases := []struct {
		role    domain.Role
		action  Action
		allowed bool
	}{
		{domain.RoleManager, ActionCreateTicket, true},
		{domain.RoleManager, ActionAssignTicket, true},
		{domain.RoleManager, ActionChangeStatus, true},
		{domain.RoleManager, ActionDeleteTicket, true},
		{domain.RoleManager, ActionModerateComments, true},
		{domain.RoleSupport, ActionCreateTicket, false},
		{domain.RoleSupport, ActionAssignTicket, true},
		{domain.RoleSupport, ActionChangeStatus, true},
		{domain.RoleSupport, ActionDeleteTicket, false},
		{domain.RoleSupport, ActionModerateComments, false},
		{domain.RoleUser, ActionCreateTicket, true},
		{domain.RoleUser, ActionAssignTicket, false},
		{domain.RoleUser, ActionChangeStatus, false},
		{domain.RoleUser, ActionDeleteTicket, false},
		{domain.RoleUser, ActionModerateComments, false},
	}

	for _, tt := range cases {
		got, err := Can(tt.role, tt.action)
		if err != nil {
			t.Fatalf("Can(%s, %s) returned error: %v", tt.role, tt.action, err)
		}
		if got != tt.allowed {
			t.Fatalf("Can(%s, %s)=%v, want %v", tt.role, tt.action, got, tt.allowed)
		}
	}
}

func TestCanUnknownRole(t *testing.T) {
	if _, err := Can(domain.Role("INTERN"), ActionCreateTicket); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestScopeFor(t *testing.T) {
	cases := []struct {
		role  domain.Role
		scope ListScope
	}{
		{domain.RoleManager, ScopeAll},
		{domain.RoleSupport, ScopeAssigned},
		{domain.RoleUser, ScopeOwned},
	}
	for _, tt := range cases {
		got, err := ScopeFor(tt.role)
		if err != nil {
			t.Fatalf("ScopeFor(%s) returned error: %v", tt.role, err)
		}
		if got != tt.scope {
			t.Fatalf("ScopeFor(%s)=%s, want %s", tt.role, got, tt.scope)
		}
	}
	if _, err := ScopeFor(domain.Role("GUEST")); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
