package policy

import (
	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// Action enumerates the operations the capability table covers.
type Action string

const (
	ActionCreateTicket     Action = "create_ticket"
	ActionListTickets      Action = "list_tickets"
	ActionAssignTicket     Action = "assign_ticket"
	ActionChangeStatus     Action = "change_status"
	ActionDeleteTicket     Action = "delete_ticket"
	ActionModerateComments Action = "moderate_comments"
)

// ListScope names the base visibility for list queries.
type ListScope string

const (
	ScopeAll      ListScope = "all"
	ScopeAssigned ListScope = "assigned"
	ScopeOwned    ListScope = "owned"
)

// capabilities is the per-role action table. Roles are a closed three-value
// set, so a data-driven lookup replaces any dispatch hierarchy.
var capabilities = map[domain.Role]map[Action]bool{
	domain.RoleManager: {
		ActionCreateTicket:     true,
		ActionListTickets:      true,
		ActionAssignTicket:     true,
		ActionChangeStatus:     true,
		ActionDeleteTicket:     true,
		ActionModerateComments: true,
	},
	domain.RoleSupport: {
		ActionCreateTicket:     false,
		ActionListTickets:      true,
		ActionAssignTicket:     true,
		ActionChangeStatus:     true,
		ActionDeleteTicket:     false,
		ActionModerateComments: false,
	},
	domain.RoleUser: {
		ActionCreateTicket:     true,
		ActionListTickets:      true,
		ActionAssignTicket:     false,
		ActionChangeStatus:     false,
		ActionDeleteTicket:     false,
		ActionModerateComments: false,
	},
}

var listScopes = map[domain.Role]ListScope{
	domain.RoleManager: ScopeAll,
	domain.RoleSupport: ScopeAssigned,
	domain.RoleUser:    ScopeOwned,
}

// Can reports whether the role may perform the action. An unknown role is a
// configuration defect and is reported to the caller, never defaulted.
func Can(role domain.Role, action Action) (bool, error) {
	table, ok := capabilities[role]
	if !ok {
		return false, errUnknownRole(role)
	}
	return table[action], nil
}

// ScopeFor returns the role's base list visibility.
func ScopeFor(role domain.Role) (ListScope, error) {
	scope, ok := listScopes[role]
	if !ok {
		return "", errUnknownRole(role)
	}
	return scope, nil
}
