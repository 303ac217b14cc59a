package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/policy"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// TicketService coordinates ticket workflows: existence lookups first, then
// policy checks, then repository effects.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	statusLogs repository.StatusLogRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	UserRepo      repository.UserRepository
	StatusLogRepo repository.StatusLogRepository
	Dispatcher    events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// TicketListInput describes listing parameters before normalization.
type TicketListInput struct {
	Page     int
	PageSize int
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		statusLogs: deps.StatusLogRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket files a new OPEN ticket for the actor.
func (s *TicketService) CreateTicket(ctx context.Context, actor domain.Actor, input TicketCreateInput) (*domain.Ticket, error) {
	if err := policy.RequireCapability(actor.Role, policy.ActionCreateTicket); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Known() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		CreatedBy:   actor.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// GetTicket fetches a ticket the actor is allowed to see. Existence is
// resolved before the access check, so a missing ticket is always not-found
// and a hidden one is always forbidden.
func (s *TicketService) GetTicket(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireRead(actor, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListTickets returns the actor's visible tickets, newest first. The scope
// predicate is derived from the same capability table as single-item reads,
// so listing never exceeds what GetTicket would allow item by item.
func (s *TicketService) ListTickets(ctx context.Context, actor domain.Actor, input TicketListInput) ([]domain.Ticket, error) {
	if err := policy.RequireCapability(actor.Role, policy.ActionListTickets); err != nil {
		return nil, err
	}
	scope, err := policy.ScopeForActor(actor)
	if err != nil {
		return nil, err
	}

	page, pageSize := policy.NormalizePage(input.Page, input.PageSize)
	filter := repository.TicketListFilter{
		Scope:    scope,
		Status:   input.Status,
		Priority: input.Priority,
		Limit:    pageSize,
		Offset:   policy.Offset(page, pageSize),
	}
	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// AssignTicket sets the ticket's assignee after validating role eligibility.
func (s *TicketService) AssignTicket(ctx context.Context, actor domain.Actor, ticketID, assigneeID string) (*domain.Ticket, error) {
	if err := policy.RequireCapability(actor.Role, policy.ActionAssignTicket); err != nil {
		return nil, err
	}
	if _, err := s.getTicket(ctx, ticketID); err != nil {
		return nil, err
	}

	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": assigneeID})
		}
		return nil, apperrors.MapError(err)
	}
	if err := policy.ValidateAssignee(assignee); err != nil {
		return nil, err
	}

	updated, err := s.tickets.UpdateAssignee(ctx, ticketID, &assignee.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: updated.ID,
		Actor:    eventActor(actor),
		Payload:  events.TicketAssignedPayload{AssigneeID: assignee.ID},
	})
	return updated, nil
}

// UpdateStatus advances the ticket status by exactly one step, appending the
// audit row in the same transaction. A concurrent advance that wins the race
// leaves this caller with an invalid-transition outcome; the request is
// never retried here.
func (s *TicketService) UpdateStatus(ctx context.Context, actor domain.Actor, ticketID string, requested domain.TicketStatus) (*domain.Ticket, error) {
	if err := policy.RequireCapability(actor.Role, policy.ActionChangeStatus); err != nil {
		return nil, err
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := policy.ValidateTransition(ticket.Status, requested); err != nil {
		return nil, err
	}

	updated, err := s.tickets.Transition(ctx, ticketID, ticket.Status, requested, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			current, readErr := s.getTicket(ctx, ticketID)
			if readErr != nil {
				return nil, readErr
			}
			return nil, apperrors.NewInvalidTransition(string(current.Status), string(requested))
		}
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: updated.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: ticket.Status,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// DeleteTicket removes a ticket. Managers only.
func (s *TicketService) DeleteTicket(ctx context.Context, actor domain.Actor, ticketID string) error {
	if err := policy.RequireCapability(actor.Role, policy.ActionDeleteTicket); err != nil {
		return err
	}
	if _, err := s.getTicket(ctx, ticketID); err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
		Actor:    eventActor(actor),
	})
	return nil
}

// ListHistory returns the ticket's status audit trail, read-scoped like the
// ticket itself.
func (s *TicketService) ListHistory(ctx context.Context, actor domain.Actor, ticketID string) ([]domain.TicketStatusLog, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireRead(actor, ticket); err != nil {
		return nil, err
	}
	history, err := s.statusLogs.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return history, nil
}

func (s *TicketService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func eventActor(actor domain.Actor) events.Actor {
	return events.Actor{UserID: actor.ID, Role: actor.Role}
}
