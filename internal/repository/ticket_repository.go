package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/policy"
)

// ErrStaleStatus reports that a conditional status update matched no row:
// the ticket moved between the caller's read and the write.
var ErrStaleStatus = fmt.Errorf("ticket status changed concurrently")

// TicketListFilter combines the visibility scope with optional equality
// filters and pagination.
type TicketListFilter struct {
	Scope    policy.TicketScope
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
	Limit    int
	Offset   int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error)
	UpdateAssignee(ctx context.Context, ticketID string, assigneeID *string) (*domain.Ticket, error)
	Transition(ctx context.Context, ticketID string, oldStatus, newStatus domain.TicketStatus, changedBy string) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, status, priority, created_by, assigned_to, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, status, priority, created_by, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.CreatedBy,
		ticket.AssignedTo,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Scope.CreatedBy != nil {
		args = append(args, *filter.Scope.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if filter.Scope.AssignedTo != nil {
		args = append(args, *filter.Scope.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) UpdateAssignee(ctx context.Context, ticketID string, assigneeID *string) (*domain.Ticket, error) {
	query := `
        UPDATE tickets SET assigned_to=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + ticketColumns
	var ticket domain.Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, assigneeID, ticketID), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Transition advances the ticket status and appends the audit row in one
// transaction. The UPDATE is conditional on the expected old status, so two
// concurrent advances cannot both apply: the loser matches zero rows and
// gets ErrStaleStatus, leaving neither of its writes behind.
func (r *ticketRepository) Transition(ctx context.Context, ticketID string, oldStatus, newStatus domain.TicketStatus, changedBy string) (*domain.Ticket, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	updateQuery := `
        UPDATE tickets SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status=$3
        RETURNING ` + ticketColumns
	var ticket domain.Ticket
	if err := scanTicket(tx.QueryRow(ctx, updateQuery, newStatus, ticketID, oldStatus), &ticket); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrStaleStatus
		}
		return nil, err
	}

	const logQuery = `
        INSERT INTO ticket_status_logs (ticket_id, old_status, new_status, changed_by)
        VALUES ($1,$2,$3,$4)`
	if _, err := tx.Exec(ctx, logQuery, ticketID, oldStatus, newStatus, changedBy); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CreatedBy,
		&ticket.AssignedTo,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
