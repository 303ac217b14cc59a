package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// StatusLogRepository reads the append-only transition audit trail. Writes
// happen inside TicketRepository.Transition so the log row and the status
// mutation share one transaction.
type StatusLogRepository interface {
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketStatusLog, error)
	CountByTicket(ctx context.Context, ticketID string) (int, error)
}

type statusLogRepository struct {
	pool *pgxpool.Pool
}

// NewStatusLogRepository builds repository.
func NewStatusLogRepository(pool *pgxpool.Pool) StatusLogRepository {
	return &statusLogRepository{pool: pool}
}

func (r *statusLogRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketStatusLog, error) {
	const query = `
        SELECT id, ticket_id, old_status, new_status, changed_by, changed_at
        FROM ticket_status_logs WHERE ticket_id=$1 ORDER BY changed_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketStatusLog
	for rows.Next() {
		var entry domain.TicketStatusLog
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.ChangedBy,
			&entry.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *statusLogRepository) CountByTicket(ctx context.Context, ticketID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ticket_status_logs WHERE ticket_id=$1`, ticketID).Scan(&count)
	return count, err
}
