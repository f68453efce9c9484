package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/users-service/internal/domain"
)

// ErrorLogRepository stores server-side failures for later inspection.
type ErrorLogRepository interface {
	Create(ctx context.Context, entry *domain.ErrorLog) error
}

type errorLogRepository struct {
	pool *pgxpool.Pool
}

// NewErrorLogRepository returns a Postgres-backed implementation.
func NewErrorLogRepository(pool *pgxpool.Pool) ErrorLogRepository {
	return &errorLogRepository{pool: pool}
}

func (r *errorLogRepository) Create(ctx context.Context, entry *domain.ErrorLog) error {
	const query = `
        INSERT INTO error_logs (service, error_type, error_message, user_id, user_role, request_url, request_method, ip, user_agent, metadata)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	_, err := r.pool.Exec(ctx, query,
		entry.Service,
		entry.ErrorType,
		entry.ErrorMessage,
		entry.UserID,
		entry.UserRole,
		entry.RequestURL,
		entry.RequestMethod,
		entry.IP,
		entry.UserAgent,
		entry.Metadata,
	)
	return err
}
