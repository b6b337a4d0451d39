package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// AuditLogRepository stores and reads immutable action records.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
	Recent(ctx context.Context, limit int) ([]domain.AuditLogEntry, error)
}

type auditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository builds repository.
func NewAuditLogRepository(pool *pgxpool.Pool) AuditLogRepository {
	return &auditLogRepository{pool: pool}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	const query = `
        INSERT INTO audit_logs (user_id, action, resource_type, resource_id, details)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.Action,
		entry.ResourceType,
		entry.ResourceID,
		entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// Recent returns the newest entries first, capped at limit, with the acting
// profile joined in where it still exists.
func (r *auditLogRepository) Recent(ctx context.Context, limit int) ([]domain.AuditLogEntry, error) {
	const query = `
        SELECT a.id, a.user_id, a.action, a.resource_type, a.resource_id, a.details, a.created_at,
               p.id, p.full_name, p.email
        FROM audit_logs a
        LEFT JOIN profiles p ON p.id = a.user_id
        ORDER BY a.created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditLogEntry
	for rows.Next() {
		var entry domain.AuditLogEntry
		var profileID, fullName, email *string
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.ResourceType,
			&entry.ResourceID,
			&entry.Details,
			&entry.CreatedAt,
			&profileID,
			&fullName,
			&email,
		); err != nil {
			return nil, err
		}
		if profileID != nil {
			entry.Actor = &domain.Profile{
				ID:       *profileID,
				FullName: derefString(fullName),
				Email:    derefString(email),
			}
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
