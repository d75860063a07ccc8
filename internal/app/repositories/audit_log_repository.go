package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oseghale/unireg/internal/pkg/logger"
)

// AuditLogRepository handles audit log database operations
type AuditLogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Record appends an audit entry. actionData is marshalled to JSONB.
func (r *AuditLogRepository) Record(ctx context.Context, actorID int64, actionType string, actionData interface{}) error {
	data, err := json.Marshal(actionData)
	if err != nil {
		return fmt.Errorf("failed to marshal audit data: %w", err)
	}

	sql, args, err := r.sb.Insert("audit_logs").
		Columns("user_id", "action_type", "action_data").
		Values(actorID, actionType, data).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build audit insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("actionType", actionType).Msg("Error writing audit log entry")
		return fmt.Errorf("error writing audit log entry: %w", err)
	}
	return nil
}
