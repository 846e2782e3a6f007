package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the slice of pgxpool.Pool the audit writer needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Entry struct {
	UserID     *string
	Action     string
	EntityType string
	EntityID   *string
	IP         *string
}

// Write records an audit entry; failures are returned so callers can ignore
// them (auditing never blocks the request that triggered it).
func Write(ctx context.Context, db Execer, e Entry) error {
	if db == nil {
		return nil
	}

	_, err := db.Exec(ctx, `
INSERT INTO audit_logs (user_id, action, entity_type, entity_id, ip)
VALUES ($1, $2, $3, $4, $5)
`, e.UserID, e.Action, e.EntityType, e.EntityID, e.IP)

	return err
}
