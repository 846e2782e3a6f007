package audit

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecer struct {
	sql  string
	args []any
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = sql
	f.args = args
	return pgconn.CommandTag{}, nil
}

func TestWrite(t *testing.T) {
	db := &fakeExecer{}

	uid := "user-1"
	eid := "record-1"
	ip := "10.0.0.1"
	err := Write(context.Background(), db, Entry{
		UserID:     &uid,
		Action:     "delete",
		EntityType: "finance_record",
		EntityID:   &eid,
		IP:         &ip,
	})
	require.NoError(t, err)

	assert.Contains(t, db.sql, "INSERT INTO audit_logs")
	require.Len(t, db.args, 5)
	assert.Equal(t, &uid, db.args[0])
	assert.Equal(t, "delete", db.args[1])
	assert.Equal(t, "finance_record", db.args[2])
	assert.Equal(t, &eid, db.args[3])
	assert.Equal(t, &ip, db.args[4])
}

func TestWriteNilDB(t *testing.T) {
	assert.NoError(t, Write(context.Background(), nil, Entry{Action: "login"}))
}
