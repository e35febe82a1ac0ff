// internal/audit/audit_test.go
package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "faxgen/internal/common/errors"
)

func sampleEntry() Entry {
	return Entry{
		ReferenceID: "FX-2026-000123",
		FaxType:     "welcome",
		Pages:       2,
		Bytes:       18432,
		UserID:      "user-1",
		CreatedAt:   time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC),
	}
}

func TestPostgresRecorderInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entry := sampleEntry()
	mock.ExpectExec("INSERT INTO fax_documents").
		WithArgs(entry.ReferenceID, entry.FaxType, entry.Pages, entry.Bytes, entry.UserID, nil, entry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := NewPostgresRecorder(db)
	require.NoError(t, r.Record(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecorderFailureWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO fax_documents").
		WillReturnError(errors.New("connection reset"))

	r := NewPostgresRecorder(db)
	recErr := r.Record(context.Background(), sampleEntry())
	require.Error(t, recErr)

	stdErr, ok := recErr.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAuditWriteFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestRedisReserver(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	r := NewRedisReserver(client, time.Hour)
	ctx := context.Background()

	ok, err := r.Reserve(ctx, "FX-2026-000123")
	require.NoError(t, err)
	assert.True(t, ok)

	// second claim on the same ID is a conflict
	ok, err = r.Reserve(ctx, "FX-2026-000123")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Reserve(ctx, "FX-2026-000124")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, mr.Exists(reserveKeyPrefix+"FX-2026-000123"))
}

func TestRedisReserverTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	r := NewRedisReserver(client, time.Minute)
	ok, err := r.Reserve(context.Background(), "FX-2026-000200")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	ok, err = r.Reserve(context.Background(), "FX-2026-000200")
	require.NoError(t, err)
	assert.True(t, ok, "reservation expires after TTL")
}

type stubRecorder struct {
	calls int
	err   error
}

func (s *stubRecorder) Record(context.Context, Entry) error {
	s.calls++
	return s.err
}

func TestFanoutAttemptsAllSinks(t *testing.T) {
	failing := &stubRecorder{err: errors.New("sink down")}
	healthy := &stubRecorder{}

	f := NewFanout(failing, healthy)
	err := f.Record(context.Background(), sampleEntry())

	require.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, healthy.calls, "later sinks still attempted after a failure")
}

func TestFanoutNoSinks(t *testing.T) {
	assert.NoError(t, NewFanout().Record(context.Background(), sampleEntry()))
}
