package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestStoreAnswered(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "success", err: nil, want: true},
		{name: "client went away", err: fmt.Errorf("list news: %w", context.Canceled), want: true},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "postgres value too long", err: fmt.Errorf("insert news: %w", &pgconn.PgError{Code: "22001"}), want: true},
		{name: "postgres admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: false},
		{name: "postgres connection failure", err: &pgconn.PgError{Code: "08006"}, want: false},
		{name: "sqlite constraint", err: sqlite3.Error{Code: sqlite3.ErrConstraint}, want: true},
		{name: "sqlite disk i/o", err: sqlite3.Error{Code: sqlite3.ErrIoErr}, want: false},
		{name: "query timeout", err: context.DeadlineExceeded, want: false},
		{name: "unknown", err: errors.New("driver: bad connection"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storeAnswered(tt.err))
		})
	}
}

func TestIsUnavailable(t *testing.T) {
	assert.True(t, IsUnavailable(gobreaker.ErrOpenState))
	assert.True(t, IsUnavailable(fmt.Errorf("get news: %w", gobreaker.ErrTooManyRequests)))
	assert.False(t, IsUnavailable(errors.New("news not found")))
	assert.False(t, IsUnavailable(nil))
}

func TestStoreSettings(t *testing.T) {
	s := StoreSettings()

	assert.Equal(t, "database", s.Name)
	assert.Equal(t, uint32(5), s.TripAfter)
	assert.Equal(t, 30*time.Second, s.Cooldown)
	assert.Equal(t, uint32(3), s.TrialRequests)
	assert.Equal(t, time.Minute, s.Window)
}
