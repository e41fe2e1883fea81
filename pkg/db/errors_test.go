package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("connection refused"), want: false},
		{name: "sqlite", err: errors.New("UNIQUE constraint failed: leads.stripe_session_id"), constraint: "stripe_session_id", want: true},
		{name: "sqlite other column", err: errors.New("UNIQUE constraint failed: leads.email"), constraint: "stripe_session_id", want: false},
		{name: "pgx", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "leads_stripe_session_id_key"}), constraint: "stripe_session_id", want: true},
		{name: "pgx not unique", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "pq", err: &pq.Error{Code: "23505", Constraint: "leads_stripe_session_id_key"}, want: true},
		{name: "gorm translated", err: fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), constraint: "stripe_session_id", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "leads.db?"+sqliteDefaultParams, SQLiteDSN("leads.db"))
	assert.Equal(t, "file::memory:?cache=shared", SQLiteDSN("file::memory:?cache=shared"))
}
