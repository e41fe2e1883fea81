package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestDumpCapturesChainAndCode(t *testing.T) {
	err := fmt.Errorf("insert lead: %w", Wrap(CodeConflict, fmt.Errorf("unique"), "session already used"))

	d := Dump(err)
	assert.Equal(t, CodeConflict, d.Code)
	assert.Len(t, d.Chain, 3)
	assert.Empty(t, d.DBCode)
	assert.NotContains(t, d.Fields(), "db_code")
}

func TestDumpExtractsPgxDetails(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "leads_stripe_session_id_key", TableName: "leads"}
	d := Dump(fmt.Errorf("wrap: %w", pgErr))

	assert.Equal(t, "23505", d.DBCode)
	assert.Equal(t, "leads_stripe_session_id_key", d.DBConstraint)
	assert.Equal(t, "leads", d.Fields()["db_table"])
}

func TestDumpExtractsPQDetails(t *testing.T) {
	d := Dump(&pq.Error{Code: "23505", Constraint: "leads_stripe_session_id_key"})
	assert.Equal(t, "23505", d.DBCode)
	assert.Equal(t, "leads_stripe_session_id_key", d.DBConstraint)
}

func TestDumpNil(t *testing.T) {
	assert.Equal(t, ErrorDump{}, Dump(nil))
}
