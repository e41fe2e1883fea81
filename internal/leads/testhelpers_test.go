package leads

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/leadintake/pkg/config"
	"github.com/angelmondragon/leadintake/pkg/db"
	"github.com/angelmondragon/leadintake/pkg/migrate"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver:       config.DBDriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "leads.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, migrate.EnsureSchema(context.Background(), nil, client))
	return NewRepository(client.DB())
}
