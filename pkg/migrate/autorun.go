package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/leadintake/pkg/db"
	"github.com/angelmondragon/leadintake/pkg/logger"
)

// EnsureSchema applies any pending embedded migrations. The leads table is
// created when absent; existing tables are left untouched.
func EnsureSchema(ctx context.Context, logg *logger.Logger, client *db.Client) error {
	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	if logg != nil {
		ctx = logg.WithField(ctx, "driver", client.Dialect())
		logg.Info(ctx, "ensuring lead schema")
	}

	if err := Run(ctx, sqlDB, client.Dialect(), "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "lead schema ready")
	}
	return nil
}
