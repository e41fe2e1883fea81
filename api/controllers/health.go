package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/leadintake/api/responses"
	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
	"github.com/angelmondragon/leadintake/pkg/logger"
	"github.com/angelmondragon/leadintake/pkg/types"
)

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health answers the liveness probe without touching dependencies.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, types.HealthStatus{Status: "ok"})
	}
}

// HealthReady pings the store and, when configured, redis.
func HealthReady(logg *logger.Logger, store Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := map[string]string{}

		if store != nil {
			if err := store.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
			checks["database"] = "ok"
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
			checks["redis"] = "ok"
		}

		responses.WriteSuccess(w, types.HealthStatus{Status: "ready", Checks: checks})
	}
}
