package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angelmondragon/leadintake/pkg/logger"
)

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReady(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	cases := []struct {
		name  string
		store Pinger
		cache Pinger
		want  int
	}{
		{name: "store only", store: ok, want: http.StatusOK},
		{name: "store and cache", store: ok, cache: ok, want: http.StatusOK},
		{name: "store down", store: down, want: http.StatusServiceUnavailable},
		{name: "cache down", store: ok, cache: down, want: http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthReady(logger.Nop(), tc.store, tc.cache)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			assert.Equal(t, tc.want, rec.Code)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}
