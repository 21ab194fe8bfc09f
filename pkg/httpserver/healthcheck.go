package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/fieldrules/pkg/logger"
)

// Check is a readiness probe of one dependency, e.g. redis.Healthcheck(client).
type Check func(ctx context.Context) error

// HealthResponse is the body written by HealthCheckHandler.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheckHandler runs every check with the request context, bounded by
// timeout, and answers 200 {"status":"ok"} or 503 {"status":"unavailable"}
// with the failing check names. Without checks it is a liveness probe.
func HealthCheckHandler(log *slog.Logger, timeout time.Duration, checks map[string]Check) http.HandlerFunc {
	names := slices.Sorted(maps.Keys(checks))

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		resp := HealthResponse{Status: "ok"}
		status := http.StatusOK
		for _, name := range names {
			if resp.Checks == nil {
				resp.Checks = make(map[string]string, len(names))
			}
			if err := checks[name](ctx); err != nil {
				if log != nil {
					log.ErrorContext(ctx, "readiness check failed", logger.Component(name), logger.Error(err))
				}
				resp.Checks[name] = "failed"
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
