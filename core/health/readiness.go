package health

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/asyncware"
	"github.com/dmitrymomot/asyncware/core/logger"
	"github.com/dmitrymomot/asyncware/httpadapter"
	"github.com/dmitrymomot/asyncware/pkg/async"
)

// Readiness verifies all service dependencies are functioning.
// Checks run concurrently in a future. Responds "READY" if all pass; the first
// failure is forwarded to next as httpadapter.ErrServiceUnavailable.
//
// Example:
//
//	ready := health.Readiness(log, redis.Healthcheck(client))
//	mux.Handle("GET /health/ready", httpadapter.MustEndpoint(ready))
func Readiness(log *slog.Logger, fn ...func(context.Context) error) httpadapter.Handler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
		return async.Exec(r.Context(), fn, func(ctx context.Context, checks []func(context.Context) error) error {
			g, gctx := errgroup.WithContext(ctx)
			for _, check := range checks {
				g.Go(func() error { return check(gctx) })
			}

			if err := g.Wait(); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				return fmt.Errorf("%w: %w", httpadapter.ErrServiceUnavailable, err)
			}

			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, "READY")
			return nil
		})
	}
}
