package counter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/asyncware"
	"github.com/dmitrymomot/asyncware/core/logger"
	"github.com/dmitrymomot/asyncware/httpadapter"
	"github.com/dmitrymomot/asyncware/pkg/async"
)

// ErrIntentionalPanic is raised by GET /panic.
var ErrIntentionalPanic = errors.New("counter: intentional panic")

type hitsResponse struct {
	Name string `json:"name"`
	Hits int64  `json:"hits"`
}

// hits increments the counter for the path name and writes its new value.
// Redis runs in a future; its failure reaches the client through next.
func (a *App) hits(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
	return async.Async(r.Context(), r.PathValue("name"), func(ctx context.Context, name string) (hitsResponse, error) {
		n, err := a.redis.Incr(ctx, a.config.KeyPrefix+name).Result()
		if err != nil {
			return hitsResponse{}, fmt.Errorf("%w: %w", httpadapter.ErrServiceUnavailable, err)
		}

		resp := hitsResponse{Name: name, Hits: n}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			a.logger.WarnContext(ctx, "failed to write hits response", logger.Error(err))
		}
		return resp, nil
	})
}

// healthz pings Redis synchronously and returns the failure as a value.
func (a *App) healthz(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
	if err := a.health(r.Context()); err != nil {
		return fmt.Errorf("%w: %w", httpadapter.ErrServiceUnavailable, err)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
	return nil
}

// crash panics so the adapter forwards the failure before the call returns.
func (a *App) crash(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
	panic(ErrIntentionalPanic)
}
