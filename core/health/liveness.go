package health

import (
	"io"
	"net/http"

	"github.com/dmitrymomot/asyncware"
)

// Liveness indicates if the service process is running.
// Always responds "ALIVE" with 200 OK. No dependency checks.
//
// Example:
//
//	mux.Handle("GET /health/live", httpadapter.MustEndpoint(health.Liveness))
func Liveness(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ALIVE")
	return nil
}

// NoContent responds HTTP 204 without body. Ideal for high-frequency checks.
func NoContent(r *http.Request, w http.ResponseWriter, next asyncware.NextFunc) any {
	w.WriteHeader(http.StatusNoContent)
	return nil
}
