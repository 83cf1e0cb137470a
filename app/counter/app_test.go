package counter_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/asyncware/app/counter"
	"github.com/dmitrymomot/asyncware/core/server"
	"github.com/dmitrymomot/asyncware/httpadapter"
)

func newApp(t *testing.T) (*counter.App, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := counter.Config{
		Server:    server.DefaultConfig(),
		KeyPrefix: "hits:",
	}

	app, err := counter.NewApp(cfg, client, counter.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return app, mr
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNewAppRequiresClient(t *testing.T) {
	t.Parallel()

	_, err := counter.NewApp(counter.Config{Server: server.DefaultConfig()}, nil)
	assert.Error(t, err)
}

func TestHits(t *testing.T) {
	t.Parallel()

	app, mr := newApp(t)
	h := app.Handler()

	for want := int64(1); want <= 3; want++ {
		w := get(h, "/hits/home")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.NotEmpty(t, w.Header().Get(httpadapter.RequestIDHeader))

		var body struct {
			Name string `json:"name"`
			Hits int64  `json:"hits"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "home", body.Name)
		assert.Equal(t, want, body.Hits)
	}

	stored, err := mr.Get("hits:home")
	require.NoError(t, err)
	assert.Equal(t, "3", stored)
}

func TestHitsRedisFailure(t *testing.T) {
	t.Parallel()

	app, mr := newApp(t)
	h := app.Handler()

	// A non-integer value makes INCR fail inside the future
	require.NoError(t, mr.Set("hits:broken", "not-a-number"))

	w := get(h, "/hits/broken")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body httpadapter.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Code)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	app, mr := newApp(t)
	h := app.Handler()

	w := get(h, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	mr.Close()

	w = get(h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	app, mr := newApp(t)
	h := app.Handler()

	assert.Equal(t, "ALIVE", get(h, "/health/live").Body.String())
	assert.Equal(t, "READY", get(h, "/health/ready").Body.String())

	mr.Close()

	assert.Equal(t, http.StatusOK, get(h, "/health/live").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(h, "/health/ready").Code)
}

func TestPanicIsForwarded(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t)

	w := get(app.Handler(), "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(httpadapter.RequestIDHeader, "trace-1")
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)

	assert.Equal(t, "trace-1", w.Header().Get(httpadapter.RequestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t)

	w := get(app.Handler(), "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
