// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/ittools/internal/config"
	"github.com/carterperez-dev/ittools/internal/core"
)

type fakeHealth struct {
	ready    bool
	shutdown bool
}

func (f *fakeHealth) SetReady(ready bool)       { f.ready = ready }
func (f *fakeHealth) SetShutdown(shutdown bool) { f.shutdown = shutdown }

func newTestServer(h HealthHandler) *Server {
	return New(Config{
		ServerConfig: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		HealthHandler: h,
	})
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	srv := newTestServer(nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body core.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	srv := newTestServer(nil)
	srv.Router().Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestShutdownMarksHealthDown(t *testing.T) {
	h := &fakeHealth{ready: true}
	srv := newTestServer(h)

	require.NoError(t, srv.Shutdown(context.Background(), 0))
	assert.False(t, h.ready)
	assert.True(t, h.shutdown)
}
