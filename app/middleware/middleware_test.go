package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMX(t *testing.T) {
	var seen bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IsHTMX(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, seen)

	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, seen)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	var ctxLogged bool
	h := chiMid.RequestID(HTMX(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
		ctxLogged = true
		w.WriteHeader(http.StatusTeapot)
	}))))

	req := httptest.NewRequest(http.MethodPost, "/cards/1/step/up", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, ctxLogged)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inside, entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inside))
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.NotEmpty(t, inside["requestId"])
	assert.Equal(t, inside["requestId"], entry["requestId"])
	assert.Equal(t, "/cards/1/step/up", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, true, entry["htmx"])
}
