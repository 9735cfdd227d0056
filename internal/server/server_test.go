package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminjkraft/wordlebot/internal/corpus"
	"github.com/benjaminjkraft/wordlebot/internal/engine"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c := corpus.Default(5)
	eng, err := engine.New(engine.DefaultConfig(), c.Openers, c.Words)
	require.NoError(t, err)
	return New(eng, nil)
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "healthy", resp.Status)
	assert.Greater(t, resp.Words, 500)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDPassthrough(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/v1/next-guess", GameRequest{Pool: []string{"stare", "stark"}})
	w := do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wordlebot_")
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/analyze", `{"guess":"speed","feedback":"..y.y"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[AnalyzeResponse](t, w)
	assert.Equal(t, map[string]int{"d": 1, "e": 1}, resp.Constraints.MinCounts)
	assert.Equal(t, "ps", resp.Constraints.Forbidden)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"bad feedback", `{"guess":"speed","feedback":"..?.y"}`, http.StatusBadRequest},
		{"missing guess", `{"feedback":"..y.y"}`, http.StatusBadRequest},
		{"wrong length", `{"guess":"speeds","feedback":"..y.yy"}`, http.StatusBadRequest},
		{"not json", `speed`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/v1/analyze", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[ErrorResponse](t, w).Error)
		})
	}
}

func TestFilter(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/v1/filter", `{
		"turns": [{"guess": "speed", "feedback": "..y.y"}],
		"pool": ["abide", "geese", "eland", "speed"]
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[FilterResponse](t, w)
	assert.Equal(t, []string{"abide"}, resp.Candidates)
	assert.Equal(t, 1, resp.Count)

	w = do(t, s, http.MethodPost, "/v1/filter", `{"turns": [{"guess": "speed", "feedback": "..y.y"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[FilterResponse](t, w).Candidates, "abide")
}

func TestFilterConflict(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/v1/filter", `{"turns": [
		{"guess": "crane", "feedback": "....."},
		{"guess": "ebony", "feedback": "g...."}
	]}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "turn 2")
}

func TestNextGuess(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/v1/next-guess", GameRequest{
		Turns: []engine.Turn{{Guess: "stare", Feedback: engine.SimulateFeedback("stare", "stark")}},
		Pool:  []string{"stare", "stark"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[NextGuessResponse](t, w)
	assert.Equal(t, "stark", resp.Guess)
	assert.Equal(t, 1, resp.Candidates)
	assert.Equal(t, map[int]string{0: "s", 1: "t", 2: "a", 3: "r"}, resp.Known.Greens)

	w = do(t, s, http.MethodPost, "/v1/next-guess", `{}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode[NextGuessResponse](t, w).Guess, 5)
}

func TestRunShutsDown(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
