package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordSet(t *testing.T) {
	s := NewWordSet([]string{"Crane", "slate"})
	assert.Equal(t, 2, s.Len())

	ok, err := s.IsKnownWord(context.Background(), "CRANE")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.FilterKnownWords(context.Background(), []string{"slate", "zxcvb", "crane"})
	require.NoError(t, err)
	assert.Equal(t, []string{"slate", "crane"}, got)
}

// newDictionaryServer knows the given words, fails on "broke", and counts
// requests.
func newDictionaryServer(t *testing.T, words ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	known := make(map[string]bool)
	for _, w := range words {
		known[w] = true
	}
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		word := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		switch {
		case word == "broke":
			http.Error(w, "upstream down", http.StatusBadGateway)
		case known[word]:
			_, _ = w.Write([]byte(`[{"word":"` + word + `"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestClientIsKnownWord(t *testing.T) {
	srv, _ := newDictionaryServer(t, "crane")
	c, err := NewClient(ClientConfig{BaseURL: srv.URL + "/api/v2/entries/en/", Timeout: time.Second})
	require.NoError(t, err)
	ctx := context.Background()

	ok, err := c.IsKnownWord(ctx, "Crane")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsKnownWord(ctx, "crxne")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.IsKnownWord(ctx, "broke")
	assert.ErrorIs(t, err, ErrValidationUnavailable)
}

func TestClientFilterKnownWords(t *testing.T) {
	srv, hits := newDictionaryServer(t, "crane", "slate")
	c, err := NewClient(ClientConfig{BaseURL: srv.URL, BatchSize: 2})
	require.NoError(t, err)
	ctx := context.Background()

	got, err := c.FilterKnownWords(ctx, []string{"crane", "crxne", "slate"})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, got)
	assert.Equal(t, int32(3), hits.Load())

	// Failed lookups keep the word and report the failure.
	got, err = c.FilterKnownWords(ctx, []string{"broke", "crxne", "crane"})
	assert.ErrorIs(t, err, ErrValidationUnavailable)
	assert.Equal(t, []string{"broke", "crane"}, got)

	got, err = c.FilterKnownWords(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestClientUnreachable(t *testing.T) {
	srv, _ := newDictionaryServer(t)
	url := srv.URL
	srv.Close()

	c, err := NewClient(ClientConfig{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)
	got, err := c.FilterKnownWords(context.Background(), []string{"crane", "slate"})
	assert.ErrorIs(t, err, ErrValidationUnavailable)
	assert.Equal(t, []string{"crane", "slate"}, got)
}

func TestClientCancelled(t *testing.T) {
	srv, hits := newDictionaryServer(t, "crane")
	c, err := NewClient(ClientConfig{BaseURL: srv.URL, RequestsPerSecond: 1, Burst: 1})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.IsKnownWord(ctx, "crane")
	assert.ErrorIs(t, err, ErrValidationUnavailable)
	assert.Equal(t, int32(0), hits.Load())
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient(ClientConfig{BaseURL: "not a url"})
	assert.Error(t, err)
}

func TestClientCallerCancelDoesNotFailOthers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(started)
		}
		<-release
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	t.Cleanup(unblock)

	c, err := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.IsKnownWord(ctx, "crane")
		first <- err
	}()
	<-started

	second := make(chan bool, 1)
	go func() {
		ok, err := c.IsKnownWord(context.Background(), "crane")
		assert.NoError(t, err)
		second <- ok
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-first, ErrValidationUnavailable)

	unblock()
	select {
	case ok := <-second:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("second lookup never finished")
	}
	assert.Equal(t, int32(1), hits.Load())
}
