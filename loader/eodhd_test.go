package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/etnz/marisk/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payloads = map[string]string{
	"/eod/SPY.US": `[
		{"date": "2024-01-02", "close": 472.65, "adjusted_close": 465.99},
		{"date": "2024-01-03", "close": 468.79, "adjusted_close": 462.18},
		{"date": "2024-01-04", "close": 467.28, "adjusted_close": 460.69}
	]`,
	"/eod/IEF.US": `[
		{"date": "2024-01-03", "close": 95.1, "adjusted_close": 93.2},
		{"date": "2024-01-04", "close": 94.8, "adjusted_close": 0}
	]`,
}

// newTestServer serves the payloads and counts requests.
func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("api_token") != "key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		payload, ok := payloads[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server, cacheDir string) *Client {
	c := NewClient("key", cacheDir, 1000)
	c.BaseURL = srv.URL
	return c
}

func TestClientHistory(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(newTestServer(t, &hits), "")

	h, err := c.History(context.Background(), "SPY.US", date.Range{From: date.New(2024, 1, 1)})
	require.NoError(t, err)
	require.Equal(t, 3, h.Len())
	d, v := h.Latest()
	assert.Equal(t, date.New(2024, 1, 4), d)
	assert.Equal(t, 460.69, v)
}

func TestClientHistoryErrors(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)

	_, err := newTestClient(srv, "").History(context.Background(), "NOPE.US", date.Range{})
	assert.ErrorContains(t, err, "404")

	bad := newTestClient(srv, "")
	bad.APIKey = "wrong"
	_, err = bad.History(context.Background(), "SPY.US", date.Range{})
	assert.ErrorContains(t, err, "401")
}

func TestClientPanel(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(newTestServer(t, &hits), "")

	p, err := c.Panel(context.Background(), []string{"SPY.US", "IEF.US"}, date.Range{})
	require.NoError(t, err)
	assert.Equal(t, []string{"SPY.US", "IEF.US"}, p.Assets())
	assert.Equal(t, []date.Date{date.New(2024, 1, 3), date.New(2024, 1, 4)}, p.Dates())
	// IEF's zero price is skipped and forward-filled
	assert.Equal(t, []float64{460.69, 93.2}, p.Row(1))
}

func TestDiskCache(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	dir := t.TempDir()

	for range 3 {
		h, err := newTestClient(srv, dir).History(context.Background(), "SPY.US", date.Range{})
		require.NoError(t, err)
		assert.Equal(t, 3, h.Len())
	}
	assert.Equal(t, int32(1), hits.Load(), "cached responses are served from disk")

	// errors are not cached
	for range 2 {
		_, err := newTestClient(srv, dir).History(context.Background(), "NOPE.US", date.Range{})
		assert.True(t, strings.Contains(err.Error(), "404"))
	}
	assert.Equal(t, int32(3), hits.Load())
}
