package loader

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/marisk/date"
	"github.com/rs/zerolog/log"
)

// diskCache is an http.RoundTripper that keeps successful responses in a folder for the day.
type diskCache struct {
	base  http.RoundTripper
	dir   string
	today func() date.Date
}

// NewCachingClient returns an http.Client caching responses in dir; entries expire every day.
// An empty dir disables the cache.
func NewCachingClient(dir string) *http.Client {
	if dir == "" {
		return new(http.Client)
	}
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: dir, today: date.Today}}
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	// the day is part of the key, so that entries expire every day.
	key := fmt.Sprintf("%s %s %s", c.today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if resp, err := c.get(key, req); err == nil {
		log.Debug().Str("url", req.URL.Path).Msg("cache hit")
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response on disk. DumpResponse leaves resp.Body readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}
