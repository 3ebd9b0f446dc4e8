package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/marisk"
	"github.com/etnz/marisk/date"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com/api"

// Client fetches end-of-day adjusted close prices from EODHD.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
	Limiter *rate.Limiter // nil is unlimited
}

// NewClient returns a client caching responses in cacheDir, limited to rps requests per second.
func NewClient(apiKey, cacheDir string, rps float64) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP:    NewCachingClient(cacheDir),
		Limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// History returns the adjusted close prices of an EODHD ticker ("SPY.US") within r.
func (c *Client) History(ctx context.Context, ticker string, r date.Range) (*date.History[float64], error) {
	// https://eodhd.com/api/eod/SPY.US?fmt=json&api_token=demo&from=2024-01-01&to=2024-12-31
	// [
	//   {"date": "2024-01-02", "open": 472.16, "high": 473.67, "low": 470.49,
	//    "close": 472.65, "adjusted_close": 465.99, "volume": 123623700},
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", c.APIKey)
	if !r.From.IsZero() {
		q.Set("from", r.From.String())
	}
	if !r.To.IsZero() {
		q.Set("to", r.To.String())
	}
	addr := fmt.Sprintf("%s/eod/%s?%s", c.BaseURL, url.PathEscape(ticker), q.Encode())

	var jobj any
	if err := c.get(ctx, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch %q: %w", ticker, err)
	}
	days, err := jsonList(jobj, "$[*].date")
	if err != nil {
		return nil, fmt.Errorf("cannot read %q dates: %w", ticker, err)
	}
	closes, err := jsonList(jobj, "$[*].adjusted_close")
	if err != nil {
		return nil, fmt.Errorf("cannot read %q prices: %w", ticker, err)
	}
	if len(days) != len(closes) {
		return nil, fmt.Errorf("cannot read %q: %d dates for %d prices", ticker, len(days), len(closes))
	}

	h := new(date.History[float64])
	for i, jday := range days {
		s, ok := jday.(string)
		if !ok {
			return nil, fmt.Errorf("%q: date %v is not a string", ticker, jday)
		}
		on, err := date.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", ticker, err)
		}
		v, ok := closes[i].(float64)
		if !ok || v <= 0 {
			log.Warn().Str("ticker", ticker).Str("date", s).Interface("price", closes[i]).Msg("skipping invalid price")
			continue
		}
		h.Append(on, v)
	}
	log.Debug().Str("ticker", ticker).Int("prices", h.Len()).Msg("fetched")
	return h, nil
}

// Panel fetches every ticker concurrently and aligns them into a price panel.
// Columns are named after the tickers.
func (c *Client) Panel(ctx context.Context, tickers []string, r date.Range) (*marisk.Panel, error) {
	histories := make([]*date.History[float64], len(tickers))
	g, ctx := errgroup.WithContext(ctx)
	for i, ticker := range tickers {
		g.Go(func() (err error) {
			histories[i], err = c.History(ctx, ticker, r)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Align(tickers, histories)
}

// get performs an HTTP GET and decodes the JSON response into data.
func (c *Client) get(ctx context.Context, addr string, data any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}

// jsonList evaluates a JSONPath expected to produce a list.
func jsonList(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	list, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: not a list: %v", path, jval)
	}
	return list, nil
}
