package inventory

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"smart_travel/internal/adapters/observability"
	"smart_travel/internal/domain"
)

const maxAttempts = 4

// Client is a CandidateSource backed by a remote inventory API.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("inventory base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) SearchFlights(ctx context.Context, q domain.FlightQuery) ([]domain.Flight, error) {
	v := url.Values{}
	v.Set("origin", strings.ToUpper(q.Origin))
	v.Set("destination", q.Destination)
	v.Set("departure_date", q.DepartureDate.Format(time.DateOnly))
	v.Set("return_date", q.ReturnDate.Format(time.DateOnly))
	v.Set("max_price", formatPrice(q.BudgetCeiling))
	v.Set("travelers", strconv.Itoa(max(q.Travelers, 1)))

	var out flightsResponse
	if err := c.search(ctx, "flights", v, &out); err != nil {
		return nil, err
	}
	return mapFlights(out.Flights), nil
}

func (c *Client) SearchHotels(ctx context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	v := url.Values{}
	v.Set("destination", q.Destination)
	v.Set("check_in", q.CheckIn.Format(time.DateOnly))
	v.Set("check_out", q.CheckOut.Format(time.DateOnly))
	v.Set("max_price", formatPrice(q.BudgetCeiling))
	v.Set("guests", strconv.Itoa(max(q.Guests, 1)))
	if q.TravelStyle != "" {
		v.Set("travel_style", string(q.TravelStyle))
	}

	var out hotelsResponse
	if err := c.search(ctx, "hotels", v, &out); err != nil {
		return nil, err
	}
	return mapHotels(out.Hotels, domain.NightsBetween(q.CheckIn, q.CheckOut)), nil
}

func (c *Client) SearchActivities(ctx context.Context, q domain.ActivityQuery) ([]domain.Activity, error) {
	v := url.Values{}
	v.Set("destination", q.Destination)
	v.Set("start_date", q.StartDate.Format(time.DateOnly))
	v.Set("end_date", q.EndDate.Format(time.DateOnly))
	v.Set("max_price", formatPrice(q.BudgetCeiling))
	for _, in := range q.Interests {
		v.Add("interest", in)
	}

	var out activitiesResponse
	if err := c.search(ctx, "activities", v, &out); err != nil {
		return nil, err
	}
	return mapActivities(out.Activities), nil
}

// ---- Internals ----

var (
	errNotFound     = errors.New("inventory: not found")
	errUnauthorized = errors.New("inventory: unauthorized")
)

// search treats 404 as "no inventory here" and wraps every other failure in
// ErrCandidateSourceUnavailable. Caller cancellation is returned as is.
func (c *Client) search(ctx context.Context, endpoint string, v url.Values, out any) error {
	err := c.get(ctx, endpoint, c.base+"/"+endpoint+"?"+v.Encode(), out)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errNotFound):
		return nil
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrCandidateSourceUnavailable, endpoint, err)
	}
}

// get performs a GET with client-side rate limiting, retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "smart-travel/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal(endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal(endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("decode %s: %w", endpoint, err)
			}
			return nil

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return errNotFound

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return errUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

func formatPrice(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
