package recording

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPSource fetches recordings from the demo recordings API:
//
//	GET {BaseURL}/recordings       -> []Summary
//	GET {BaseURL}/recordings/{id}  -> Recording
//
// Transport errors and 5xx responses are retried up to Retries times with a
// linear backoff.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	Retries int
	Backoff time.Duration
	Logger  *zap.Logger
}

// NewHTTPSource returns an HTTPSource with a per-request timeout.
func NewHTTPSource(baseURL string, timeout time.Duration, retries int, logger *zap.Logger) *HTTPSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Retries: retries,
		Backoff: 500 * time.Millisecond,
		Logger:  logger,
	}
}

// List returns the summaries served by the API.
func (s *HTTPSource) List(ctx context.Context) ([]Summary, error) {
	var out []Summary
	if err := s.getJSON(ctx, "/recordings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Fetch returns a single recording.
func (s *HTTPSource) Fetch(ctx context.Context, sessionID string) (*Recording, error) {
	body, err := s.get(ctx, "/recordings/"+url.PathEscape(sessionID))
	if err != nil {
		return nil, err
	}
	rec, err := Parse(body, sessionID)
	if err != nil {
		return nil, fmt.Errorf("decoding recording %s: %w", sessionID, err)
	}
	return rec, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, path string, v any) error {
	body, err := s.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func (s *HTTPSource) get(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= s.Retries; attempt++ {
		if attempt > 0 {
			s.Logger.Debug("retrying request",
				zap.String("path", path), zap.Int("attempt", attempt), zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.Backoff * time.Duration(attempt)):
			}
		}

		body, retry, err := s.do(ctx, path)
		if err == nil {
			return body, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("GET %s: giving up after %d attempts: %w", path, s.Retries+1, lastErr)
}

// do performs one request. retry reports whether the failure is transient.
func (s *HTTPSource) do(ctx context.Context, path string) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, fmt.Errorf("GET %s: %w", path, ErrNotFound)
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	case resp.StatusCode >= 300:
		return nil, false, fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading %s: %w", path, err)
	}
	return body, false, nil
}
