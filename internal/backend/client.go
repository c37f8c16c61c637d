package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/mmcdole/mediaclubs/internal/domain"
	"github.com/mmcdole/mediaclubs/internal/payload"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	baseRetryDelay = 500 * time.Millisecond

	// Requests are spread out to avoid hammering the backend
	requestInterval = 100 * time.Millisecond
	requestBurst    = 5
)

// errNotFound is mapped to a resource-specific sentinel by callers
var errNotFound = errors.New("not found")

// Client fetches members and clubs from the media clubs backend
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter

	retryDelay time.Duration
}

// NewClient creates a new backend API client
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Every(requestInterval), requestBurst),
		retryDelay: baseRetryDelay,
	}
}

// doRequest performs an authenticated GET against the backend.
// 5xx responses are retried with exponential backoff. Every attempt of one
// call carries the same X-Request-ID.
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	reqURL := c.baseURL + path
	requestID := uuid.NewString()

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1)) // 500ms, 1s, 2s
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		c.logger.Debug("backend request", "url", reqURL, "attempt", attempt, "requestID", requestID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Error("backend request failed", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, domain.ErrAuthFailed
		case resp.StatusCode == http.StatusNotFound:
			return nil, errNotFound
		case resp.StatusCode >= 500 && resp.StatusCode < 600:
			lastErr = fmt.Errorf("server error: %d - %s", resp.StatusCode, string(body))
			c.logger.Warn("backend server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt,
				"maxRetries", maxRetries,
				"path", path,
			)
			continue
		case resp.StatusCode != http.StatusOK:
			c.logger.Error("backend request error", "status", resp.StatusCode, "body", string(body))
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return body, nil
	}

	c.logger.Error("backend request failed after retries", "error", lastErr, "url", reqURL)
	return nil, lastErr
}

// GetMember fetches a member with all of their clubs
func (c *Client) GetMember(ctx context.Context, id int) (*domain.Member, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("/members/%d", id))
	if errors.Is(err, errNotFound) {
		return nil, fmt.Errorf("member %d: %w", id, domain.ErrMemberNotFound)
	}
	if err != nil {
		return nil, err
	}

	member, err := payload.DecodeMember(body)
	if err != nil {
		c.logger.Error("failed to decode member", "error", err, "memberID", id)
		return nil, fmt.Errorf("member %d: %w", id, err)
	}
	return member, nil
}

// FetchClub fetches a single club of variant T
func FetchClub[T domain.Variant[T]](ctx context.Context, c *Client, id int) (domain.Club[T], error) {
	var zero T
	kind := strings.ToLower(string(zero.Kind()))

	body, err := c.doRequest(ctx, fmt.Sprintf("/clubs/%s/%d", kind, id))
	if errors.Is(err, errNotFound) {
		return domain.Club[T]{}, fmt.Errorf("%s club %d: %w", kind, id, domain.ErrClubNotFound)
	}
	if err != nil {
		return domain.Club[T]{}, err
	}

	club, err := payload.DecodeClub[T](body)
	if err != nil {
		c.logger.Error("failed to decode club", "error", err, "kind", kind, "clubID", id)
		return domain.Club[T]{}, fmt.Errorf("%s club %d: %w", kind, id, err)
	}
	return club, nil
}

var _ domain.MemberClient = (*Client)(nil)
