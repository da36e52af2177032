package taskservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

// Task is the remote task service's representation of a task.
type Task struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	// ErrTaskNotFound means the task service answered authoritatively that
	// the task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUnavailable means the lookup could not be completed. It does NOT
	// mean the task is absent.
	ErrUnavailable = errors.New("task service unavailable")
)

type Client struct {
	baseURL        string
	httpClient     *http.Client
	maxRetries     int
	initialBackoff time.Duration
}

// NewClient builds a client for the task service's GET /tasks/{id} endpoint.
// timeout bounds each attempt; maxRetries extra attempts are made on
// server-class failures only (the lookup is an idempotent GET).
func NewClient(baseURL string, timeout time.Duration, maxRetries int, initialBackoff time.Duration) *Client {
	return &Client{
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: timeout},
		maxRetries:     maxRetries,
		initialBackoff: initialBackoff,
	}
}

type fetchResult struct {
	body []byte
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// GetTask fetches the task by id, returning the parsed task and the raw
// response body (kept for the snapshot record).
func (c *Client) GetTask(ctx context.Context, id uuid.UUID) (*Task, []byte, error) {
	url := fmt.Sprintf("%s/tasks/%s", c.baseURL, id)

	operation := func() (*fetchResult, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Transport failure on an idempotent GET: retry.
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return &fetchResult{body: body}, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, backoff.Permanent(ErrTaskNotFound)
		case isRetryableStatus(resp.StatusCode):
			return nil, fmt.Errorf("task service returned %d", resp.StatusCode)
		default:
			return nil, backoff.Permanent(fmt.Errorf("task service returned unexpected status %d", resp.StatusCode))
		}
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.initialBackoff

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(uint(c.maxRetries+1)),
	)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var task Task
	if err := json.Unmarshal(res.body, &task); err != nil {
		return nil, nil, fmt.Errorf("%w: malformed task body: %v", ErrUnavailable, err)
	}

	return &task, res.body, nil
}
