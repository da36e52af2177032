package taskservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	// Tiny backoff so retry tests stay fast.
	return NewClient(baseURL, 500*time.Millisecond, 2, time.Millisecond)
}

func TestGetTaskSuccess(t *testing.T) {
	taskId := uuid.New()
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/tasks/"+taskId.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"` + taskId.String() + `","title":"Ship release","status":"open"}`))
	}))
	defer srv.Close()

	task, raw, err := newTestClient(srv.URL).GetTask(context.Background(), taskId)

	require.NoError(t, err)
	assert.Equal(t, taskId, task.Id)
	assert.Equal(t, "Ship release", task.Title)
	assert.NotEmpty(t, raw)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetTaskNotFoundDoesNotRetry(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).GetTask(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetTaskRetriesServerErrors(t *testing.T) {
	taskId := uuid.New()
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id":"` + taskId.String() + `","title":"Recovered"}`))
	}))
	defer srv.Close()

	task, _, err := newTestClient(srv.URL).GetTask(context.Background(), taskId)

	require.NoError(t, err)
	assert.Equal(t, "Recovered", task.Title)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetTaskExhaustedRetriesIsUnavailable(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).GetTask(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrUnavailable)
	// 1 initial attempt + 2 retries
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetTaskClientErrorIsPermanent(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).GetTask(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetTaskTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Nothing listening anymore.

	_, _, err := newTestClient(srv.URL).GetTask(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrUnavailable)
}
