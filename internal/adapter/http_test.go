package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTTPClient() *RealHTTPClient {
	return &RealHTTPClient{
		client:          &http.Client{Timeout: 5 * time.Second},
		initialInterval: 10 * time.Millisecond,
		maxElapsedTime:  5 * time.Second,
	}
}

func TestGetRaw_DroppedConnectionIsNotRetried(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		hijacker, ok := w.(http.Hijacker)
		if !ok {
			return
		}
		conn, _, err := hijacker.Hijack()
		if err != nil {
			return
		}
		_ = conn.Close()
	}))
	defer server.Close()

	_, _, err := newTestHTTPClient().GetRaw(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to perform request")
	assert.Equal(t, int32(1), requests.Load())
}

func TestGet_RetriesRateLimited(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"height":"42"}`))
	}))
	defer server.Close()

	var result struct {
		Height string `json:"height"`
	}
	require.NoError(t, newTestHTTPClient().Get(context.Background(), server.URL, &result))
	assert.Equal(t, "42", result.Height)
	assert.Equal(t, int32(2), requests.Load())
}

func TestGetRaw_StatusErrorIsNotRetried(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "tx not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, _, err := newTestHTTPClient().GetRaw(context.Background(), server.URL)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "tx not found")
	assert.Equal(t, int32(1), requests.Load())
}
