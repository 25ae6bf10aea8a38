package upstream

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Value float64 `json:"value"`
}

func TestClient_GetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": 2.5}`))
	}))
	defer server.Close()

	c := NewClient("test", "test-agent", time.Second)

	var out payload
	require.NoError(t, c.GetJSON(context.Background(), server.URL+"/thing", &out))
	assert.Equal(t, 2.5, out.Value)
}

func TestClient_GetJSON_Gzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			w.Write([]byte(`{"value": -1}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(`{"value": 7}`))
		gz.Close()
	}))
	defer server.Close()

	c := NewClient("test", "", time.Second)

	var out payload
	require.NoError(t, c.GetJSON(context.Background(), server.URL, &out))
	assert.Equal(t, 7.0, out.Value)
}

func TestClient_PostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(payload{Value: in.Value * 2})
	}))
	defer server.Close()

	c := NewClient("test", "", time.Second)

	var out payload
	require.NoError(t, c.PostJSON(context.Background(), server.URL, payload{Value: 4}, &out))
	assert.Equal(t, 8.0, out.Value)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		wantRetryable bool
	}{
		{"404 not found", http.StatusNotFound, false},
		{"422 unprocessable", http.StatusUnprocessableEntity, false},
		{"429 rate limited", http.StatusTooManyRequests, true},
		{"500 server error", http.StatusInternalServerError, true},
		{"503 unavailable", http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte("error"))
			}))
			defer server.Close()

			c := NewClient("test", "", time.Second)

			var out payload
			err := c.GetJSON(context.Background(), server.URL, &out)
			require.Error(t, err)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.statusCode, statusErr.StatusCode)
			assert.Equal(t, tt.wantRetryable, statusErr.Retryable())
		})
	}
}

func TestClient_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": `))
	}))
	defer server.Close()

	c := NewClient("test", "", time.Second)

	var out payload
	err := c.GetJSON(context.Background(), server.URL, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient("test", "", time.Second)

	var out payload
	for i := 0; i < 6; i++ {
		require.Error(t, c.GetJSON(context.Background(), server.URL, &out))
	}
	assert.Equal(t, gobreaker.StateOpen, c.State())

	err := c.GetJSON(context.Background(), server.URL, &out)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(6), calls.Load(), "open breaker should not reach the server")
}

func TestClient_BreakerIgnoresClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := NewClient("test", "", time.Second)

	var out payload
	for i := 0; i < 10; i++ {
		require.Error(t, c.GetJSON(context.Background(), server.URL, &out))
	}
	assert.Equal(t, gobreaker.StateClosed, c.State())
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		io.WriteString(w, `{"value": 1}`)
	}))
	defer server.Close()

	c := NewClient("test", "", 50*time.Millisecond)

	var out payload
	err := c.GetJSON(context.Background(), server.URL, &out)
	assert.Error(t, err)
}
