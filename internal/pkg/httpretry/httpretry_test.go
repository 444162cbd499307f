package httpretry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(maxRetries int) *Client {
	return New("test", 2*time.Second, maxRetries, zap.NewNop()).WithInitialInterval(time.Millisecond)
}

func TestClient_GetJSON(t *testing.T) {
	t.Run("retries server errors until success", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"value": 42}`))
		}))
		defer server.Close()

		var out struct {
			Value int `json:"value"`
		}
		err := newTestClient(3).GetJSON(context.Background(), server.URL, nil, &out)
		require.NoError(t, err)
		assert.Equal(t, 42, out.Value)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		var out map[string]interface{}
		err := newTestClient(2).GetJSON(context.Background(), server.URL, nil, &out)
		require.Error(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("not found is permanent", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		var out map[string]interface{}
		err := newTestClient(3).GetJSON(context.Background(), server.URL, nil, &out)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("client error is not retried", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`bad key`))
		}))
		defer server.Close()

		var out map[string]interface{}
		err := newTestClient(3).GetJSON(context.Background(), server.URL, nil, &out)
		require.Error(t, err)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("query is encoded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Москва", r.URL.Query().Get("geocode"))
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		var out map[string]interface{}
		err := newTestClient(0).GetJSON(context.Background(), server.URL, map[string][]string{"geocode": {"Москва"}}, &out)
		require.NoError(t, err)
	})
}
