package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sanonone/kektorkv/internal/server"
	"github.com/sanonone/kektorkv/pkg/core"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) *Client {
	t.Helper()
	store, err := core.NewShardedStore(core.DefaultShards)
	require.NoError(t, err)
	srv, err := server.NewServer(store, server.Options{})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return NewWithURL(ts.URL + "/")
}

func TestClientLifecycle(t *testing.T) {
	c := startServer(t)

	_, found, err := c.Get("foo")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.Set("foo", "bar"))
	v, found, err := c.Get("foo")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "bar", v)

	require.NoError(t, c.Set("foo", "baz"))
	v, _, err = c.Get("foo")
	require.NoError(t, err)
	require.Equal(t, "baz", v)

	require.NoError(t, c.Remove("foo"))
	require.NoError(t, c.Remove("foo"))
	_, found, err = c.Get("foo")
	require.NoError(t, err)
	require.False(t, found)
}

func TestClientEscapesKeys(t *testing.T) {
	c := startServer(t)

	key := "a key&with=odd/chars?"
	require.NoError(t, c.Set(key, "v"))
	v, found, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v", v)

	require.NoError(t, c.Set("", "empty"))
	v, found, err = c.Get("")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "empty", v)
}

func TestClientConcurrentKeys(t *testing.T) {
	c := startServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			if err := c.Set(key, fmt.Sprintf("value-%d", i)); err != nil {
				t.Errorf("Set(%s): %v", key, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 16; i++ {
		v, found, err := c.Get(fmt.Sprintf("key-%d", i))
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, fmt.Sprintf("value-%d", i), v)
	}
}

func TestClientAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Query parameter 'key' is required"}`))
	}))
	defer ts.Close()

	c := NewWithURL(ts.URL)
	_, _, err := c.Get("x")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Query parameter 'key' is required", apiErr.Message)
}

func TestClientConnectionError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	err := NewWithURL(url).Set("k", "v")
	require.Error(t, err)
	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr))
}
