package fireauth

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRejectsWhenRateLimited(t *testing.T) {
	var calls int

	mux := http.NewServeMux()
	mux.HandleFunc("/accounts:lookup", func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(t, w, http.StatusOK, map[string]any{"users": []map[string]any{{"localId": "user-1"}}})
	})

	client := newTestClient(t, mux)
	// One request allowed, then the limiter trips.
	client.limiter.SetLimit(1e-9)
	client.limiter.SetBurst(1)

	_, err := client.lookupAccount(context.Background(), "tok1")
	require.NoError(t, err)

	_, err = client.lookupAccount(context.Background(), "tok1")
	require.Error(t, err)
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.Equal(t, 1, calls, "a rate-limited call never reaches the provider")
}

func TestPostSetsCorrelationID(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)

	mux := http.NewServeMux()
	mux.HandleFunc("/accounts:lookup", func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "correlation ID must be a UUID")
		mu.Lock()
		seen[id] = true
		mu.Unlock()
		writeJSON(t, w, http.StatusOK, map[string]any{"users": []map[string]any{{"localId": "user-1"}}})
	})

	client := newTestClient(t, mux)
	for i := 0; i < 3; i++ {
		_, err := client.lookupAccount(context.Background(), "tok1")
		require.NoError(t, err)
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 3, "every request carries its own correlation ID")
}

func TestPostDecodeErrorOnMalformedSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json at all"))
	})

	client := newTestClient(t, mux)
	_, err := client.exchangeRefreshToken(context.Background(), "r1")
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, []byte("not json at all"), decodeErr.Body)
}

func TestPostTransportErrorOnUnreachableHost(t *testing.T) {
	config := CreateConfig()
	config.APIKey = "k"
	config.RequestTimeout = time.Second
	config.IdentityToolkitURL = "http://127.0.0.1:1"
	config.SecureTokenURL = "http://127.0.0.1:1"
	config.Logger = NewNoOpLogger()

	client, err := New(config)
	require.NoError(t, err)

	_, err = client.exchangeRefreshToken(context.Background(), "r1")
	require.Error(t, err)
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}
