package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmakit/backoffice/pkg/apiclient"
)

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	t.Parallel()

	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL, apiclient.WithTokenSource(func() string { return "abc123" }))

	var dest map[string]string
	require.NoError(t, c.Get(context.Background(), "/ping", &dest))
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "yes", dest["ok"])
}

func TestClient_NoTokenMeansNoAuthHeader(t *testing.T) {
	t.Parallel()

	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL, apiclient.WithTokenSource(func() string { return "" }))
	require.NoError(t, c.Get(context.Background(), "/ping", nil))
	assert.False(t, hasAuth)
}

func TestClient_NonSuccessBecomesHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	err := c.Post(context.Background(), "/auth/login", map[string]string{"email": "x"}, nil)
	require.Error(t, err)

	httpErr, ok := apiclient.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "invalid credentials", httpErr.Message())
	assert.NotEmpty(t, httpErr.RequestID)
}

func TestClient_UnreachableServerIsNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	c := apiclient.New(srv.URL)
	err := c.Get(context.Background(), "/products", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrNetwork)

	_, ok := apiclient.AsHTTPError(err)
	assert.False(t, ok)
}

func TestClient_DecodeFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	var dest map[string]any
	err := c.Get(context.Background(), "/broken", &dest)
	assert.ErrorIs(t, err, apiclient.ErrDecodeResponse)
}

func TestClient_JSONBodyRoundTrip(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.Price *= 2
		json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	var out payload
	require.NoError(t, c.Put(context.Background(), "/products/1", payload{Name: "Aspirin", Price: 5}, &out))
	assert.Equal(t, payload{Name: "Aspirin", Price: 10}, out)
}

func TestHTTPError_MessageFallsBackToRawBody(t *testing.T) {
	t.Parallel()

	e := &apiclient.HTTPError{Status: 500, Body: []byte("plain text failure")}
	assert.Equal(t, "plain text failure", e.Message())
}
