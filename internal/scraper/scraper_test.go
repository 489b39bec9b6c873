package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, "<html><body>節目頁面</body></html>")
	}))
	defer server.Close()

	body, err := New().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, body, "節目頁面")
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New().Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetchEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	_, err := New().Fetch(context.Background(), server.URL)
	assert.ErrorContains(t, err, "empty response")
}

func TestFetchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Fetch(ctx, "http://127.0.0.1:0")
	assert.ErrorIs(t, err, context.Canceled)
}
