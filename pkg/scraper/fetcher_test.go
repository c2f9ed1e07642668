package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestFetch_SendsBrowserUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>Hello</body></html>"))
	}))
	defer srv.Close()

	body, err := NewFetcher(time.Second).Fetch(context.Background(), srv.URL)

	assert.Equal(t, nil, err)
	assert.Equal(t, "<html><body>Hello</body></html>", body)
	assert.Equal(t, userAgent, gotUA)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusServiceUnavailable, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := NewFetcher(time.Second).Fetch(context.Background(), srv.URL)
		srv.Close()

		var fetchErr *FetchError
		assert.Equal(t, true, errors.As(err, &fetchErr))
		assert.Equal(t, status, fetchErr.StatusCode)
	}
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(time.Second).Fetch(context.Background(), url)

	var fetchErr *FetchError
	assert.Equal(t, true, errors.As(err, &fetchErr))
	assert.Equal(t, 0, fetchErr.StatusCode)
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewFetcher(20*time.Millisecond).Fetch(context.Background(), srv.URL)

	assert.NotEqual(t, nil, err)
}
