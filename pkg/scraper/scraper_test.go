package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

type fakeFetcher struct {
	html string
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.html, f.err
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{url: "https://www.amazon.com/product-reviews/B0", valid: true},
		{url: "http://localhost:3000/x?y=1", valid: true},
		{url: "", valid: false},
		{url: "amazon.com/product", valid: false},
		{url: "ftp://example.com/file", valid: false},
		{url: "https://", valid: false},
		{url: "not a url", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			assert.Equal(t, tt.valid, err == nil)
			if !tt.valid {
				assert.Equal(t, true, errors.Is(err, ErrInvalidURL))
			}
		})
	}
}

func TestScrape(t *testing.T) {
	f := &fakeFetcher{html: page(reviewHTML("5", "Great product"), reviewHTML("1", ""))}
	s := NewScraper(f, nil)

	reviews, err := s.Scrape(context.Background(), "https://www.amazon.com/product-reviews/B0", "")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(reviews))
	assert.Equal(t, "Great product", reviews[0].ReviewText)
	assert.Equal(t, []string{"https://www.amazon.com/product-reviews/B0"}, f.urls)
}

func TestScrape_InvalidURLSkipsFetch(t *testing.T) {
	f := &fakeFetcher{}
	s := NewScraper(f, nil)

	_, err := s.Scrape(context.Background(), "nope", "")

	assert.Equal(t, true, errors.Is(err, ErrInvalidURL))
	assert.Equal(t, 0, len(f.urls))
}

func TestScrape_FetchErrorPropagates(t *testing.T) {
	f := &fakeFetcher{err: &FetchError{URL: "https://example.com", StatusCode: 503}}
	s := NewScraper(f, nil)

	_, err := s.Scrape(context.Background(), "https://example.com", "")

	var fetchErr *FetchError
	assert.Equal(t, true, errors.As(err, &fetchErr))
	assert.Equal(t, 503, fetchErr.StatusCode)
}
