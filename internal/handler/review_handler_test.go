package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"reviewlens/internal/model"
	"reviewlens/pkg/scraper"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

const reviewPage = `<html><body>
<div class="review"><span class="a-icon-alt">5</span><span class="review-text-content"><span>Great product</span></span></div>
<div class="review"><span class="a-icon-alt">1</span><span class="review-text-content"><span> </span></span></div>
</body></html>`

type fakeScraper struct {
	reviews []model.Review
	err     error
}

func (f *fakeScraper) Scrape(ctx context.Context, rawURL, profile string) ([]model.Review, error) {
	return f.reviews, f.err
}

func newTestReviewRouter(s ReviewScraper) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReviewHandler(s, scraper.DefaultProfiles())
	r.GET("/api/scrapeReviews", h.ScrapeReviews)
	r.GET("/api/profiles", h.GetProfiles)
	r.GET("/health", h.GetHealth)
	return r
}

func scrapePath(target string) string {
	return "/api/scrapeReviews?url=" + url.QueryEscape(target)
}

func TestScrapeReviews_MissingURL(t *testing.T) {
	r := newTestReviewRouter(&fakeScraper{})

	for _, path := range []string{"/api/scrapeReviews", scrapePath("not a url"), scrapePath("ftp://x.example/file")} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", path, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var res ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "A valid URL is required as a query parameter.", res.Error)
	}
}

func TestScrapeReviews_FetchError(t *testing.T) {
	store := &fakeScraper{err: &scraper.FetchError{URL: "https://example.com", StatusCode: 503}}
	r := newTestReviewRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", scrapePath("https://example.com"), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Error fetching reviews. Check the server logs for details.", res.Error)
}

func TestScrapeReviews_UpstreamStatuses(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusServiceUnavailable, http.StatusInternalServerError} {
		origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		s := scraper.NewScraper(scraper.NewFetcher(time.Second), nil)
		r := newTestReviewRouter(s)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", scrapePath(origin.URL+"/product-reviews/B0"), nil)
		r.ServeHTTP(w, req)
		origin.Close()

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var res ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.NotEqual(t, "", res.Error)
	}
}

func TestScrapeReviews_EndToEnd(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(reviewPage))
	}))
	defer origin.Close()

	s := scraper.NewScraper(scraper.NewFetcher(time.Second), nil)
	r := newTestReviewRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", scrapePath(origin.URL), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ScrapeResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, []model.Review{{Rating: "5", ReviewText: "Great product"}}, res.Reviews)
}

func TestScrapeReviews_EmptyListIsArray(t *testing.T) {
	r := newTestReviewRouter(&fakeScraper{reviews: []model.Review{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", scrapePath("https://example.com"), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"reviews":[]}`, w.Body.String())
}

func TestScrapeReviews_UnknownProfile(t *testing.T) {
	s := scraper.NewScraper(scraper.NewFetcher(time.Second), nil)
	r := newTestReviewRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", scrapePath("https://example.com")+"&profile=ebay", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProfiles(t *testing.T) {
	r := newTestReviewRouter(&fakeScraper{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/profiles", nil)
	r.ServeHTTP(w, req)

	var res ProfilesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "amazon", res.Default)
	assert.Equal(t, 1, len(res.Profiles))
	assert.Equal(t, ".review", res.Profiles[0].Container)
}

func TestGetHealth(t *testing.T) {
	r := newTestReviewRouter(&fakeScraper{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
}
