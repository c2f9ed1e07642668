package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"reviewlens/internal/model"
	"reviewlens/pkg/scraper"

	"github.com/gin-gonic/gin"
)

type ReviewScraper interface {
	Scrape(ctx context.Context, rawURL, profile string) ([]model.Review, error)
}

type ReviewHandler struct {
	scraper  ReviewScraper
	profiles *scraper.ProfileSet
}

func NewReviewHandler(s ReviewScraper, profiles *scraper.ProfileSet) *ReviewHandler {
	return &ReviewHandler{scraper: s, profiles: profiles}
}

func (h *ReviewHandler) ScrapeReviews(c *gin.Context) {
	rawURL := c.Query("url")

	if err := scraper.ValidateURL(rawURL); err != nil {
		slog.Warn("invalid scrape url", "url", rawURL, "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A valid URL is required as a query parameter."})
		return
	}

	reviews, err := h.scraper.Scrape(c.Request.Context(), rawURL, c.Query("profile"))
	if err != nil {
		switch {
		case errors.Is(err, scraper.ErrUnknownProfile):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown selector profile."})
		case errors.Is(err, scraper.ErrInvalidURL):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A valid URL is required as a query parameter."})
		default:
			slog.Error("error scraping reviews", "url", rawURL, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error fetching reviews. Check the server logs for details."})
		}
		return
	}

	slog.Info("reviews scraped", "url", rawURL, "count", len(reviews))
	c.JSON(http.StatusOK, ScrapeResponse{Reviews: reviews})
}

func (h *ReviewHandler) GetProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, ProfilesResponse{
		Default:  h.profiles.Default,
		Profiles: h.profiles.List(),
	})
}

func (h *ReviewHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
