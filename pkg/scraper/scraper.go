package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"reviewlens/internal/model"
)

var ErrInvalidURL = errors.New("invalid url")

func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return nil
}

type Scraper struct {
	fetcher  PageFetcher
	profiles *ProfileSet
}

func NewScraper(fetcher PageFetcher, profiles *ProfileSet) *Scraper {
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	return &Scraper{fetcher: fetcher, profiles: profiles}
}

func (s *Scraper) Profiles() *ProfileSet {
	return s.profiles
}

// Scrape downloads rawURL and extracts its reviews. profile may be empty, in
// which case it is chosen from the URL host.
func (s *Scraper) Scrape(ctx context.Context, rawURL, profile string) ([]model.Review, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	p, err := s.profiles.Resolve(profile, rawURL)
	if err != nil {
		return nil, err
	}

	html, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	reviews, err := Extract(html, p)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", rawURL, err)
	}

	return reviews, nil
}
