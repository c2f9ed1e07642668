package scraper

import (
	"fmt"
	"strings"

	"reviewlens/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// Extract returns the reviews found in html using the selectors of p, in
// document order. Containers whose body text is blank are skipped. A page
// that matches nothing yields an empty list.
func Extract(html string, p Profile) ([]model.Review, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	reviews := []model.Review{}
	doc.Find(p.Container).Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Find(p.Body).Text())
		if text == "" {
			return
		}

		var rating string
		if p.Rating != "" {
			rating = strings.TrimSpace(s.Find(p.Rating).Text())
		}

		reviews = append(reviews, model.Review{
			Rating:     rating,
			ReviewText: text,
		})
	})

	return reviews, nil
}
