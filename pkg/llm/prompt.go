package llm

import (
	"fmt"
	"strings"

	"reviewlens/internal/model"
)

const summaryInstructions = `Please analyze these Amazon product reviews and provide:
1. A concise summary of the overall sentiment
2. Key positive points mentioned
3. Any significant issues or complaints (if any)
4. An overall assessment of the product based on these reviews

Here are the reviews:

`

func formatReviews(reviews []model.Review) string {
	blocks := make([]string, len(reviews))
	for i, r := range reviews {
		blocks[i] = fmt.Sprintf("Rating: %s\nReview: %s", r.Rating, r.ReviewText)
	}
	return strings.Join(blocks, "\n\n")
}

func BuildPrompt(reviews []model.Review) string {
	return summaryInstructions + formatReviews(reviews)
}
