package model

type Review struct {
	Rating     string `json:"rating" yaml:"rating"`
	ReviewText string `json:"reviewText" yaml:"review_text"`
}
