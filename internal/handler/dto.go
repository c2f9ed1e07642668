package handler

import (
	"reviewlens/internal/model"
	"reviewlens/internal/orchestrator"
	"reviewlens/pkg/scraper"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type ScrapeResponse struct {
	Reviews []model.Review `json:"reviews"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type ProfilesResponse struct {
	Default  string            `json:"default"`
	Profiles []scraper.Profile `json:"profiles"`
}

type SlotRequest struct {
	URL string `json:"url"`
}

type SlotsResponse struct {
	Slots   []orchestrator.Slot `json:"slots"`
	Running bool                `json:"running"`
}
