package orchestrator

import "reviewlens/internal/model"

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

type SummaryState string

const (
	SummaryPending SummaryState = "pending"
	SummarySuccess SummaryState = "success"
	SummaryError   SummaryState = "error"
)

type Summary struct {
	State SummaryState `json:"state" yaml:"state"`
	Text  string       `json:"text,omitempty" yaml:"text,omitempty"`
	Error string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// Slot is one input URL and the results derived from it. Slots are values:
// the board replaces them instead of editing them in place, and Reviews and
// Summary are never modified once published.
type Slot struct {
	ID      string         `json:"id" yaml:"id"`
	URL     string         `json:"url" yaml:"url"`
	State   State          `json:"state" yaml:"state"`
	Loading bool           `json:"loading" yaml:"loading"`
	Reviews []model.Review `json:"reviews" yaml:"reviews"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
	Summary *Summary       `json:"summary,omitempty" yaml:"summary,omitempty"`
}

func newSlot(id, url string) Slot {
	return Slot{ID: id, URL: url, State: StateIdle}
}
