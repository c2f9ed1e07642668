package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"reviewlens/internal/model"
	"reviewlens/pkg/llm"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFound = errors.New("slot not found")
	ErrLastSlot     = errors.New("at least one slot is required")
	ErrRunning      = errors.New("a batch is already running")
)

type Scraper interface {
	Scrape(ctx context.Context, rawURL, profile string) ([]model.Review, error)
}

type Option func(*Board)

// WithOnUpdate registers fn to receive every published snapshot.
func WithOnUpdate(fn func([]Slot)) Option {
	return func(b *Board) { b.onUpdate = fn }
}

// Board holds the ordered slot list and runs batches over it. Every change
// publishes a new slice; a slice returned by Snapshot is never written again.
type Board struct {
	scraper    Scraper
	summarizer llm.ReviewSummarizer
	onUpdate   func([]Slot)

	mu      sync.Mutex
	slots   []Slot
	running bool
}

func NewBoard(scraper Scraper, summarizer llm.ReviewSummarizer, opts ...Option) *Board {
	b := &Board{
		scraper:    scraper,
		summarizer: summarizer,
		slots:      []Slot{newSlot(uuid.NewString(), "")},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Snapshot returns the current slots. Callers must not modify the result.
func (b *Board) Snapshot() []Slot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slots
}

func (b *Board) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

func (b *Board) Add(url string) Slot {
	slot := newSlot(uuid.NewString(), url)

	b.mu.Lock()
	next := make([]Slot, len(b.slots), len(b.slots)+1)
	copy(next, b.slots)
	next = append(next, slot)
	b.slots = next
	b.mu.Unlock()

	b.publish(next)
	return slot
}

func (b *Board) SetURL(id, url string) (Slot, error) {
	var updated Slot
	ok := b.update(id, func(s Slot) Slot {
		s.URL = url
		updated = s
		return s
	})
	if !ok {
		return Slot{}, ErrSlotNotFound
	}
	return updated, nil
}

func (b *Board) Remove(id string) error {
	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return ErrSlotNotFound
	}
	if len(b.slots) == 1 {
		b.mu.Unlock()
		return ErrLastSlot
	}

	next := make([]Slot, 0, len(b.slots)-1)
	next = append(next, b.slots[:idx]...)
	next = append(next, b.slots[idx+1:]...)
	b.slots = next
	b.mu.Unlock()

	b.publish(next)
	return nil
}

// Reset replaces every slot with fresh idle slots for urls.
func (b *Board) Reset(urls []string) error {
	if len(urls) == 0 {
		return ErrLastSlot
	}

	next := make([]Slot, len(urls))
	for i, u := range urls {
		next[i] = newSlot(uuid.NewString(), u)
	}

	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return ErrRunning
	}
	b.slots = next
	b.mu.Unlock()

	b.publish(next)
	return nil
}

// Run processes the current slots one after another and returns the final
// snapshot.
func (b *Board) Run(ctx context.Context) ([]Slot, error) {
	jobs, err := b.begin()
	if err != nil {
		return nil, err
	}
	b.process(ctx, jobs)
	return b.Snapshot(), nil
}

// Start is Run in the background. It fails with ErrRunning instead of
// queueing behind a batch in progress.
func (b *Board) Start(ctx context.Context) error {
	jobs, err := b.begin()
	if err != nil {
		return err
	}
	go b.process(ctx, jobs)
	return nil
}

type job struct {
	id  string
	url string
}

func (b *Board) begin() ([]job, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return nil, ErrRunning
	}
	b.running = true

	jobs := make([]job, len(b.slots))
	for i, s := range b.slots {
		jobs[i] = job{id: s.ID, url: strings.TrimSpace(s.URL)}
	}
	return jobs, nil
}

func (b *Board) process(ctx context.Context, jobs []job) {
	defer func() {
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
	}()

	for i, j := range jobs {
		if j.url == "" {
			slog.Debug("skipping empty url", "index", i)
			continue
		}
		b.processSlot(ctx, j)
	}
}

func (b *Board) processSlot(ctx context.Context, j job) {
	slog.Info("processing url", "slot_id", j.id, "url", j.url)

	started := b.update(j.id, func(s Slot) Slot {
		return Slot{ID: s.ID, URL: s.URL, State: StateLoading, Loading: true}
	})
	if !started {
		return
	}

	reviews, err := b.scraper.Scrape(ctx, j.url, "")
	if err != nil {
		slog.Error("error scraping reviews", "slot_id", j.id, "url", j.url, "error", err)
		b.update(j.id, func(s Slot) Slot {
			s.Loading = false
			s.State = StateError
			s.Error = err.Error()
			return s
		})
		return
	}

	slog.Info("reviews scraped", "slot_id", j.id, "url", j.url, "count", len(reviews))
	b.update(j.id, func(s Slot) Slot {
		s.Loading = false
		s.State = StateSuccess
		s.Reviews = reviews
		if len(reviews) > 0 {
			s.Summary = &Summary{State: SummaryPending}
		}
		return s
	})

	if len(reviews) == 0 {
		slog.Info("no reviews to summarize", "slot_id", j.id, "url", j.url)
		return
	}

	res, err := b.summarizer.Summarize(ctx, reviews)
	if err != nil {
		slog.Error("error generating summary", "slot_id", j.id, "url", j.url, "error", err)
		b.update(j.id, func(s Slot) Slot {
			s.Summary = &Summary{State: SummaryError, Error: err.Error()}
			return s
		})
		return
	}

	b.update(j.id, func(s Slot) Slot {
		s.Summary = &Summary{State: SummarySuccess, Text: res.Text}
		return s
	})
}

// update replaces the slot with the given id by fn's result. It reports
// false when the slot no longer exists.
func (b *Board) update(id string, fn func(Slot) Slot) bool {
	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return false
	}

	next := make([]Slot, len(b.slots))
	copy(next, b.slots)
	next[idx] = fn(next[idx])
	b.slots = next
	b.mu.Unlock()

	b.publish(next)
	return true
}

func (b *Board) indexOf(id string) int {
	for i, s := range b.slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) publish(slots []Slot) {
	if b.onUpdate != nil {
		b.onUpdate(slots)
	}
}
