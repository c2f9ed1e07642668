package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"reviewlens/internal/orchestrator"
	"reviewlens/pkg/llm"
	"reviewlens/pkg/scraper"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// SummarizerFactory defers building the LLM client until a command needs
// it, so scrape and profiles work without an API key.
type SummarizerFactory func() (llm.ReviewSummarizer, error)

func NewApp(newSummarizer SummarizerFactory) *cli.App {
	return &cli.App{
		Name:  "reviews",
		Usage: "scrape product review pages and summarize their sentiment",
		Commands: []*cli.Command{
			{
				Name:      "scrape",
				Usage:     "extract reviews from a single page",
				ArgsUsage: "<url>",
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "profile", Usage: "selector profile (default: chosen by host)"},
				),
				Action: ScrapeAction,
			},
			{
				Name:      "summarize",
				Usage:     "scrape and summarize each url in order",
				ArgsUsage: "<url> [url...]",
				Flags:     commonFlags(),
				Action: func(c *cli.Context) error {
					return SummarizeAction(c, newSummarizer)
				},
			},
			{
				Name:   "profiles",
				Usage:  "list selector profiles",
				Flags:  commonFlags(),
				Action: ProfilesAction,
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "output format: json or yaml"},
		&cli.StringFlag{Name: "selectors", EnvVars: []string{"SELECTORS_FILE"}, Usage: "YAML selector profile file"},
		&cli.DurationFlag{Name: "timeout", Value: scraper.DefaultFetchTimeout, Usage: "page fetch timeout"},
	}
}

func newScraper(c *cli.Context) (*scraper.Scraper, error) {
	profiles, err := scraper.LoadProfiles(c.String("selectors"))
	if err != nil {
		return nil, err
	}
	return scraper.NewScraper(scraper.NewFetcher(c.Duration("timeout")), profiles), nil
}

func ScrapeAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("scrape expects exactly one url", 2)
	}

	s, err := newScraper(c)
	if err != nil {
		return err
	}

	reviews, err := s.Scrape(c.Context, c.Args().First(), c.String("profile"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("error scraping reviews: %v", err), 1)
	}

	return write(c.App.Writer, c.String("format"), map[string]interface{}{"reviews": reviews})
}

func SummarizeAction(c *cli.Context, newSummarizer SummarizerFactory) error {
	if c.NArg() == 0 {
		return cli.Exit("summarize expects at least one url", 2)
	}

	s, err := newScraper(c)
	if err != nil {
		return err
	}

	summarizer, err := newSummarizer()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	board := orchestrator.NewBoard(s, summarizer, orchestrator.WithOnUpdate(progressPrinter(c.App.ErrWriter)))
	if err := board.Reset(c.Args().Slice()); err != nil {
		return err
	}

	slots, err := board.Run(c.Context)
	if err != nil {
		return err
	}

	if err := write(c.App.Writer, c.String("format"), map[string]interface{}{"slots": slots}); err != nil {
		return err
	}

	for _, slot := range slots {
		if slot.State == orchestrator.StateError || (slot.Summary != nil && slot.Summary.State == orchestrator.SummaryError) {
			return cli.Exit("one or more urls failed", 1)
		}
	}
	return nil
}

func ProfilesAction(c *cli.Context) error {
	profiles, err := scraper.LoadProfiles(c.String("selectors"))
	if err != nil {
		return err
	}

	return write(c.App.Writer, c.String("format"), map[string]interface{}{
		"default":  profiles.Default,
		"profiles": profiles.List(),
	})
}

// progressPrinter reports each slot once it leaves the loading state.
func progressPrinter(w io.Writer) func([]orchestrator.Slot) {
	reported := map[string]string{}
	return func(slots []orchestrator.Slot) {
		for _, s := range slots {
			if s.Loading || s.State == orchestrator.StateIdle {
				continue
			}
			status := string(s.State)
			if s.Summary != nil {
				status += ", summary " + string(s.Summary.State)
			}
			if reported[s.ID] == status {
				continue
			}
			reported[s.ID] = status
			fmt.Fprintf(w, "%s %s: %s (%d reviews)\n", time.Now().Format("15:04:05"), s.URL, status, len(s.Reviews))
		}
	}
}

func write(w io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", format), 2)
	}
}
