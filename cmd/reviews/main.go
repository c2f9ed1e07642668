package main

import (
	"log"
	"log/slog"
	"os"

	"reviewlens/internal/commands"
	"reviewlens/internal/config"
	"reviewlens/pkg/llm"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	app := commands.NewApp(func() (llm.ReviewSummarizer, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		return llm.NewClient(cfg.Provider, cfg.APIKey)
	})

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
