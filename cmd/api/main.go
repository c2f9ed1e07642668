package main

import (
	"log"
	"log/slog"
	"os"

	"reviewlens/internal/config"
	"reviewlens/internal/handler"
	"reviewlens/internal/orchestrator"
	"reviewlens/pkg/llm"
	"reviewlens/pkg/scraper"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	profiles, err := scraper.LoadProfiles(cfg.SelectorsFile)
	if err != nil {
		log.Fatalf("error loading selector profiles: %v", err)
	}

	summarizer, err := llm.NewClient(cfg.Provider, cfg.APIKey)
	if err != nil {
		log.Fatalf("error creating llm client: %v", err)
	}

	reviewScraper := scraper.NewScraper(scraper.NewFetcher(cfg.FetchTimeout), profiles)
	board := orchestrator.NewBoard(reviewScraper, summarizer)

	reviewHandler := handler.NewReviewHandler(reviewScraper, profiles)
	summaryHandler := handler.NewSummaryHandler(summarizer, !cfg.IsProduction())
	slotHandler := handler.NewSlotHandler(board)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/scrapeReviews", reviewHandler.ScrapeReviews)
	r.Any("/api/generateSummary", summaryHandler.GenerateSummary)
	r.GET("/api/profiles", reviewHandler.GetProfiles)
	r.GET("/api/slots", slotHandler.GetSlots)
	r.POST("/api/slots", slotHandler.CreateSlot)
	r.POST("/api/slots/run", slotHandler.RunSlots)
	r.PUT("/api/slots/:id", slotHandler.UpdateSlot)
	r.DELETE("/api/slots/:id", slotHandler.DeleteSlot)
	r.GET("/health", reviewHandler.GetHealth)

	slog.Info("starting server", "port", cfg.Port, "provider", cfg.Provider, "profiles", profiles.Names())

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
