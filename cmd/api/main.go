package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/affiscout/affiscout/internal/ai"
	"github.com/affiscout/affiscout/internal/config"
	"github.com/affiscout/affiscout/internal/database"
	"github.com/affiscout/affiscout/internal/handlers"
	"github.com/affiscout/affiscout/internal/models"
	"github.com/affiscout/affiscout/internal/repository"
	"github.com/affiscout/affiscout/internal/scraper"
	"github.com/affiscout/affiscout/internal/services/discovery"
	"github.com/affiscout/affiscout/internal/services/ingest"
	"github.com/affiscout/affiscout/internal/tasks"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 3. Synchronize schema
	log.Println("🚀 Synchronizing database schema...")
	if err := db.AutoMigrate(
		&models.AffiliateStore{},
		&models.Product{},
	); err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Wire services
	repo := repository.NewGorm(db.DB)
	ingestSvc := ingest.NewService(repo)
	taskManager := tasks.NewManager()

	var storeAgent *ai.StoreDiscoveryAgent
	var productAgent *ai.ProductScoringAgent
	if cfg.Gemini.APIKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		gemini, err := ai.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		cancel()
		if err != nil {
			log.Printf("⚠️ Gemini client init failed, discovery agents disabled: %v", err)
		} else {
			defer gemini.Close()
			storeAgent = ai.NewStoreDiscoveryAgent(gemini)
			productAgent = ai.NewProductScoringAgent(gemini)
			log.Printf("🤖 Discovery agents ready (model: %s)", cfg.Gemini.Model)
		}
	} else {
		log.Println("⚠️ GEMINI_API_KEY not set, discovery agents disabled")
	}

	var collector *scraper.Collector
	if cfg.Scraper.CollectorURL != "" {
		collector = scraper.NewCollector(cfg.Scraper.CollectorURL)
		log.Printf("🔎 Product collector: %s", cfg.Scraper.CollectorURL)
	} else {
		log.Println("⚠️ COLLECTOR_URL not set, product collection disabled")
	}

	discoverySvc := discovery.NewService(storeAgent, productAgent, collector, ingestSvc, taskManager)

	// 5. Set up HTTP router
	router := handlers.NewRouter(discoverySvc, ingestSvc, taskManager, handlers.ReviewSettings{
		Dir:          cfg.Review.Dir,
		MaxBatchSize: cfg.Review.MaxBatchSize,
	}, handlers.DiscoveryDefaults{
		Country: cfg.Discovery.Country,
		Niche:   cfg.Discovery.Niche,
		Period:  cfg.Discovery.Period,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Handler(),
	}

	// 6. Start server with graceful shutdown
	go func() {
		log.Printf("🌍 API listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Server shutdown error: %v", err)
	}

	if err := db.Close(); err != nil {
		log.Printf("⚠️ Database shutdown error: %v", err)
	}
	log.Println("👋 Shutdown complete")
}
