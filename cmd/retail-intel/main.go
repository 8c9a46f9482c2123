package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/corelia/retail-intel/internal/analytics"
	"github.com/corelia/retail-intel/internal/extraction"
	"github.com/corelia/retail-intel/internal/inventory"
	"github.com/corelia/retail-intel/internal/review"
	"github.com/corelia/retail-intel/internal/server"
	"github.com/corelia/retail-intel/internal/shop"
	"github.com/corelia/retail-intel/internal/store"
	"github.com/corelia/retail-intel/internal/user"
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

	fs := ff.NewFlagSet("retail-intel")
	var (
		port           = fs.IntLong("port", 8080, "HTTP server port")
		dbPath         = fs.StringLong("db", "retail-intel.db", "Database file path")
		storagePath    = fs.StringLong("storage", "./bills", "Bill storage directory path")
		ocrLanguage    = fs.StringLong("ocr-language", "eng", "Tesseract language")
		structurerType = fs.StringLong("structurer", "openrouter", "Structuring provider: 'gemini' or 'openrouter'")
		geminiKey      = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel    = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		openrouterKey  = fs.StringLong("openrouter-key", "", "OpenRouter API key (or set OPENROUTER_API_KEY env var)")
		openrouterURL  = fs.StringLong("openrouter-url", "https://openrouter.ai/api/v1", "OpenRouter API base URL")
		openrouterModel = fs.StringLong("openrouter-model", "meta-llama/llama-3.1-8b-instruct:free", "OpenRouter model name")
		shopCacheMins  = fs.IntLong("shop-cache-minutes", 5, "Shop directory cache TTL in minutes")
		authUser       = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass       = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RETAIL_INTEL"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Initialize database
	slog.Info("Initializing database...")
	db, err := store.Open(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	inventoryDB, err := inventory.NewBoltDB(db)
	if err != nil {
		slog.Error("Failed to initialize inventory bucket", "error", err)
		os.Exit(1)
	}
	shopDB, err := shop.NewBoltDB(db)
	if err != nil {
		slog.Error("Failed to initialize shop bucket", "error", err)
		os.Exit(1)
	}
	reviewDB, err := review.NewBoltDB(db)
	if err != nil {
		slog.Error("Failed to initialize review bucket", "error", err)
		os.Exit(1)
	}
	userDB, err := user.NewBoltDB(db)
	if err != nil {
		slog.Error("Failed to initialize user bucket", "error", err)
		os.Exit(1)
	}
	analyticsDB, err := analytics.NewBoltDB(db)
	if err != nil {
		slog.Error("Failed to initialize analytics bucket", "error", err)
		os.Exit(1)
	}

	// Initialize the extraction pipeline. The structuring provider is
	// optional: without one the pipeline degrades to heuristic parsing.
	strategies := make([]extraction.Strategy, 0, 2)
	switch *structurerType {
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Warn("No Gemini API key configured, LLM structuring disabled")
			break
		}
		slog.Info("Initializing Gemini structurer...", "model", *geminiModel)
		structurer, err := extraction.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
		defer structurer.Close()
		strategies = append(strategies, extraction.NewLLMStrategy(structurer))
	case "openrouter":
		apiKey := *openrouterKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENROUTER_API_KEY")
		}
		if apiKey == "" {
			slog.Warn("No OpenRouter API key configured, LLM structuring disabled")
			break
		}
		slog.Info("Initializing OpenRouter structurer...", "model", *openrouterModel)
		structurer, err := extraction.NewOpenRouter(apiKey, *openrouterURL, *openrouterModel)
		if err != nil {
			slog.Error("Failed to initialize OpenRouter", "error", err)
			os.Exit(1)
		}
		defer structurer.Close()
		strategies = append(strategies, extraction.NewLLMStrategy(structurer))
	default:
		slog.Error("Invalid structurer type", "type", *structurerType, "valid", "gemini or openrouter")
		os.Exit(1)
	}
	strategies = append(strategies, extraction.HeuristicStrategy{})

	pipeline := extraction.NewPipeline(extraction.NewTesseract(*ocrLanguage), strategies...)
	defer pipeline.Close()

	// Initialize bill storage
	slog.Info("Initializing storage...")
	billStore, err := inventory.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Initialize services
	inventoryService := inventory.NewService(inventoryDB, pipeline, billStore)
	userService := user.NewService(userDB, inventoryService)
	reviewService := review.NewService(reviewDB, userService)
	shopService := shop.NewService(shopDB, inventoryService, shop.NewListCache(time.Duration(*shopCacheMins)*time.Minute))
	analyticsService := analytics.NewService(analyticsDB)

	// Initialize server
	basicAuth := server.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	srv := server.NewServer(inventoryService, shopService, reviewService, userService, analyticsService, basicAuth)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := srv.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
