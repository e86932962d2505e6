package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/seo-assistant/internal/bulk"
	"github.com/jonathan/seo-assistant/internal/calendar"
	"github.com/jonathan/seo-assistant/internal/config"
	"github.com/jonathan/seo-assistant/internal/db"
	"github.com/jonathan/seo-assistant/internal/llm"
	"github.com/jonathan/seo-assistant/internal/pipeline"
	"github.com/jonathan/seo-assistant/internal/retrieval"
	"github.com/jonathan/seo-assistant/internal/tasks"
)

// app bundles the wired components a command needs.
type app struct {
	cfg      config.Config
	client   llm.Client
	database *db.DB

	pipeline    *pipeline.Pipeline
	coordinator *bulk.Coordinator
	planner     *calendar.Planner
	manager     *tasks.Manager
}

// loadMergedConfig resolves the effective configuration from the config
// file, environment, and flags. Flags win over the file.
func loadMergedConfig() (config.Config, error) {
	var cfg config.Config
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if flagAPIKey != "" {
		cfg.APIKey = flagAPIKey
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if flagGoal != "" {
		cfg.Goal = flagGoal
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildApp wires the full component stack from the merged configuration.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := loadMergedConfig()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required: set GEMINI_API_KEY or --api-key")
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	a := &app{cfg: cfg, client: client}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to connect to database: %v\n", err)
			fmt.Fprintf(os.Stderr, "Continuing without persistence...\n")
		} else {
			a.database = database
		}
	}

	opts := pipeline.Options{
		CacheCapacity: cfg.CacheCapacity,
		CacheTTL:      time.Duration(cfg.CacheTTLSeconds) * time.Second,
		MaxRetries:    cfg.MaxRetries,
		Database:      a.database,
	}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
		}
	}

	a.pipeline = pipeline.New(client, retrieval.NewWikipediaClient(), opts)
	a.coordinator = bulk.NewCoordinator(a.pipeline, cfg.BulkConcurrency)
	a.planner = calendar.NewPlanner(a.pipeline, a.coordinator)
	a.manager = tasks.NewManager(a.pipeline, cfg.Workers)
	return a, nil
}

// close releases the app's external resources.
func (a *app) close() {
	a.manager.Shutdown()
	if a.database != nil {
		a.database.Close()
	}
	_ = a.client.Close()
}

// printJSON writes a result to stdout, or to the given path when set.
func printJSON(result any, outPath string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		fmt.Printf("Wrote %s\n", outPath)
		return nil
	}
	fmt.Println(string(data))
	return nil
}

// printText writes rendered text to stdout, or to the given path when set.
func printText(text, outPath string) error {
	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		fmt.Printf("Wrote %s\n", outPath)
		return nil
	}
	fmt.Print(text)
	return nil
}
