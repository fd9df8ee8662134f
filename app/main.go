package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/capeworks/feedhub/app/api"
	"github.com/capeworks/feedhub/app/cfg"
	"github.com/capeworks/feedhub/app/enrich"
	"github.com/capeworks/feedhub/app/fetch"
	"github.com/capeworks/feedhub/app/social"
	"github.com/capeworks/feedhub/app/sources"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to parse configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	log.Println("Starting FeedHub server...")

	// Load source groups
	log.Printf("Loading sources from %s...", appConfig.SourcesFile)
	groups, err := sources.Load(appConfig.SourcesFile)
	if err != nil {
		log.Fatal("Failed to load sources:", err)
	}
	log.Printf("Loaded %d news, %d traffic, %d industry sources",
		len(groups.News), len(groups.Traffic), len(groups.Industry))

	// Initialize core components
	fetchClient := fetch.NewClient(appConfig.UserAgent)
	enricher := enrich.NewEnricher(fetchClient, appConfig.PageTimeout(), appConfig.EnrichBudget)
	socialClient := social.NewClient(appConfig.FBPageID, appConfig.FBAccessToken, appConfig.FBGraphVersion)

	if appConfig.FBPageID == "" || appConfig.FBAccessToken == "" {
		log.Printf("Facebook endpoints DISABLED (FB_PAGE_ID / FB_PAGE_ACCESS_TOKEN not set)")
	}

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(groups, fetchClient, enricher, socialClient)
	server := api.NewServer(apiHandler)

	// Create HTTP server with timeouts
	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appConfig.Port)
		log.Printf("Endpoints available:")
		log.Printf("  News:          http://localhost:%s/news", appConfig.Port)
		log.Printf("  Traffic:       http://localhost:%s/traffic", appConfig.Port)
		log.Printf("  Industry:      http://localhost:%s/industry", appConfig.Port)
		log.Printf("  Article image: http://localhost:%s/news/image?u=<url>", appConfig.Port)
		log.Printf("  Posts:         http://localhost:%s/social/posts", appConfig.Port)
		log.Printf("  Photos:        http://localhost:%s/social/photos", appConfig.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appConfig.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("FeedHub server started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("FeedHub server shutdown complete")
}
