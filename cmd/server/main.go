package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/antgrillet/hbcaix-sync/app/api"
	"github.com/antgrillet/hbcaix-sync/app/cfg"
	"github.com/antgrillet/hbcaix-sync/app/club"
	"github.com/antgrillet/hbcaix-sync/app/database"
	"github.com/antgrillet/hbcaix-sync/app/scrape"
	"github.com/antgrillet/hbcaix-sync/app/syncer"
	"github.com/antgrillet/hbcaix-sync/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Println("Starting HBC Aix sync server...")

	// Database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName, appCfg.DBSSLMode)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Connected to database successfully")

	version, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Printf("Database schema at version %d", version)

	// Club settings
	settings, err := club.Load(appCfg.ClubConfigPath)
	if err != nil {
		log.Fatal("Failed to load club settings:", err)
	}
	log.Printf("Club settings loaded: %d keywords, competition %q",
		len(settings.Keywords), settings.Competition)

	// Repositories
	teamRepo := database.NewTeamRepository(db)
	matchRepo := database.NewMatchRepository(db)
	logRepo := database.NewSyncLogRepository(db)

	// Pipeline components
	navigator := scrape.NewNavigator(settings)
	classifier := scrape.NewClassifier(cfg.Location())
	resolver := scrape.NewResolver(settings.Keywords)
	extractor := scrape.NewExtractor(navigator, classifier, resolver, settings)
	reconciler := syncer.NewReconciler(matchRepo)
	orchestrator := syncer.NewOrchestrator(teamRepo, logRepo, extractor, reconciler,
		time.Duration(appCfg.CooldownSeconds)*time.Second)

	// Calendar scheduler
	scheduler := tasks.NewScheduler(orchestrator, cfg.Location(),
		[]string{appCfg.DailySpec, appCfg.MidweekSpec, appCfg.WeekendSpec})
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start scheduler:", err)
	}
	defer scheduler.Stop()

	if appCfg.SyncOnStartup {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
			defer cancel()
			if _, err := orchestrator.SyncAll(ctx); err != nil {
				slog.Error("Startup sync failed", "error", err)
			}
		}()
	}

	// HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(teamRepo, matchRepo, logRepo, orchestrator, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 20 * time.Minute, // manual sync runs synchronously
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("HBC Aix sync server started successfully!")

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

	// Scheduler is stopped via defer
	log.Println("HBC Aix sync server shutdown complete")
}
