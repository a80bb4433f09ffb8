// Command sync runs one full scrape-and-reconcile pass and exits. Per-team
// errors are reported inside the printed summary and do not affect the exit
// code; only a failure of the pass itself exits nonzero.
package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/antgrillet/hbcaix-sync/app/cfg"
	"github.com/antgrillet/hbcaix-sync/app/club"
	"github.com/antgrillet/hbcaix-sync/app/database"
	"github.com/antgrillet/hbcaix-sync/app/scrape"
	"github.com/antgrillet/hbcaix-sync/app/syncer"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appCfg == nil {
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName, appCfg.DBSSLMode)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if _, err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	settings, err := club.Load(appCfg.ClubConfigPath)
	if err != nil {
		log.Fatal("Failed to load club settings:", err)
	}

	teamRepo := database.NewTeamRepository(db)
	matchRepo := database.NewMatchRepository(db)
	logRepo := database.NewSyncLogRepository(db)

	navigator := scrape.NewNavigator(settings)
	classifier := scrape.NewClassifier(cfg.Location())
	resolver := scrape.NewResolver(settings.Keywords)
	extractor := scrape.NewExtractor(navigator, classifier, resolver, settings)
	reconciler := syncer.NewReconciler(matchRepo)
	orchestrator := syncer.NewOrchestrator(teamRepo, logRepo, extractor, reconciler,
		time.Duration(appCfg.CooldownSeconds)*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	summary, err := orchestrator.SyncAll(ctx)
	if err != nil {
		slog.Error("Sync failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		slog.Error("Failed to render summary", "error", err)
		os.Exit(1)
	}
	os.Stdout.Write(append(out, '\n'))
}
