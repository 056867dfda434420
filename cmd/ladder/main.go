package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ladder/internal/config"
	"github.com/jask/ladder/internal/database"
	"github.com/jask/ladder/internal/database/repository"
	"github.com/jask/ladder/internal/service"
	"github.com/jask/ladder/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	// repositories
	seasonRepo := repository.NewSeasonRepo(db)
	teamRepo := repository.NewTeamRepo(db)
	matchRepo := repository.NewMatchRepo(db)

	ingester := &service.IngestService{Matches: matchRepo, Teams: teamRepo}

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		log.Printf("warn: using local timezone due to load failure: %v", err)
		loc = time.Local
	}

	p := tea.NewProgram(tui.New(ctx, cfg,
		tui.Repos{Seasons: seasonRepo, Teams: teamRepo, Matches: matchRepo},
		tui.Services{Ingest: ingester},
		loc,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
