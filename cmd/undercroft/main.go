package main

import (
	"flag"
	"log"

	"github.com/cavernkeep/undercroft/internal/bestiary"
	"github.com/cavernkeep/undercroft/internal/config"
	"github.com/cavernkeep/undercroft/internal/items"
	"github.com/cavernkeep/undercroft/internal/logger"
	"github.com/cavernkeep/undercroft/internal/savegame"
	"github.com/cavernkeep/undercroft/internal/spawn"
	"github.com/cavernkeep/undercroft/internal/ui"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "data/undercroft.yaml", "Path to game config YAML file")
	speciesFile := flag.String("species", "data/species.yaml", "Path to species YAML file")
	itemsFile := flag.String("items", "data/items.yaml", "Path to items YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	seed := flag.Int64("seed", 0, "Dungeon generation seed (default: random based on current time)")
	name := flag.String("name", "", "Character name (overrides config)")
	slot := flag.String("slot", "", "Save slot to play (overrides config)")
	dbFile := flag.String("db", "", "Path to save database file (overrides config)")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting Undercroft")

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Failed to load game config, using defaults", "path", *configFile, "error", err)
	}
	if *name != "" {
		cfg.Player.Name = *name
	}
	if *slot != "" {
		cfg.Storage.Slot = *slot
	}
	if *dbFile != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.Path = *dbFile
	}

	// Load species config
	species, err := bestiary.LoadFromYAML(*speciesFile)
	if err != nil {
		logger.Warning("Failed to load species config, using built-in set", "path", *speciesFile, "error", err)
		species = bestiary.Defaults()
	} else {
		logger.Info("Species loaded", "count", len(species.Species))
	}

	// Load items config
	catalog, err := items.LoadFromYAML(*itemsFile)
	if err != nil {
		logger.Warning("Failed to load items config, using built-in set", "path", *itemsFile, "error", err)
		catalog = items.Defaults()
	} else {
		logger.Info("Items loaded", "count", len(catalog.Items))
	}

	// Open save database
	db, err := savegame.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open save database: %v", err)
	}
	defer db.Close()
	logger.Info("Save database initialized", "driver", cfg.Storage.Driver, "slot", cfg.Storage.Slot)

	app, err := ui.New(cfg, db, ui.Options{
		Populator: spawn.NewPopulator(species, catalog),
		Seed:      *seed,
	})
	if err != nil {
		log.Fatalf("Failed to initialize terminal: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Game error: %v", err)
	}

	logger.Info("Undercroft stopped")
}
