// savetool inspects and prunes the save database without launching
// the game: stored slots, decoded slot summaries, and the graveyard.
//
// Usage:
//
//	go run ./cmd/savetool -list
//	go run ./cmd/savetool -show default
//	go run ./cmd/savetool -graveyard
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cavernkeep/undercroft/internal/config"
	"github.com/cavernkeep/undercroft/internal/savegame"
)

func main() {
	configFile := flag.String("config", "data/undercroft.yaml", "Path to game config YAML file")
	dbFile := flag.String("db", "", "Path to save database file (overrides config)")
	listSaves := flag.Bool("list", false, "List stored save slots")
	show := flag.String("show", "", "Print a summary of the given save slot")
	deleteSlot := flag.String("delete", "", "Delete the given save slot")
	graves := flag.Bool("graveyard", false, "List graveyard entries")
	deleteGrave := flag.String("delete-grave", "", "Delete the graveyard entry with the given ID")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dbFile != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.Path = *dbFile
	}

	db, err := savegame.Open(cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch {
	case *show != "":
		showSlot(db, *show)
	case *deleteSlot != "":
		if err := db.Delete(*deleteSlot); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting slot %q: %v\n", *deleteSlot, err)
			os.Exit(1)
		}
		fmt.Printf("Slot %q deleted.\n", *deleteSlot)
	case *deleteGrave != "":
		if err := db.DeleteGrave(*deleteGrave); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting graveyard entry %q: %v\n", *deleteGrave, err)
			os.Exit(1)
		}
		fmt.Printf("Graveyard entry %q deleted.\n", *deleteGrave)
	case *graves:
		showGraveyard(db)
	case *listSaves:
		showSlots(db)
	default:
		showSlots(db)
	}
}

func showSlots(db *savegame.Database) {
	saves, err := db.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing saves: %v\n", err)
		os.Exit(1)
	}

	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return
	}

	fmt.Printf("%-20s %-8s %s\n", "SLOT", "VERSION", "SAVED AT")
	for _, info := range saves {
		fmt.Printf("%-20s %-8d %s\n", info.Slot, info.Version, info.SavedAt.Format("2006-01-02 15:04:05"))
	}
}

func showSlot(db *savegame.Database, slot string) {
	snap, err := db.Load(slot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading slot %q: %v\n", slot, err)
		os.Exit(1)
	}

	player := snap.Store.Player()
	fmt.Printf("Slot:      %s\n", slot)
	fmt.Printf("Name:      %s\n", player.Name)
	fmt.Printf("Level:     %d\n", player.Level)
	if player.Fighter != nil {
		fmt.Printf("HP:        %d/%d\n", player.Fighter.HP, player.Fighter.BaseMaxHP)
		fmt.Printf("XP:        %d\n", player.Fighter.XP)
	}
	fmt.Printf("Depth:     %d\n", snap.State.Depth)
	fmt.Printf("Carried:   %d items\n", len(snap.State.Inventory))
	fmt.Printf("Entities:  %d\n", snap.Store.Len())
	fmt.Printf("Alive:     %v\n", player.Alive)
}

func showGraveyard(db *savegame.Database) {
	entries, err := db.Graveyard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading graveyard: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("The graveyard is empty.")
		return
	}

	fmt.Printf("%-36s %-16s %-6s %-6s %-20s %s\n", "ID", "NAME", "DEPTH", "LEVEL", "CAUSE", "DIED AT")
	for _, e := range entries {
		fmt.Printf("%-36s %-16s %-6d %-6d %-20s %s\n",
			e.ID, e.Name, e.Depth, e.Level, e.Cause, e.DiedAt.Format("2006-01-02 15:04:05"))
	}
}
