// mapgen carves dungeon levels with the game generator and renders
// them as ASCII, so the room and spawn tables can be tuned without
// playing a run.
//
// Usage:
//
//	go run ./cmd/mapgen -seed 7 -depth 1 -count 3
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cavernkeep/undercroft/internal/bestiary"
	"github.com/cavernkeep/undercroft/internal/config"
	"github.com/cavernkeep/undercroft/internal/dungeon"
	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/items"
	"github.com/cavernkeep/undercroft/internal/spawn"
)

func main() {
	configFile := flag.String("config", "data/undercroft.yaml", "Path to game config YAML file")
	speciesFile := flag.String("species", "data/species.yaml", "Path to species YAML file")
	itemsFile := flag.String("items", "data/items.yaml", "Path to items YAML file")
	seed := flag.Int64("seed", 0, "Generation seed (default: random based on current time)")
	depth := flag.Int("depth", 1, "First dungeon depth to carve")
	count := flag.Int("count", 1, "Number of consecutive levels to render")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	showLegend := flag.Bool("legend", true, "Show legend")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	species, err := bestiary.LoadFromYAML(*speciesFile)
	if err != nil {
		species = bestiary.Defaults()
	}
	catalog, err := items.LoadFromYAML(*itemsFile)
	if err != nil {
		catalog = items.Defaults()
	}

	genSeed := *seed
	if genSeed == 0 {
		genSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(genSeed))

	gen := &dungeon.Generator{
		Width:       cfg.Map.Width,
		Height:      cfg.Map.Height,
		MaxRooms:    cfg.Rooms.MaxRooms,
		RoomMinSize: cfg.Rooms.MinSize,
		RoomMaxSize: cfg.Rooms.MaxSize,
	}
	pop := spawn.NewPopulator(species, catalog)
	store := entity.NewStore(entity.NewPlayer(cfg.Player.Name, cfg.Player.MaxHP, cfg.Player.Defense, cfg.Player.Power))

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Dungeon Preview (Seed: %d)\n", genSeed))
	output.WriteString(strings.Repeat("=", 60) + "\n\n")

	for i := 0; i < *count; i++ {
		d := *depth + i
		m, err := gen.Generate(d, store, pop, rng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error carving depth %d: %v\n", d, err)
			os.Exit(1)
		}
		renderLevel(&output, d, m, store)
		output.WriteString("\n")
	}

	if *showLegend {
		output.WriteString(getLegend())
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Preview written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}
}

func renderLevel(output *strings.Builder, depth int, m *dungeon.Map, store *entity.Store) {
	output.WriteString(fmt.Sprintf("Depth %d\n", depth))
	output.WriteString(strings.Repeat("-", 40) + "\n")

	grid := make([][]rune, m.Height)
	for y := range grid {
		row := make([]rune, m.Width)
		for x := range row {
			if m.Blocked(x, y) {
				row[x] = '#'
			} else {
				row[x] = '.'
			}
		}
		grid[y] = row
	}

	// Lay entities over the terrain, blockers last so a monster
	// standing on loot wins the cell.
	for _, e := range store.Entities() {
		if !e.Blocks {
			grid[e.Y][e.X] = e.Glyph
		}
	}
	for _, e := range store.Entities() {
		if e.Blocks {
			grid[e.Y][e.X] = e.Glyph
		}
	}

	for _, row := range grid {
		output.WriteString(string(row))
		output.WriteString("\n")
	}

	renderSummary(output, store)
}

func renderSummary(output *strings.Builder, store *entity.Store) {
	monsters := make(map[string]int)
	loot := make(map[string]int)
	for _, e := range store.Entities() {
		switch {
		case e.AI != nil:
			monsters[e.Name]++
		case e.Item != nil:
			loot[e.Name]++
		}
	}

	output.WriteString("\n")
	output.WriteString(fmt.Sprintf("Monsters: %s\n", tally(monsters)))
	output.WriteString(fmt.Sprintf("Items:    %s\n", tally(loot)))
}

// tally formats name counts in a stable order, "none" when empty.
func tally(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%dx %s", counts[name], name))
	}
	return strings.Join(parts, ", ")
}

func getLegend() string {
	return `
Legend:
  [@] Player start
  [<] Stairs down
  [#] Wall
  [.] Floor

  Other glyphs are monsters and items from the loaded catalogs.
`
}
