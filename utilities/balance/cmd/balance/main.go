// balance is a Monte Carlo simulator for tuning Undercroft's combat
// numbers. It fights player builds against bestiary species through the
// game's real attack resolution and reports win rates.
//
// Usage:
//
//	balance [command] [options]
//
// Commands:
//
//	combat    - Duel one player build against one species
//	depths    - Sweep the spawn tables depth by depth
//	levels    - Show xp thresholds and kills needed per level
//	sweep     - Run the standard balance checks
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/cavernkeep/undercroft/internal/bestiary"
	"github.com/cavernkeep/undercroft/internal/config"
	"github.com/cavernkeep/undercroft/internal/leveling"
	"github.com/cavernkeep/undercroft/utilities/balance"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "combat":
		runCombat()
	case "depths":
		runDepths()
	case "levels":
		runLevels()
	case "sweep":
		runSweep()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Undercroft Balance Simulator

Fights player builds against bestiary species through the game's real
attack resolution and reports win rates.

Usage: balance <command> [options]

Commands:
  combat    Duel one player build against one species
  depths    Sweep the spawn tables depth by depth
  levels    Show xp thresholds and kills needed per level
  sweep     Run the standard balance checks

Examples:
  balance combat -species=troll -level=4 -fights=10000
  balance depths -max-depth=10 -level-rate=1.5 -detail
  balance levels -max-level=8
  balance sweep -fights=5000

Use "balance <command> -h" for more information about a command.`)
}

func runCombat() {
	fs := flag.NewFlagSet("combat", flag.ExitOnError)

	configPath := fs.String("config", "data/undercroft.yaml", "Path to game configuration YAML")
	speciesPath := fs.String("species-file", "data/species.yaml", "Path to species YAML")
	speciesID := fs.String("species", "orc", "Species ID to fight")

	level := fs.Int("level", 1, "Player level, grown from base stats")
	hp := fs.Int("hp", 0, "Override base max hp (0 = config value)")
	power := fs.Int("power", 0, "Override base power (0 = config value)")
	defense := fs.Int("defense", 0, "Override base defense (0 = config value)")

	miss := fs.Float64("miss", -1, "Miss chance override (-1 = config value)")
	fights := fs.Int("fights", 10000, "Number of duels to run")
	seedFlag := fs.Int64("seed", 0, "RNG seed (0 = time-based)")

	fs.Parse(os.Args[2:])

	cfg := loadConfig(*configPath)
	catalog := loadSpecies(*speciesPath)
	def := lookupSpecies(catalog, *speciesID)

	base := basePlayer(cfg, *hp, *power, *defense)
	player := balance.GrownPlayer(base, *level, progressionFrom(cfg))
	missChance := missOr(cfg, *miss)
	seed, rng := newRNG(*seedFlag)

	fmt.Println("=== Combat Simulation ===")
	fmt.Println()
	fmt.Printf("Player:  level %d, %d HP, %d Power, %d Defense\n",
		player.Level, player.HP, player.Power, player.Defense)
	fmt.Printf("Species: %s (%s), %d HP, %d Power, %d Defense, %d XP\n",
		*speciesID, def.Name, def.MaxHP, def.Power, def.Defense, def.XP)
	fmt.Printf("Miss chance: %.0f%%, Fights: %d, Seed: %d\n", missChance*100, *fights, seed)
	fmt.Println()

	result := balance.Run(player, def, missChance, *fights, rng)
	printSummary(result)
	fmt.Printf("Assessment: %s\n", assessBalance(result.WinRate))
}

func runDepths() {
	fs := flag.NewFlagSet("depths", flag.ExitOnError)

	configPath := fs.String("config", "data/undercroft.yaml", "Path to game configuration YAML")
	speciesPath := fs.String("species-file", "data/species.yaml", "Path to species YAML")
	maxDepth := fs.Int("max-depth", 10, "Deepest level to sweep")
	levelRate := fs.Float64("level-rate", 1.0, "Player levels gained per depth cleared")
	miss := fs.Float64("miss", -1, "Miss chance override (-1 = config value)")
	fights := fs.Int("fights", 2000, "Duels per species per depth")
	seedFlag := fs.Int64("seed", 0, "RNG seed (0 = time-based)")
	detail := fs.Bool("detail", false, "Print the per-species breakdown under each depth")

	fs.Parse(os.Args[2:])

	cfg := loadConfig(*configPath)
	catalog := loadSpecies(*speciesPath)
	base := basePlayer(cfg, 0, 0, 0)
	missChance := missOr(cfg, *miss)
	seed, rng := newRNG(*seedFlag)

	fmt.Println("=== Depth Sweep ===")
	fmt.Println()
	fmt.Printf("Base player: %d HP, %d Power, %d Defense, growing %.1f levels per depth\n",
		base.HP, base.Power, base.Defense, *levelRate)
	fmt.Printf("Miss chance: %.0f%%, Fights per matchup: %d, Seed: %d\n", missChance*100, *fights, seed)
	fmt.Println()

	reports := balance.SweepDepths(catalog, base, progressionFrom(cfg), func(depth int) int {
		return levelForDepth(depth, *levelRate)
	}, missChance, *maxDepth, *fights, rng)

	fmt.Println("Depth | Lvl | HP/Pow/Def | Expected Win | Hardest Matchup    | Assessment")
	fmt.Println("------+-----+------------+--------------+--------------------+-----------")
	for _, r := range reports {
		fmt.Printf("%5d | %3d | %3d/%2d/%2d  | %11.1f%% | %-18s | %s\n",
			r.Depth, r.Player.Level, r.Player.HP, r.Player.Power, r.Player.Defense,
			r.ExpectedWinRate, hardestMatchup(r), assessBalance(r.ExpectedWinRate))

		if *detail {
			for _, o := range r.Outcomes {
				fmt.Printf("        %-8s share %3.0f%%  win %5.1f%%  avg %.1f rounds\n",
					o.ID, o.Share*100, o.Summary.WinRate, o.Summary.AvgRounds)
			}
		}
	}
}

func runLevels() {
	fs := flag.NewFlagSet("levels", flag.ExitOnError)

	configPath := fs.String("config", "data/undercroft.yaml", "Path to game configuration YAML")
	speciesPath := fs.String("species-file", "data/species.yaml", "Path to species YAML")
	maxLevel := fs.Int("max-level", 10, "Highest level to tabulate")

	fs.Parse(os.Args[2:])

	cfg := loadConfig(*configPath)
	catalog := loadSpecies(*speciesPath)
	prog := progressionFrom(cfg)
	ids := balance.SortedSpeciesIDs(catalog)

	fmt.Println("=== Leveling Pace ===")
	fmt.Println()
	fmt.Printf("Threshold to clear level L is %d + L*%d xp.\n", prog.Base, prog.Factor)
	fmt.Println("Cells show kills needed when every kill is that one species.")
	fmt.Println()

	var header strings.Builder
	var divider strings.Builder
	header.WriteString("Level | XP Needed |")
	divider.WriteString("------+-----------+")
	for _, id := range ids {
		header.WriteString(fmt.Sprintf(" %-14s |", fmt.Sprintf("%s (%dxp)", id, catalog.Species[id].XP)))
		divider.WriteString("----------------+")
	}
	fmt.Println(header.String())
	fmt.Println(divider.String())

	for level := 1; level <= *maxLevel; level++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%5d | %9d |", level, prog.Threshold(level)))
		for _, id := range ids {
			row.WriteString(fmt.Sprintf(" %14d |", balance.KillsToLevel(prog, level, catalog.Species[id].XP)))
		}
		fmt.Println(row.String())
	}
}

func runSweep() {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)

	configPath := fs.String("config", "data/undercroft.yaml", "Path to game configuration YAML")
	speciesPath := fs.String("species-file", "data/species.yaml", "Path to species YAML")
	levelRate := fs.Float64("level-rate", 1.0, "Player levels gained per depth cleared")
	fights := fs.Int("fights", 5000, "Duels per check")
	seedFlag := fs.Int64("seed", 0, "RNG seed (0 = time-based)")

	fs.Parse(os.Args[2:])

	cfg := loadConfig(*configPath)
	catalog := loadSpecies(*speciesPath)
	prog := progressionFrom(cfg)
	base := basePlayer(cfg, 0, 0, 0)
	seed, rng := newRNG(*seedFlag)

	fmt.Println("=== Balance Sweep ===")
	fmt.Println()
	fmt.Printf("Checking every species at its first spawn depth. Fights per check: %d, Seed: %d\n",
		*fights, seed)
	fmt.Println()

	for _, id := range balance.SortedSpeciesIDs(catalog) {
		def := catalog.Species[id]
		depth := balance.FirstSpawnDepth(def)
		if depth == 0 {
			fmt.Printf("--- %s never spawns, skipped ---\n\n", id)
			continue
		}

		level := levelForDepth(depth, *levelRate)
		player := balance.GrownPlayer(base, level, prog)

		fmt.Printf("--- %s at depth %d (player level %d) ---\n", id, depth, level)
		result := balance.Run(player, def, cfg.Combat.MissChance, *fights, rng)
		printSummary(result)
		fmt.Printf("Assessment: %s\n", assessBalance(result.WinRate))
		fmt.Println()
	}

	fmt.Println("=== Summary ===")
	fmt.Println("Target win rates:")
	fmt.Println("  - A species' first appearance: 50-85%")
	fmt.Println("  - The same fight two depths later should read EASY or better")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Duels are one on one; packs make every depth harder than its duels")
	fmt.Println("  - Stalemates mean neither side can land damage and usually need a stat bump")
}

func printSummary(s balance.Summary) {
	fmt.Printf("Results (%d fights):\n", s.Fights)
	fmt.Printf("  Win Rate:       %.1f%% (%d wins, %d losses)\n", s.WinRate, s.PlayerWins, s.MonsterWins)
	if s.Stalemates > 0 {
		fmt.Printf("  Stalemates:     %d (neither side can land damage)\n", s.Stalemates)
	}
	fmt.Printf("  Avg Rounds:     %.1f (min: %d, max: %d)\n", s.AvgRounds, s.MinRounds, s.MaxRounds)
	fmt.Printf("  Avg HP Left:    %.1f (when winning)\n", s.AvgHPLeft)
	fmt.Printf("  Avg Damage In:  %.1f\n", s.AvgDamageTaken)
	fmt.Printf("  Avg Damage Out: %.1f\n", s.AvgDamageDealt)
}

func assessBalance(winRate float64) string {
	var assessment string
	switch {
	case winRate < 30:
		assessment = "TOO HARD"
	case winRate < 50:
		assessment = "CHALLENGING"
	case winRate < 70:
		assessment = "BALANCED"
	case winRate < 85:
		assessment = "EASY"
	default:
		assessment = "TOO EASY"
	}

	if !isTerminal() {
		return assessment
	}
	switch assessment {
	case "BALANCED":
		return "\033[32m" + assessment + "\033[0m" // green
	case "CHALLENGING", "EASY":
		return "\033[33m" + assessment + "\033[0m" // yellow
	default:
		return "\033[31m" + assessment + "\033[0m" // red
	}
}

func isTerminal() bool {
	// Simple check - could be improved
	return os.Getenv("TERM") != "" && !strings.Contains(os.Getenv("TERM"), "dumb")
}

func hardestMatchup(r balance.DepthReport) string {
	if len(r.Outcomes) == 0 {
		return "none"
	}
	worst := r.Outcomes[0]
	for _, o := range r.Outcomes[1:] {
		if o.Summary.WinRate < worst.Summary.WinRate {
			worst = o
		}
	}
	return fmt.Sprintf("%s (%.1f%%)", worst.ID, worst.Summary.WinRate)
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Printf("Using built-in config defaults: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func loadSpecies(path string) *bestiary.Config {
	catalog, err := bestiary.LoadFromYAML(path)
	if err != nil {
		fmt.Printf("Using built-in species defaults: %v\n", err)
		return bestiary.Defaults()
	}
	return catalog
}

func lookupSpecies(catalog *bestiary.Config, id string) bestiary.SpeciesDefinition {
	def, ok := catalog.Species[id]
	if !ok {
		fmt.Printf("Unknown species %q. Known species: %s\n",
			id, strings.Join(balance.SortedSpeciesIDs(catalog), ", "))
		os.Exit(1)
	}
	return def
}

func basePlayer(cfg *config.Config, hp, power, defense int) balance.Combatant {
	base := balance.Combatant{
		Name:    "Player",
		Level:   1,
		HP:      cfg.Player.MaxHP,
		Power:   cfg.Player.Power,
		Defense: cfg.Player.Defense,
	}
	if hp > 0 {
		base.HP = hp
	}
	if power > 0 {
		base.Power = power
	}
	if defense > 0 {
		base.Defense = defense
	}
	return base
}

func progressionFrom(cfg *config.Config) leveling.Progression {
	return leveling.Progression{
		Base:          cfg.Leveling.Base,
		Factor:        cfg.Leveling.Factor,
		HPReward:      cfg.Leveling.HPReward,
		PowerReward:   cfg.Leveling.PowerReward,
		DefenseReward: cfg.Leveling.DefenseReward,
	}
}

func missOr(cfg *config.Config, override float64) float64 {
	if override >= 0 {
		return override
	}
	return cfg.Combat.MissChance
}

// levelForDepth assumes a run gains about rate levels per depth
// cleared, starting from level 1 on the first floor.
func levelForDepth(depth int, rate float64) int {
	level := 1 + int(float64(depth-1)*rate+0.5)
	if level < 1 {
		level = 1
	}
	return level
}

func newRNG(seed int64) (int64, *rand.Rand) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seed, rand.New(rand.NewSource(seed))
}
