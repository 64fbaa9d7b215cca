package balance

import (
	"math/rand"
	"sort"

	"github.com/cavernkeep/undercroft/internal/bestiary"
	"github.com/cavernkeep/undercroft/internal/leveling"
	"github.com/cavernkeep/undercroft/internal/spawn"
)

// SpeciesOutcome pairs one species' duel summary with its share of the
// spawn table at the swept depth.
type SpeciesOutcome struct {
	ID      string
	Weight  int
	Share   float64
	Summary Summary
}

// DepthReport collects the outcomes for every species that can spawn at
// one depth, plus the spawn-weighted expected win rate.
type DepthReport struct {
	Depth           int
	Player          Combatant
	Outcomes        []SpeciesOutcome
	ExpectedWinRate float64
}

// SweepDepths fights a grown player against every species that can
// spawn on each of depths 1..maxDepth. levelFor maps a depth to the
// character level the sweep assumes a run has reached by then.
func SweepDepths(species *bestiary.Config, base Combatant, prog leveling.Progression, levelFor func(depth int) int, missChance float64, maxDepth, fights int, rng *rand.Rand) []DepthReport {
	ids := SortedSpeciesIDs(species)

	reports := make([]DepthReport, 0, maxDepth)
	for depth := 1; depth <= maxDepth; depth++ {
		report := DepthReport{
			Depth:  depth,
			Player: GrownPlayer(base, levelFor(depth), prog),
		}

		total := 0
		for _, id := range ids {
			total += spawn.FromDepth(species.Species[id].Spawn, depth)
		}

		for _, id := range ids {
			weight := spawn.FromDepth(species.Species[id].Spawn, depth)
			if weight <= 0 {
				continue
			}
			outcome := SpeciesOutcome{
				ID:      id,
				Weight:  weight,
				Share:   float64(weight) / float64(total),
				Summary: Run(report.Player, species.Species[id], missChance, fights, rng),
			}
			report.ExpectedWinRate += outcome.Share * outcome.Summary.WinRate
			report.Outcomes = append(report.Outcomes, outcome)
		}
		reports = append(reports, report)
	}
	return reports
}

// SortedSpeciesIDs returns the catalog's species IDs in a stable order
// so reports read the same from run to run.
func SortedSpeciesIDs(c *bestiary.Config) []string {
	ids := make([]string, 0, len(c.Species))
	for id := range c.Species {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FirstSpawnDepth returns the shallowest depth at which the species has
// any spawn weight, or 0 when its table never yields.
func FirstSpawnDepth(def bestiary.SpeciesDefinition) int {
	first := 0
	for _, t := range def.Spawn {
		if t.Value <= 0 {
			continue
		}
		if first == 0 || t.Depth < first {
			first = t.Depth
		}
	}
	return first
}

// KillsToLevel returns how many kills worth xp each are needed to clear
// the given level's threshold, or 0 when the kill is worth nothing.
func KillsToLevel(prog leveling.Progression, level, xp int) int {
	if xp <= 0 {
		return 0
	}
	threshold := prog.Threshold(level)
	return (threshold + xp - 1) / xp
}
