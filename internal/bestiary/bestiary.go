package bestiary

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/logger"
	"github.com/cavernkeep/undercroft/internal/spawn"
	"gopkg.in/yaml.v3"
)

// SpeciesDefinition represents a monster species from the YAML file
type SpeciesDefinition struct {
	Name    string             `yaml:"name"`
	Glyph   string             `yaml:"glyph"`
	Color   string             `yaml:"color"`
	MaxHP   int                `yaml:"max_hp"`
	Defense int                `yaml:"defense"`
	Power   int                `yaml:"power"`
	XP      int                `yaml:"xp"`
	AI      string             `yaml:"ai,omitempty"`    // defaults to "basic"
	Spawn   []spawn.Transition `yaml:"spawn,omitempty"` // spawn weight by depth
}

// Config represents the structure of the species.yaml file
type Config struct {
	Species map[string]SpeciesDefinition `yaml:"species"`
}

// LoadFromYAML loads species definitions from a YAML file
func LoadFromYAML(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read species file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse species YAML: %w", err)
	}

	// Validate species configurations
	for id, def := range config.Species {
		if def.MaxHP <= 0 {
			logger.Warning("Species auto-correction applied",
				"species_id", id,
				"issue", "max_hp <= 0",
				"action", "set max_hp=1")
			def.MaxHP = 1
			config.Species[id] = def
		}
		if StringToAIKind(def.AI) == -1 {
			logger.Warning("Species auto-correction applied",
				"species_id", id,
				"issue", fmt.Sprintf("unknown ai %q", def.AI),
				"action", "set ai=basic")
			def.AI = "basic"
			config.Species[id] = def
		}
	}

	return &config, nil
}

// Defaults returns the built-in species set used when no YAML file is
// available: standard dungeon fare with a rare floor boss.
func Defaults() *Config {
	return &Config{Species: map[string]SpeciesDefinition{
		"orc": {
			Name: "orc", Glyph: "p", Color: "light_green",
			MaxHP: 9, Defense: 0, Power: 3, XP: 35,
			Spawn: []spawn.Transition{{Depth: 1, Value: 80}},
		},
		"troll": {
			Name: "troll", Glyph: "T", Color: "darker_green",
			MaxHP: 16, Defense: 2, Power: 4, XP: 55,
			Spawn: []spawn.Transition{
				{Depth: 1, Value: 18},
				{Depth: 3, Value: 30},
				{Depth: 5, Value: 45},
			},
		},
		"boss": {
			Name: "boss", Glyph: "W", Color: "red",
			MaxHP: 25, Defense: 4, Power: 5, XP: 100,
			Spawn: []spawn.Transition{
				{Depth: 1, Value: 2},
				{Depth: 4, Value: 8},
				{Depth: 7, Value: 15},
			},
		},
	}}
}

// StringToAIKind converts a string to an entity.AIKind, -1 if unknown
func StringToAIKind(s string) entity.AIKind {
	switch s {
	case "", "basic":
		return entity.AIBasic
	default:
		return -1
	}
}

// CreateMonsterFromDefinition creates a live monster entity from a
// species definition at the given position.
func CreateMonsterFromDefinition(def SpeciesDefinition, x, y int) *entity.Entity {
	glyph := '?'
	if def.Glyph != "" {
		glyph = []rune(def.Glyph)[0]
	}

	mon := entity.New(x, y, glyph, def.Name, def.Color, true)
	mon.Alive = true
	mon.Fighter = &entity.Fighter{
		BaseMaxHP:   def.MaxHP,
		HP:          def.MaxHP,
		BaseDefense: def.Defense,
		BasePower:   def.Power,
		XP:          def.XP,
		Death:       entity.DeathMonster,
	}
	kind := StringToAIKind(def.AI)
	if kind == -1 {
		kind = entity.AIBasic
	}
	mon.AI = &entity.AI{Kind: kind}
	return mon
}

// sortedIDs returns the species IDs in a stable order so seeded runs
// reproduce the same picks regardless of map iteration order.
func (c *Config) sortedIDs() []string {
	ids := make([]string, 0, len(c.Species))
	for id := range c.Species {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SpawnAt picks a species by depth-stepped weight and mints a monster
// at (x, y). Returns nil when every weight is zero at this depth.
func (c *Config) SpawnAt(depth, x, y int, rng *rand.Rand) *entity.Entity {
	ids := c.sortedIDs()

	total := 0
	for _, id := range ids {
		total += spawn.FromDepth(c.Species[id].Spawn, depth)
	}
	if total <= 0 {
		return nil
	}

	roll := rng.Intn(total)
	for _, id := range ids {
		w := spawn.FromDepth(c.Species[id].Spawn, depth)
		if roll < w {
			return CreateMonsterFromDefinition(c.Species[id], x, y)
		}
		roll -= w
	}
	return nil
}
