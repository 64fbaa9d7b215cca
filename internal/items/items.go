package items

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

// ItemDefinition represents an item definition from the YAML file
type ItemDefinition struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
	Kind  string `yaml:"kind"` // healing, attack_buff, lightning, weapon, armor, shield
	// Equipment fields (optional)
	Slot         string `yaml:"slot,omitempty"` // right_hand, left_hand, chest
	PowerBonus   int    `yaml:"power_bonus,omitempty"`
	DefenseBonus int    `yaml:"defense_bonus,omitempty"`
	MaxHPBonus   int    `yaml:"max_hp_bonus,omitempty"`
	// Spawn weight by depth
	Spawn []spawn.Transition `yaml:"spawn,omitempty"`
}

// Config represents the structure of the items.yaml file
type Config struct {
	Items map[string]ItemDefinition `yaml:"items"`
}

// LoadFromYAML loads item definitions from a YAML file
func LoadFromYAML(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse items YAML: %w", err)
	}

	// Validate item configurations
	for id, def := range config.Items {
		kind, ok := StringToItemKind(def.Kind)
		if !ok {
			logger.Warning("Item dropped from config",
				"item_id", id,
				"issue", fmt.Sprintf("unknown kind %q", def.Kind))
			delete(config.Items, id)
			continue
		}
		if kind.Equippable() && StringToSlot(def.Slot) == entity.SlotNone {
			slot := defaultSlotFor(kind)
			logger.Warning("Item auto-correction applied",
				"item_id", id,
				"issue", "equippable item without slot",
				"action", fmt.Sprintf("set slot=%s", slot))
			def.Slot = slot
			config.Items[id] = def
		}
	}

	return &config, nil
}

// Defaults returns the built-in item set used when no YAML file is
// available. Scrolls and potions carry the whole early game, gear
// enters the tables a few levels down.
func Defaults() *Config {
	return &Config{Items: map[string]ItemDefinition{
		"healing_potion": {
			Name: "healing potion", Glyph: "!", Color: "violet", Kind: "healing",
			Spawn: []spawn.Transition{{Depth: 1, Value: 40}},
		},
		"lightning_scroll": {
			Name: "scroll of lightning bolt", Glyph: "#", Color: "light_yellow", Kind: "lightning",
			Spawn: []spawn.Transition{{Depth: 1, Value: 30}},
		},
		"attack_scroll": {
			Name: "attack scroll", Glyph: "+", Color: "violet", Kind: "attack_buff",
			Spawn: []spawn.Transition{{Depth: 1, Value: 30}},
		},
		"sword": {
			Name: "sword", Glyph: "/", Color: "sky", Kind: "weapon",
			Slot: "right_hand", PowerBonus: 3,
			Spawn: []spawn.Transition{{Depth: 4, Value: 5}},
		},
		"shield": {
			Name: "shield", Glyph: "[", Color: "darker_orange", Kind: "shield",
			Slot: "left_hand", DefenseBonus: 1,
			Spawn: []spawn.Transition{{Depth: 6, Value: 15}},
		},
		"chain_vest": {
			Name: "chain vest", Glyph: "]", Color: "dark_grey", Kind: "armor",
			Slot: "chest", DefenseBonus: 2, MaxHPBonus: 5,
			Spawn: []spawn.Transition{{Depth: 5, Value: 10}},
		},
	}}
}

// StringToItemKind converts a string to an entity.ItemKind
func StringToItemKind(s string) (entity.ItemKind, bool) {
	switch s {
	case "healing":
		return entity.ItemHeal, true
	case "attack_buff":
		return entity.ItemAttackBuff, true
	case "lightning":
		return entity.ItemLightning, true
	case "weapon":
		return entity.ItemWeapon, true
	case "armor":
		return entity.ItemArmor, true
	case "shield":
		return entity.ItemShield, true
	default:
		return 0, false
	}
}

// StringToSlot converts a string to an entity.Slot
func StringToSlot(s string) entity.Slot {
	switch s {
	case "right_hand":
		return entity.SlotRightHand
	case "left_hand":
		return entity.SlotLeftHand
	case "chest":
		return entity.SlotChest
	default:
		return entity.SlotNone
	}
}

func defaultSlotFor(kind entity.ItemKind) string {
	switch kind {
	case entity.ItemWeapon:
		return "right_hand"
	case entity.ItemShield:
		return "left_hand"
	default:
		return "chest"
	}
}

// CreateItemFromDefinition creates a ground item entity from an item
// definition at the given position.
func CreateItemFromDefinition(def ItemDefinition, x, y int) *entity.Entity {
	glyph := '?'
	if def.Glyph != "" {
		glyph = []rune(def.Glyph)[0]
	}

	item := entity.New(x, y, glyph, def.Name, def.Color, false)
	kind, ok := StringToItemKind(def.Kind)
	if !ok {
		kind = entity.ItemHeal
	}
	item.Item = &entity.Item{Kind: kind}

	if slot := StringToSlot(def.Slot); slot != entity.SlotNone {
		item.Equipment = &entity.Equipment{
			Slot:         slot,
			PowerBonus:   def.PowerBonus,
			DefenseBonus: def.DefenseBonus,
			MaxHPBonus:   def.MaxHPBonus,
		}
	}
	return item
}

// sortedIDs returns the item IDs in a stable order so seeded runs
// reproduce the same picks regardless of map iteration order.
func (c *Config) sortedIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for id := range c.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SpawnAt picks an item by depth-stepped weight and mints it at
// (x, y). Returns nil when every weight is zero at this depth.
func (c *Config) SpawnAt(depth, x, y int, rng *rand.Rand) *entity.Entity {
	ids := c.sortedIDs()

	total := 0
	for _, id := range ids {
		total += spawn.FromDepth(c.Items[id].Spawn, depth)
	}
	if total <= 0 {
		return nil
	}

	roll := rng.Intn(total)
	for _, id := range ids {
		w := spawn.FromDepth(c.Items[id].Spawn, depth)
		if roll < w {
			return CreateItemFromDefinition(c.Items[id], x, y)
		}
		roll -= w
	}
	return nil
}
