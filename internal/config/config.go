package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all gameplay tuning knobs. Values mirror the classic
// dungeon balance and can be overridden per deployment from YAML.
type Config struct {
	Player    PlayerConfig    `yaml:"player"`
	Map       MapConfig       `yaml:"map"`
	Rooms     RoomsConfig     `yaml:"rooms"`
	Vision    VisionConfig    `yaml:"vision"`
	Combat    CombatConfig    `yaml:"combat"`
	Leveling  LevelingConfig  `yaml:"leveling"`
	Inventory InventoryConfig `yaml:"inventory"`
	Storage   StorageConfig   `yaml:"storage"`
}

// PlayerConfig holds the starting state of a new adventurer.
type PlayerConfig struct {
	Name string `yaml:"name"`

	// Base fighter stats before any equipment bonuses.
	MaxHP   int `yaml:"max_hp"`
	Defense int `yaml:"defense"`
	Power   int `yaml:"power"`
}

// MapConfig holds the fixed dungeon grid dimensions.
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RoomsConfig bounds room carving during generation.
type RoomsConfig struct {
	// MaxRooms is the number of placement attempts per level; rooms that
	// overlap an accepted room are discarded, not retried.
	MaxRooms int `yaml:"max_rooms"`
	MinSize  int `yaml:"min_size"`
	MaxSize  int `yaml:"max_size"`
}

// VisionConfig controls the torch-lit field of view.
type VisionConfig struct {
	TorchRadius int `yaml:"torch_radius"`
}

// CombatConfig holds combat and item-effect tuning.
type CombatConfig struct {
	// MissChance is the probability that any attack whiffs outright,
	// independent of the damage arithmetic.
	MissChance float64 `yaml:"miss_chance"`

	HealAmount      int `yaml:"heal_amount"`
	AttackBuff      int `yaml:"attack_buff"`
	PowerCap        int `yaml:"power_cap"`
	LightningDamage int `yaml:"lightning_damage"`
	LightningRange  int `yaml:"lightning_range"`
}

// LevelingConfig holds the experience curve and level-up rewards.
type LevelingConfig struct {
	// Threshold for the next level is Base + level*Factor.
	Base   int `yaml:"base"`
	Factor int `yaml:"factor"`

	HPReward      int `yaml:"hp_reward"`
	PowerReward   int `yaml:"power_reward"`
	DefenseReward int `yaml:"defense_reward"`
}

// InventoryConfig bounds the carried-item list.
type InventoryConfig struct {
	// Capacity caps carried items, one per letter selector a..z.
	Capacity int `yaml:"capacity"`
}

// StorageConfig selects where saves and the graveyard live.
type StorageConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// Path is the SQLite database file.
	Path string `yaml:"path"`

	// DSN is the PostgreSQL connection string when Driver is "postgres".
	DSN string `yaml:"dsn"`

	// Slot names the save record written and loaded by default.
	Slot string `yaml:"slot"`
}

// DefaultConfig returns the classic balance values.
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			Name:    "player",
			MaxHP:   30,
			Defense: 2,
			Power:   5,
		},
		Map: MapConfig{
			Width:  80,
			Height: 43,
		},
		Rooms: RoomsConfig{
			MaxRooms: 30,
			MinSize:  6,
			MaxSize:  10,
		},
		Vision: VisionConfig{
			TorchRadius: 5,
		},
		Combat: CombatConfig{
			MissChance:      0.1,
			HealAmount:      4,
			AttackBuff:      2,
			PowerCap:        9,
			LightningDamage: 20,
			LightningRange:  5,
		},
		Leveling: LevelingConfig{
			Base:          200,
			Factor:        150,
			HPReward:      20,
			PowerReward:   1,
			DefenseReward: 1,
		},
		Inventory: InventoryConfig{
			Capacity: 26,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   "data/undercroft.db",
			Slot:   "default",
		},
	}
}

// LoadConfig loads game configuration from a YAML file.
// If the file doesn't exist, returns the default config.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// Validate rejects values that would make generation or combat degenerate.
func (c *Config) Validate() error {
	if c.Map.Width < 3 || c.Map.Height < 3 {
		return fmt.Errorf("map dimensions %dx%d too small", c.Map.Width, c.Map.Height)
	}
	if c.Rooms.MinSize < 3 {
		return fmt.Errorf("room min size %d must be at least 3", c.Rooms.MinSize)
	}
	if c.Rooms.MaxSize < c.Rooms.MinSize {
		return fmt.Errorf("room max size %d below min size %d", c.Rooms.MaxSize, c.Rooms.MinSize)
	}
	if c.Rooms.MaxSize+2 > c.Map.Width || c.Rooms.MaxSize+2 > c.Map.Height {
		return fmt.Errorf("room max size %d does not fit the %dx%d map", c.Rooms.MaxSize, c.Map.Width, c.Map.Height)
	}
	if c.Rooms.MaxRooms < 1 {
		return fmt.Errorf("max rooms %d must be positive", c.Rooms.MaxRooms)
	}
	if c.Combat.MissChance < 0 || c.Combat.MissChance > 1 {
		return fmt.Errorf("miss chance %v outside [0,1]", c.Combat.MissChance)
	}
	if c.Inventory.Capacity < 1 || c.Inventory.Capacity > 26 {
		return fmt.Errorf("inventory capacity %d outside 1..26", c.Inventory.Capacity)
	}
	switch c.Storage.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
