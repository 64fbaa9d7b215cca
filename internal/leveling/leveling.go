package leveling

import (
	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/message"
)

// Default progression constants
const (
	DefaultBase          = 200
	DefaultFactor        = 150
	DefaultHPReward      = 20
	DefaultPowerReward   = 1
	DefaultDefenseReward = 1
)

// Choice is the stat raised when a level-up resolves.
type Choice int

const (
	RaiseHP Choice = iota
	RaisePower
	RaiseDefense
)

func (c Choice) String() string {
	switch c {
	case RaiseHP:
		return "constitution"
	case RaisePower:
		return "strength"
	case RaiseDefense:
		return "agility"
	default:
		return "unknown"
	}
}

// Progression computes xp thresholds and applies level-up rewards.
// The zero value is unusable; build one from config or Default.
type Progression struct {
	Base          int
	Factor        int
	HPReward      int
	PowerReward   int
	DefenseReward int
}

// Default returns the standard progression curve.
func Default() Progression {
	return Progression{
		Base:          DefaultBase,
		Factor:        DefaultFactor,
		HPReward:      DefaultHPReward,
		PowerReward:   DefaultPowerReward,
		DefenseReward: DefaultDefenseReward,
	}
}

// Threshold returns the banked xp required to clear the given
// character level.
func (p Progression) Threshold(level int) int {
	return p.Base + level*p.Factor
}

// Ready reports whether the entity's banked xp clears the threshold
// for its current level.
func (p Progression) Ready(e *entity.Entity) bool {
	return e.Fighter != nil && e.Fighter.XP >= p.Threshold(e.Level)
}

// Begin raises the entity one level and returns the xp threshold that
// Apply must settle once the stat choice lands. The threshold is the
// one for the level being left behind.
func (p Progression) Begin(e *entity.Entity, log *message.Log) int {
	threshold := p.Threshold(e.Level)
	e.Level++
	log.Addf(message.ColorYellow, "You reached level %d!", e.Level)
	return threshold
}

// Apply resolves the stat choice and deducts the threshold from the
// banked xp, clamping at zero.
func (p Progression) Apply(e *entity.Entity, c Choice, threshold int) {
	fighter := e.Fighter
	if fighter == nil {
		return
	}

	switch c {
	case RaiseHP:
		fighter.BaseMaxHP += p.HPReward
		fighter.HP += p.HPReward
	case RaisePower:
		fighter.BasePower += p.PowerReward
	case RaiseDefense:
		fighter.BaseDefense += p.DefenseReward
	}

	fighter.XP -= threshold
	if fighter.XP < 0 {
		fighter.XP = 0
	}
}
