// Package balance runs Monte Carlo duels through the game's own attack
// resolution, for tuning species stats and spawn tables without playing
// full runs.
package balance

import (
	"math/rand"

	"github.com/cavernkeep/undercroft/internal/bestiary"
	"github.com/cavernkeep/undercroft/internal/combat"
	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/leveling"
	"github.com/cavernkeep/undercroft/internal/message"
)

// maxDuelRounds caps fights that can never resolve. Damage is whole
// power minus whole defense, so an outmatched attacker deals nothing at
// all and the exchange would loop forever rather than grind down.
const maxDuelRounds = 1000

// Combatant is the player side of a duel: base fighter stats with any
// gear bonuses already folded in.
type Combatant struct {
	Name    string
	Level   int
	HP      int
	Power   int
	Defense int
}

// Entity mints a fresh player entity from the stat line. Every duel
// needs its own copy because dying mutates the entity in place.
func (c Combatant) Entity() *entity.Entity {
	e := entity.NewPlayer(c.Name, c.HP, c.Defense, c.Power)
	if c.Level > 1 {
		e.Level = c.Level
	}
	return e
}

// GrownPlayer raises the base stat line to the given level by cycling
// the level-up picks hp, power, defense in that order. It is the
// even-handed build the depth sweep assumes.
func GrownPlayer(base Combatant, level int, prog leveling.Progression) Combatant {
	e := base.Entity()
	picks := []leveling.Choice{leveling.RaiseHP, leveling.RaisePower, leveling.RaiseDefense}
	for e.Level < level {
		prog.Apply(e, picks[(e.Level-1)%len(picks)], 0)
		e.Level++
	}
	return Combatant{
		Name:    base.Name,
		Level:   e.Level,
		HP:      e.Fighter.BaseMaxHP,
		Power:   e.Fighter.BasePower,
		Defense: e.Fighter.BaseDefense,
	}
}

// Duel is the outcome of one simulated fight.
type Duel struct {
	PlayerWon    bool
	Stalemate    bool
	Rounds       int
	PlayerHPLeft int
	DamageDealt  int
	DamageTaken  int
}

// Fight runs a single duel to the death. The player swings first,
// matching play where the move into a monster's tile lands the opening
// blow. Damage totals count hit points actually removed, not overkill.
func Fight(player Combatant, def bestiary.SpeciesDefinition, missChance float64, rng *rand.Rand) Duel {
	hero := player.Entity()
	mon := bestiary.CreateMonsterFromDefinition(def, 0, 0)
	log := &message.Log{}

	var duel Duel
	for hero.Alive && mon.Alive {
		if duel.Rounds >= maxDuelRounds {
			duel.Stalemate = true
			break
		}
		duel.Rounds++

		// A kill strips the monster's fighter component, so the hp
		// snapshot has to come first.
		left := mon.Fighter.HP
		combat.Attack(hero, mon, nil, missChance, rng, log)
		if !mon.Alive {
			duel.DamageDealt += left
			break
		}
		duel.DamageDealt += left - mon.Fighter.HP

		left = hero.Fighter.HP
		combat.Attack(mon, hero, nil, missChance, rng, log)
		if !hero.Alive {
			duel.DamageTaken += left
			break
		}
		duel.DamageTaken += left - hero.Fighter.HP
	}

	duel.PlayerWon = hero.Alive && !mon.Alive
	if duel.PlayerWon {
		duel.PlayerHPLeft = hero.Fighter.HP
	}
	return duel
}

// Summary aggregates many duels between one player build and one
// species.
type Summary struct {
	Fights         int
	PlayerWins     int
	MonsterWins    int
	Stalemates     int
	WinRate        float64 // percent of fights the player won
	AvgRounds      float64
	MinRounds      int
	MaxRounds      int
	AvgHPLeft      float64 // average hp remaining, winning fights only
	AvgDamageDealt float64
	AvgDamageTaken float64
	Player         Combatant
	Species        bestiary.SpeciesDefinition
}

// Run repeats Fight and aggregates the outcomes.
func Run(player Combatant, def bestiary.SpeciesDefinition, missChance float64, fights int, rng *rand.Rand) Summary {
	s := Summary{Fights: fights, Player: player, Species: def}

	totalRounds := 0
	totalHPLeft := 0
	totalDealt := 0
	totalTaken := 0
	for i := 0; i < fights; i++ {
		duel := Fight(player, def, missChance, rng)

		switch {
		case duel.PlayerWon:
			s.PlayerWins++
			totalHPLeft += duel.PlayerHPLeft
		case duel.Stalemate:
			s.Stalemates++
		default:
			s.MonsterWins++
		}

		totalRounds += duel.Rounds
		totalDealt += duel.DamageDealt
		totalTaken += duel.DamageTaken
		if i == 0 || duel.Rounds < s.MinRounds {
			s.MinRounds = duel.Rounds
		}
		if duel.Rounds > s.MaxRounds {
			s.MaxRounds = duel.Rounds
		}
	}

	if fights > 0 {
		s.WinRate = float64(s.PlayerWins) / float64(fights) * 100
		s.AvgRounds = float64(totalRounds) / float64(fights)
		s.AvgDamageDealt = float64(totalDealt) / float64(fights)
		s.AvgDamageTaken = float64(totalTaken) / float64(fights)
	}
	if s.PlayerWins > 0 {
		s.AvgHPLeft = float64(totalHPLeft) / float64(s.PlayerWins)
	}
	return s
}
