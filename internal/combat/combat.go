package combat

import (
	"math/rand"

	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/message"
)

// Attack resolves one melee swing: attacker effective power minus
// defender effective defense, with a flat miss chance that whiffs the
// swing regardless of the arithmetic. The inventory is the player's,
// consulted only when the player is on either side of the exchange.
func Attack(attacker, defender *entity.Entity, inventory []*entity.Entity, missChance float64, rng *rand.Rand, log *message.Log) {
	damage := entity.EffectivePower(attacker, inventory) - entity.EffectiveDefense(defender, inventory)
	if rng.Float64() < missChance {
		damage = -1
	}

	switch {
	case damage > 0:
		log.Addf(message.ColorWhite, "%s attacks %s for %d hit points.", attacker.Name, defender.Name, damage)
		if xp, killed := TakeDamage(defender, damage, log); killed && attacker.Fighter != nil {
			attacker.Fighter.XP += xp
		}
	case damage < 0:
		log.Addf(message.ColorOrange, "%s misses %s.", attacker.Name, defender.Name)
	default:
		log.Addf(message.ColorWhite, "%s attacks %s but it has no effect!", attacker.Name, defender.Name)
	}
}

// TakeDamage applies damage to the target and resolves its death at
// most once, returning the xp banked on the target and whether this
// call killed it. Later hits on a corpse keep lowering hp but never
// re-run the death transform or pay out xp again.
func TakeDamage(target *entity.Entity, amount int, log *message.Log) (int, bool) {
	fighter := target.Fighter
	if fighter == nil {
		return 0, false
	}

	if amount > 0 {
		fighter.HP -= amount
	}

	if fighter.HP <= 0 && target.Alive {
		target.Alive = false
		xp := fighter.XP
		die(target, log)
		return xp, true
	}
	return 0, false
}

func die(target *entity.Entity, log *message.Log) {
	switch target.Fighter.Death {
	case entity.DeathPlayer:
		playerDeath(target, log)
	default:
		monsterDeath(target, log)
	}
}

// playerDeath leaves the fighter component in place so the character
// sheet still reads after the end.
func playerDeath(player *entity.Entity, log *message.Log) {
	log.Add("You died, see you another time!", message.ColorRed)
	player.Glyph = '%'
	player.Color = message.ColorLighterRed
}

// monsterDeath converts the monster in place into inert remains.
func monsterDeath(mon *entity.Entity, log *message.Log) {
	log.Addf(message.ColorOrange, "PAF! %s is dead! You gain %d xp.", mon.Name, mon.Fighter.XP)
	mon.Glyph = '%'
	mon.Color = message.ColorDarkRed
	mon.Blocks = false
	mon.Fighter = nil
	mon.AI = nil
	mon.Name = "remains of " + mon.Name
}
