package game

import (
	"github.com/cavernkeep/undercroft/internal/combat"
	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/message"
)

// UseOutcome classifies how an item use resolved; it decides both the
// item's fate and whether the monsters get to react.
type UseOutcome int

const (
	// UsedUp removes the item; the action does not consume a turn.
	UsedUp UseOutcome = iota
	// UseAndTakeTurn removes the item and spends the turn, for
	// offensive effects the monsters should answer.
	UseAndTakeTurn
	// UseAndKept applies the effect but the item stays, as with
	// equipment toggles. No turn spent.
	UseAndKept
	// Cancelled changed nothing beyond a log message.
	Cancelled
)

// UseItem resolves the inventory slot through its item effect and
// reports what happened to the item. Refused intents (a dead player,
// an armed level-up gate, a bad slot) cancel without side effects.
func (g *Game) UseItem(slot int) UseOutcome {
	if g.pending {
		return Cancelled
	}
	player := g.Store.Player()
	if !player.Alive {
		return Cancelled
	}
	if slot < 0 || slot >= len(g.State.Inventory) {
		g.State.Log.Add("No such item.", message.ColorRed)
		return Cancelled
	}

	item := g.State.Inventory[slot]
	if item.Item == nil {
		g.State.Log.Addf(message.ColorRed, "The %s cannot be used.", item.Name)
		return Cancelled
	}

	var outcome UseOutcome
	switch item.Item.Kind {
	case entity.ItemHeal:
		outcome = g.castHeal()
	case entity.ItemAttackBuff:
		outcome = g.castAttackBuff()
	case entity.ItemLightning:
		outcome = g.castLightning()
	case entity.ItemWeapon, entity.ItemArmor, entity.ItemShield:
		outcome = g.toggleEquip(slot)
	default:
		g.State.Log.Addf(message.ColorRed, "The %s cannot be used.", item.Name)
		outcome = Cancelled
	}

	switch outcome {
	case UsedUp:
		g.removeFromInventory(slot)
		g.endTurn(DidntTakeTurn)
	case UseAndTakeTurn:
		g.removeFromInventory(slot)
		g.endTurn(TookTurn)
	case UseAndKept:
		g.endTurn(DidntTakeTurn)
	default:
		g.State.Log.Add("Cancelled", message.ColorWhite)
		g.endTurn(DidntTakeTurn)
	}
	return outcome
}

// DropItem returns the inventory slot to the floor at the player's
// feet, shedding its equipped state first.
func (g *Game) DropItem(slot int) Action {
	if g.pending {
		return DidntTakeTurn
	}
	player := g.Store.Player()
	if !player.Alive {
		return DidntTakeTurn
	}
	if slot < 0 || slot >= len(g.State.Inventory) {
		g.State.Log.Add("No such item.", message.ColorRed)
		return DidntTakeTurn
	}

	item := g.State.Inventory[slot]
	if item.Equipment != nil && item.Equipment.Equipped {
		g.dequip(item)
	}
	g.removeFromInventory(slot)
	item.SetPos(player.X, player.Y)
	g.Store.Append(item)
	g.State.Log.Addf(message.ColorYellow, "You dropped a %s.", item.Name)
	return g.endTurn(DidntTakeTurn)
}

// Inventory is the read view for menus, in selector order.
func (g *Game) Inventory() []*entity.Entity {
	return g.State.Inventory
}

func (g *Game) removeFromInventory(slot int) {
	g.State.Inventory = append(g.State.Inventory[:slot], g.State.Inventory[slot+1:]...)
}

func (g *Game) castHeal() UseOutcome {
	player := g.Store.Player()
	if player.Fighter == nil {
		return Cancelled
	}
	if player.Fighter.HP >= entity.EffectiveMaxHP(player, g.State.Inventory) {
		g.State.Log.Add("You are already at full health.", message.ColorRed)
		return Cancelled
	}

	g.State.Log.Add("Your wounds start to feel better!", message.ColorLightViolet)
	g.heal(player, g.cfg.Combat.HealAmount)
	g.State.Log.Addf(message.ColorGreen, "Healed by %d.", g.cfg.Combat.HealAmount)
	return UsedUp
}

func (g *Game) castAttackBuff() UseOutcome {
	player := g.Store.Player()
	if player.Fighter == nil {
		return Cancelled
	}
	if player.Fighter.BasePower >= g.cfg.Combat.PowerCap {
		g.State.Log.Add("Your attack is too high for this scroll.", message.ColorRed)
		return Cancelled
	}

	player.Fighter.BasePower += g.cfg.Combat.AttackBuff
	if player.Fighter.BasePower > g.cfg.Combat.PowerCap {
		player.Fighter.BasePower = g.cfg.Combat.PowerCap
	}
	g.State.Log.Addf(message.ColorGreen, "Your attack permanently increases by %d!", g.cfg.Combat.AttackBuff)
	return UsedUp
}

func (g *Game) castLightning() UseOutcome {
	idx := g.closestMonster(g.cfg.Combat.LightningRange)
	if idx < 0 {
		g.State.Log.Add("No enemy is close enough to strike.", message.ColorRed)
		return Cancelled
	}

	target := g.Store.At(idx)
	damage := g.cfg.Combat.LightningDamage
	g.State.Log.Addf(message.ColorLightBlue,
		"A lightning bolt strikes the %s with a loud thunder! The damage is %d hit points.",
		target.Name, damage)

	if xp, killed := combat.TakeDamage(target, damage, g.State.Log); killed {
		player := g.Store.Player()
		if player.Fighter != nil {
			player.Fighter.XP += xp
		}
	}
	return UseAndTakeTurn
}

// closestMonster finds the nearest visible AI fighter within range of
// the player, or -1.
func (g *Game) closestMonster(maxRange int) int {
	player := g.Store.Player()
	closest := -1
	closestDist := float64(maxRange) + 1

	for i := entity.PlayerIndex + 1; i < g.Store.Len(); i++ {
		mon := g.Store.At(i)
		if mon.Fighter == nil || mon.AI == nil || !g.oracle.Visible(mon.X, mon.Y) {
			continue
		}
		if dist := player.DistanceTo(mon); dist < closestDist {
			closest = i
			closestDist = dist
		}
	}
	return closest
}

// toggleEquip flips the equipped state, first vacating the slot when
// another item holds it. At most one item per slot stays equipped.
func (g *Game) toggleEquip(slot int) UseOutcome {
	item := g.State.Inventory[slot]
	if item.Equipment == nil {
		g.State.Log.Addf(message.ColorRed, "The %s cannot be equipped.", item.Name)
		return Cancelled
	}

	if item.Equipment.Equipped {
		g.dequip(item)
		return UseAndKept
	}

	if other := entity.EquippedInSlot(g.State.Inventory, item.Equipment.Slot); other >= 0 {
		g.dequip(g.State.Inventory[other])
	}
	item.Equipment.Equipped = true
	g.State.Log.Addf(message.ColorLightGreen, "Equipped %s on %s.", item.Name, item.Equipment.Slot)
	return UseAndKept
}

func (g *Game) dequip(item *entity.Entity) {
	item.Equipment.Equipped = false
	g.State.Log.Addf(message.ColorLightYellow, "Dequipped %s from %s.", item.Name, item.Equipment.Slot)
}
