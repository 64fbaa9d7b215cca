package entity

// Effective stats are base fighter values plus bonuses from equipped
// inventory items. Only the player draws bonuses from the inventory;
// monsters fight with their base stats alone.

// EffectivePower returns attack power including equipped bonuses.
func EffectivePower(e *Entity, inventory []*Entity) int {
	base := 0
	if e.Fighter != nil {
		base = e.Fighter.BasePower
	}
	if !e.Player {
		return base
	}
	for _, item := range inventory {
		if item.Equipment != nil && item.Equipment.Equipped {
			base += item.Equipment.PowerBonus
		}
	}
	return base
}

// EffectiveDefense returns defense including equipped bonuses.
func EffectiveDefense(e *Entity, inventory []*Entity) int {
	base := 0
	if e.Fighter != nil {
		base = e.Fighter.BaseDefense
	}
	if !e.Player {
		return base
	}
	for _, item := range inventory {
		if item.Equipment != nil && item.Equipment.Equipped {
			base += item.Equipment.DefenseBonus
		}
	}
	return base
}

// EffectiveMaxHP returns maximum hp including equipped bonuses.
func EffectiveMaxHP(e *Entity, inventory []*Entity) int {
	base := 0
	if e.Fighter != nil {
		base = e.Fighter.BaseMaxHP
	}
	if !e.Player {
		return base
	}
	for _, item := range inventory {
		if item.Equipment != nil && item.Equipment.Equipped {
			base += item.Equipment.MaxHPBonus
		}
	}
	return base
}

// EquippedInSlot returns the index of the equipped inventory item
// occupying the slot, or -1. At most one item per slot may be equipped
// at a time; the equip toggle relies on this query to displace the
// previous occupant.
func EquippedInSlot(inventory []*Entity, slot Slot) int {
	for i, item := range inventory {
		if item.Equipment != nil && item.Equipment.Equipped && item.Equipment.Slot == slot {
			return i
		}
	}
	return -1
}
