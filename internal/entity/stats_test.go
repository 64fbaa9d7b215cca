package entity

import "testing"

func newSword() *Entity {
	sword := New(0, 0, '/', "sword", "sky", false)
	sword.Item = &Item{Kind: ItemWeapon}
	sword.Equipment = &Equipment{Slot: SlotRightHand, PowerBonus: 3}
	return sword
}

func newShield() *Entity {
	shield := New(0, 0, '[', "shield", "darker_orange", false)
	shield.Item = &Item{Kind: ItemShield}
	shield.Equipment = &Equipment{Slot: SlotLeftHand, DefenseBonus: 1}
	return shield
}

func TestEffectiveStats_PlayerGetsEquipmentBonuses(t *testing.T) {
	player := NewPlayer("player", 30, 2, 5)
	sword := newSword()
	sword.Equipment.Equipped = true
	shield := newShield()
	shield.Equipment.Equipped = true
	inventory := []*Entity{sword, shield}

	if got := EffectivePower(player, inventory); got != 8 {
		t.Errorf("EffectivePower = %d, want 8", got)
	}
	if got := EffectiveDefense(player, inventory); got != 3 {
		t.Errorf("EffectiveDefense = %d, want 3", got)
	}
	if got := EffectiveMaxHP(player, inventory); got != 30 {
		t.Errorf("EffectiveMaxHP = %d, want 30", got)
	}
}

func TestEffectiveStats_UnequippedItemsDoNotCount(t *testing.T) {
	player := NewPlayer("player", 30, 2, 5)
	sword := newSword()
	// carried but not equipped
	inventory := []*Entity{sword}

	if got := EffectivePower(player, inventory); got != 5 {
		t.Errorf("EffectivePower = %d, want base 5", got)
	}
}

func TestEffectiveStats_MonstersIgnoreEquipment(t *testing.T) {
	troll := New(0, 0, 'T', "troll", "darker_green", true)
	troll.Fighter = &Fighter{BaseMaxHP: 16, HP: 16, BaseDefense: 2, BasePower: 4, XP: 55, Death: DeathMonster}

	sword := newSword()
	sword.Equipment.Equipped = true
	inventory := []*Entity{sword}

	if got := EffectivePower(troll, inventory); got != 4 {
		t.Errorf("EffectivePower = %d, want base 4", got)
	}
	if got := EffectiveDefense(troll, inventory); got != 2 {
		t.Errorf("EffectiveDefense = %d, want base 2", got)
	}
}

func TestEffectiveStats_NoFighter(t *testing.T) {
	stairs := NewStairs(0, 0)

	if got := EffectivePower(stairs, nil); got != 0 {
		t.Errorf("EffectivePower = %d, want 0", got)
	}
	if got := EffectiveMaxHP(stairs, nil); got != 0 {
		t.Errorf("EffectiveMaxHP = %d, want 0", got)
	}
}

func TestEquippedInSlot(t *testing.T) {
	sword := newSword()
	sword.Equipment.Equipped = true
	shield := newShield()
	shield.Equipment.Equipped = true
	spare := newSword()
	inventory := []*Entity{shield, sword, spare}

	if got := EquippedInSlot(inventory, SlotRightHand); got != 1 {
		t.Errorf("EquippedInSlot(right hand) = %d, want 1", got)
	}
	if got := EquippedInSlot(inventory, SlotLeftHand); got != 0 {
		t.Errorf("EquippedInSlot(left hand) = %d, want 0", got)
	}
	if got := EquippedInSlot(inventory, SlotChest); got != -1 {
		t.Errorf("EquippedInSlot(chest) = %d, want -1", got)
	}
}
