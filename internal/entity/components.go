package entity

// DeathKind selects the transform applied when a fighter's hp reaches zero.
type DeathKind int

const (
	DeathMonster DeathKind = iota
	DeathPlayer
)

// String returns the string representation of a DeathKind
func (d DeathKind) String() string {
	switch d {
	case DeathPlayer:
		return "player"
	case DeathMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// Fighter holds combat stats. Base values never include equipment
// bonuses; effective values are derived per query.
type Fighter struct {
	BaseMaxHP   int       `json:"base_max_hp"`
	HP          int       `json:"hp"`
	BaseDefense int       `json:"base_defense"`
	BasePower   int       `json:"base_power"`
	XP          int       `json:"xp"`
	Death       DeathKind `json:"death"`
}

// AIKind identifies a behavior variant. The set is closed; dispatch is
// a switch, so adding a variant means adding a case.
type AIKind int

const (
	AIBasic AIKind = iota
)

// String returns the string representation of an AIKind
func (k AIKind) String() string {
	switch k {
	case AIBasic:
		return "basic"
	default:
		return "unknown"
	}
}

// AI marks an entity as monster-controlled.
type AI struct {
	Kind AIKind `json:"kind"`
}

// ItemKind identifies which use-effect applies to an item.
type ItemKind int

const (
	ItemHeal ItemKind = iota
	ItemAttackBuff
	ItemLightning
	ItemWeapon
	ItemArmor
	ItemShield
)

// String returns the string representation of an ItemKind
func (k ItemKind) String() string {
	switch k {
	case ItemHeal:
		return "heal"
	case ItemAttackBuff:
		return "attack_buff"
	case ItemLightning:
		return "lightning"
	case ItemWeapon:
		return "weapon"
	case ItemArmor:
		return "armor"
	case ItemShield:
		return "shield"
	default:
		return "unknown"
	}
}

// Equippable reports whether the kind toggles equipment rather than
// being consumed.
func (k ItemKind) Equippable() bool {
	return k == ItemWeapon || k == ItemArmor || k == ItemShield
}

// Item marks an entity as usable from the inventory.
type Item struct {
	Kind ItemKind `json:"kind"`
}

// Slot is a body location for equipment.
type Slot int

const (
	SlotNone Slot = iota
	SlotRightHand
	SlotLeftHand
	SlotChest
)

// String returns the string representation of a Slot
func (s Slot) String() string {
	switch s {
	case SlotRightHand:
		return "right hand"
	case SlotLeftHand:
		return "left hand"
	case SlotChest:
		return "chest"
	default:
		return "none"
	}
}

// Equipment carries additive stat bonuses that count only while the
// owning item sits in the player's inventory with Equipped set.
type Equipment struct {
	Slot         Slot `json:"slot"`
	Equipped     bool `json:"equipped"`
	PowerBonus   int  `json:"power_bonus"`
	DefenseBonus int  `json:"defense_bonus"`
	MaxHPBonus   int  `json:"max_hp_bonus"`
}
