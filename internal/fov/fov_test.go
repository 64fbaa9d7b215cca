package fov

import (
	"testing"

	"github.com/cavernkeep/undercroft/internal/dungeon"
)

// openMap carves a single large room so sight lines run unobstructed.
func openMap(t *testing.T) *dungeon.Map {
	t.Helper()
	m := dungeon.NewMap(30, 30)
	for y := 1; y < 29; y++ {
		for x := 1; x < 29; x++ {
			m.Tiles[y][x] = dungeon.FloorTile()
		}
	}
	return m
}

func TestField_OriginAlwaysVisible(t *testing.T) {
	m := openMap(t)
	field := New()

	field.Recompute(m, 15, 15, 5)

	if !field.Visible(15, 15) {
		t.Error("origin not visible")
	}
}

func TestField_RadiusBoundsVisibility(t *testing.T) {
	m := openMap(t)
	field := New()

	field.Recompute(m, 15, 15, 5)

	if !field.Visible(15, 10) || !field.Visible(20, 15) {
		t.Error("tiles at exact radius not visible on open floor")
	}
	if field.Visible(15, 9) || field.Visible(22, 15) {
		t.Error("tiles beyond the radius are visible")
	}
	// corner of the radius square lies outside the circular torch
	if field.Visible(20, 20) {
		t.Error("square corner visible, torch should be circular")
	}
}

func TestField_WallsBlockSight(t *testing.T) {
	m := openMap(t)
	// vertical wall two tiles right of the origin
	for y := 10; y <= 20; y++ {
		m.Tiles[y][17] = dungeon.WallTile()
	}
	field := New()

	field.Recompute(m, 15, 15, 5)

	if !field.Visible(17, 15) {
		t.Error("blocking wall itself should be lit")
	}
	if field.Visible(18, 15) || field.Visible(19, 15) {
		t.Error("tiles behind the wall are visible")
	}
	// the open side is unaffected
	if !field.Visible(13, 15) {
		t.Error("open side went dark")
	}
}

func TestField_RecomputeReplacesOldSet(t *testing.T) {
	m := openMap(t)
	field := New()

	field.Recompute(m, 5, 5, 3)
	if !field.Visible(5, 5) {
		t.Fatal("first origin not visible")
	}

	field.Recompute(m, 25, 25, 3)

	if field.Visible(5, 5) {
		t.Error("stale visibility survived recompute")
	}
	if !field.Visible(25, 25) {
		t.Error("new origin not visible")
	}
}

func TestField_MarksExplored(t *testing.T) {
	m := openMap(t)
	field := New()

	field.Recompute(m, 15, 15, 4)

	if !m.At(15, 15).Explored || !m.At(17, 15).Explored {
		t.Error("visible tiles not marked explored")
	}
	if m.At(28, 28).Explored {
		t.Error("out-of-sight tile marked explored")
	}

	// explored persists after the field moves on
	field.Recompute(m, 5, 5, 3)
	if !m.At(15, 15).Explored {
		t.Error("explored flag reset by recompute")
	}
}

func TestField_FreshFieldSeesNothing(t *testing.T) {
	field := New()

	if field.Visible(0, 0) || field.Visible(15, 15) {
		t.Error("fresh field reports visible tiles")
	}
}
