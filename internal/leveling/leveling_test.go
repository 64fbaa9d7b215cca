package leveling

import (
	"testing"

	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/message"
)

func TestThreshold(t *testing.T) {
	p := Default()

	tests := []struct {
		level int
		want  int
	}{
		{1, 350},
		{2, 500},
		{5, 950},
	}

	for _, tt := range tests {
		if got := p.Threshold(tt.level); got != tt.want {
			t.Errorf("Threshold(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestReady_ExactBoundary(t *testing.T) {
	p := Default()
	player := entity.NewPlayer("player", 30, 2, 5)

	player.Fighter.XP = p.Threshold(player.Level) - 1
	if p.Ready(player) {
		t.Error("ready one xp below the threshold")
	}

	player.Fighter.XP = p.Threshold(player.Level)
	if !p.Ready(player) {
		t.Error("not ready at exactly the threshold")
	}
}

func TestReady_NoFighter(t *testing.T) {
	p := Default()
	stairs := entity.NewStairs(0, 0)

	if p.Ready(stairs) {
		t.Error("entity without a fighter reported ready")
	}
}

func TestBegin_RaisesLevelAndReturnsOldThreshold(t *testing.T) {
	p := Default()
	player := entity.NewPlayer("player", 30, 2, 5)
	player.Fighter.XP = 400
	log := &message.Log{}

	threshold := p.Begin(player, log)

	if player.Level != 2 {
		t.Errorf("level = %d, want 2", player.Level)
	}
	// the threshold owed is the one for the level just left
	if threshold != 350 {
		t.Errorf("threshold = %d, want 350", threshold)
	}
	if len(log.Entries) != 1 {
		t.Fatal("no level-up message logged")
	}
}

func TestApply_EachChoice(t *testing.T) {
	p := Default()

	tests := []struct {
		name   string
		choice Choice
		check  func(t *testing.T, f *entity.Fighter)
	}{
		{"constitution", RaiseHP, func(t *testing.T, f *entity.Fighter) {
			if f.BaseMaxHP != 50 || f.HP != 50 {
				t.Errorf("hp = %d/%d, want 50/50", f.HP, f.BaseMaxHP)
			}
		}},
		{"strength", RaisePower, func(t *testing.T, f *entity.Fighter) {
			if f.BasePower != 6 {
				t.Errorf("power = %d, want 6", f.BasePower)
			}
		}},
		{"agility", RaiseDefense, func(t *testing.T, f *entity.Fighter) {
			if f.BaseDefense != 3 {
				t.Errorf("defense = %d, want 3", f.BaseDefense)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := entity.NewPlayer("player", 30, 2, 5)
			player.Fighter.XP = 400

			p.Apply(player, tt.choice, 350)

			tt.check(t, player.Fighter)
			if player.Fighter.XP != 50 {
				t.Errorf("xp = %d, want 400-350=50", player.Fighter.XP)
			}
		})
	}
}

func TestApply_XPNeverNegative(t *testing.T) {
	p := Default()
	player := entity.NewPlayer("player", 30, 2, 5)
	player.Fighter.XP = 100

	p.Apply(player, RaisePower, 350)

	if player.Fighter.XP != 0 {
		t.Errorf("xp = %d, want clamped 0", player.Fighter.XP)
	}
}

func TestLevelUpCycle_ExactlyOnce(t *testing.T) {
	p := Default()
	player := entity.NewPlayer("player", 30, 2, 5)
	player.Fighter.XP = 350
	log := &message.Log{}

	if !p.Ready(player) {
		t.Fatal("not ready at threshold")
	}
	threshold := p.Begin(player, log)
	p.Apply(player, RaiseHP, threshold)

	if player.Level != 2 || player.Fighter.XP != 0 {
		t.Fatalf("after cycle: level %d xp %d", player.Level, player.Fighter.XP)
	}
	// next threshold is higher, no immediate second level
	if p.Ready(player) {
		t.Error("ready again right after leveling")
	}
}
