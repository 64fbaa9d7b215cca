package savegame

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cavernkeep/undercroft/internal/config"
	"github.com/cavernkeep/undercroft/internal/dungeon"
	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/game"
	"github.com/cavernkeep/undercroft/internal/message"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()

	cfg := config.StorageConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// testSnapshot builds a small but fully populated crawl state: player
// with inventory, one monster, carved map, message backlog.
func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	store := entity.NewStore(entity.NewPlayer("tester", 30, 2, 5))
	store.Player().SetPos(4, 4)
	store.Player().Fighter.HP = 17
	store.Player().Fighter.XP = 120
	store.Player().Level = 2

	orc := entity.New(7, 4, 'p', "orc", "light_green", true)
	orc.Alive = true
	orc.Fighter = &entity.Fighter{BaseMaxHP: 9, HP: 6, BasePower: 3, XP: 35, Death: entity.DeathMonster}
	orc.AI = &entity.AI{Kind: entity.AIBasic}
	store.Append(orc)
	store.Append(entity.NewStairs(8, 8))

	sword := entity.New(0, 0, '/', "sword", "sky", false)
	sword.Item = &entity.Item{Kind: entity.ItemWeapon}
	sword.Equipment = &entity.Equipment{Slot: entity.SlotRightHand, PowerBonus: 3, Equipped: true}

	m := dungeon.NewMap(10, 10)
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			m.Tiles[y][x] = dungeon.FloorTile()
		}
	}
	m.MarkExplored(4, 4)

	log := &message.Log{}
	log.Add("Welcome stranger, brace yourself, you're alone now..", message.ColorRed)
	log.Add("The orc attacks you for 1 hit points.", message.ColorWhite)

	return &Snapshot{
		Store: store,
		State: &game.State{
			Map:       m,
			Log:       log,
			Inventory: []*entity.Entity{sword},
			Depth:     3,
		},
	}
}

func TestOpen_CreatesSchemaAndDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := Open(config.StorageConfig{Driver: "sqlite", Path: nested})
	if err != nil {
		t.Fatalf("Failed to open database with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(nested); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}

	var count int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM saves").Scan(&count); err != nil {
		t.Errorf("Failed to query saves table: %v", err)
	}
	if err := db.db.QueryRow("SELECT COUNT(*) FROM graveyard").Scan(&count); err != nil {
		t.Errorf("Failed to query graveyard table: %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	snap := testSnapshot(t)

	if err := db.Save("default", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := db.Load("default")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.State.Depth != 3 {
		t.Errorf("depth = %d, want 3", loaded.State.Depth)
	}
	if loaded.State.Map.Width != 10 || loaded.State.Map.Height != 10 {
		t.Errorf("map %dx%d, want 10x10", loaded.State.Map.Width, loaded.State.Map.Height)
	}
	if loaded.State.Map.Blocked(4, 4) {
		t.Error("carved tile came back as wall")
	}
	if !loaded.State.Map.At(4, 4).Explored {
		t.Error("explored flag lost")
	}

	player := loaded.Store.Player()
	if player.Name != "tester" || player.Level != 2 {
		t.Errorf("player %s level %d, want tester level 2", player.Name, player.Level)
	}
	if player.Fighter == nil || player.Fighter.HP != 17 || player.Fighter.XP != 120 {
		t.Error("player fighter state lost")
	}
	if x, y := player.Pos(); x != 4 || y != 4 {
		t.Errorf("player at (%d,%d), want (4,4)", x, y)
	}

	if loaded.Store.Len() != 3 {
		t.Fatalf("store len = %d, want 3", loaded.Store.Len())
	}
	orc := loaded.Store.At(1)
	if orc.AI == nil || orc.AI.Kind != entity.AIBasic {
		t.Error("monster AI lost")
	}
	if orc.Fighter == nil || orc.Fighter.HP != 6 {
		t.Error("monster fighter state lost")
	}

	if len(loaded.State.Inventory) != 1 {
		t.Fatalf("inventory len = %d, want 1", len(loaded.State.Inventory))
	}
	sword := loaded.State.Inventory[0]
	if sword.Equipment == nil || !sword.Equipment.Equipped || sword.Equipment.PowerBonus != 3 {
		t.Error("equipped sword state lost")
	}

	if len(loaded.State.Log.Entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(loaded.State.Log.Entries))
	}
	if loaded.State.Log.Entries[0].Color != message.ColorRed {
		t.Error("message color lost")
	}
}

func TestLoad_MissingSlotIsErrNoSave(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Load("nope")
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("err = %v, want ErrNoSave", err)
	}
}

func TestSave_OverwritesSlot(t *testing.T) {
	db := openTestDB(t)
	snap := testSnapshot(t)

	if err := db.Save("default", snap); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	snap.State.Depth = 5
	if err := db.Save("default", snap); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := db.Load("default")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.State.Depth != 5 {
		t.Errorf("depth = %d, want the overwritten 5", loaded.State.Depth)
	}

	saves, err := db.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(saves) != 1 {
		t.Errorf("%d save rows, want 1 after overwrite", len(saves))
	}
}

func TestLoad_RejectsTamperedPayload(t *testing.T) {
	db := openTestDB(t)
	if err := db.Save("default", testSnapshot(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := db.db.Exec(`UPDATE saves SET payload = '{"store":[],"state":null}'`); err != nil {
		t.Fatalf("Failed to tamper with payload: %v", err)
	}

	_, err := db.Load("default")
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("err = %v, want ErrNoSave for a digest mismatch", err)
	}
}

func TestLoad_RejectsIncompatibleVersion(t *testing.T) {
	db := openTestDB(t)
	if err := db.Save("default", testSnapshot(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := db.db.Exec(`UPDATE saves SET version = 99`); err != nil {
		t.Fatalf("Failed to bump version: %v", err)
	}

	_, err := db.Load("default")
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("err = %v, want ErrNoSave for a future version", err)
	}
}

func TestSave_RejectsIncompleteSnapshot(t *testing.T) {
	db := openTestDB(t)

	if err := db.Save("default", &Snapshot{}); err == nil {
		t.Error("expected error saving an empty snapshot")
	}
	if err := db.Save("default", nil); err == nil {
		t.Error("expected error saving a nil snapshot")
	}
}

func TestDelete(t *testing.T) {
	db := openTestDB(t)
	if err := db.Save("default", testSnapshot(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := db.Delete("default"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := db.Load("default"); !errors.Is(err, ErrNoSave) {
		t.Errorf("err = %v, want ErrNoSave after delete", err)
	}
	if err := db.Delete("default"); !errors.Is(err, ErrNoSave) {
		t.Errorf("err = %v, want ErrNoSave deleting twice", err)
	}
}

func TestList_MostRecentFirst(t *testing.T) {
	db := openTestDB(t)
	snap := testSnapshot(t)

	if err := db.Save("older", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := db.Save("newer", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	saves, err := db.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(saves) != 2 {
		t.Fatalf("%d save rows, want 2", len(saves))
	}
	if saves[0].Slot != "newer" || saves[1].Slot != "older" {
		t.Errorf("order = [%s, %s], want [newer, older]", saves[0].Slot, saves[1].Slot)
	}
	if saves[0].Version != SchemaVersion {
		t.Errorf("version = %d, want %d", saves[0].Version, SchemaVersion)
	}
}
