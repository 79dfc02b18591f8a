package board

import (
	"math/rand"
	"testing"

	"badicecream/internal/grid"
)

func TestSnapshotRoundTripPreservesFruitAndPlayerState(t *testing.T) {
	lvl := testLevel()
	b := NewBoard(lvl, rand.New(rand.NewSource(3)))
	host, _ := b.SetUpPlayers("host", "guest", "red", "blue", "Alice", "Bob")

	host.MoveRight()
	b.FruitPicked(grid.KindFruit)

	snap := b.Snapshot()

	restored := RestoreBoard(snap, lvl, rand.New(rand.NewSource(3)), "host", "guest")

	if restored.FruitsNumber() != b.FruitsNumber() {
		t.Fatalf("expected fruitsNumber %d, got %d", b.FruitsNumber(), restored.FruitsNumber())
	}
	if restored.CurrentRound() != b.CurrentRound() {
		t.Fatalf("expected currentRound %d, got %d", b.CurrentRound(), restored.CurrentRound())
	}
	if restored.Host().Cell().X != host.Cell().X || restored.Host().Cell().Y != host.Cell().Y {
		t.Fatalf("expected host restored at (%d,%d), got (%d,%d)",
			host.Cell().X, host.Cell().Y, restored.Host().Cell().X, restored.Host().Cell().Y)
	}
	if len(restored.Enemies()) != len(b.Enemies()) {
		t.Fatalf("expected %d restored enemies, got %d", len(b.Enemies()), len(restored.Enemies()))
	}
}

func TestSnapshotRoundTripPreservesDeadPlayer(t *testing.T) {
	lvl := testLevel()
	b := NewBoard(lvl, rand.New(rand.NewSource(3)))
	host, _ := b.SetUpPlayers("host", "guest", "red", "blue", "Alice", "Bob")
	host.Die()

	snap := b.Snapshot()
	restored := RestoreBoard(snap, lvl, rand.New(rand.NewSource(3)), "host", "guest")

	if restored.Host().IsAlive() {
		t.Fatal("expected the restored host to still be dead")
	}
}
