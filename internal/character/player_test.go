package character

import (
	"math/rand"
	"testing"

	"badicecream/internal/apperrors"
	"badicecream/internal/grid"
)

type fakeSink struct {
	picked []string
}

func (f *fakeSink) FruitPicked(kind string) { f.picked = append(f.picked, kind) }

func TestPlayerMoveIntoNullCellFails(t *testing.T) {
	g := grid.NewGrid()
	p := NewPlayer("p1", g.At(0, 0), "red", "Alice", nil)

	if _, err := p.MoveUp(); err != apperrors.ErrNullCell {
		t.Fatalf("expected ErrNullCell, got %v", err)
	}
	if p.Cell() != g.At(0, 0) {
		t.Fatal("a failed move must not relocate the player")
	}
}

func TestPlayerMovePicksFruitAndReportsSink(t *testing.T) {
	g := grid.NewGrid()
	sink := &fakeSink{}
	p := NewPlayer("p1", g.At(5, 5), "red", "Alice", sink)
	g.At(5, 6).SetItem(grid.NewFruit("f1", "apple"))

	result, err := p.MoveRight()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ItemConsumed == nil || *result.ItemConsumed != "f1" {
		t.Fatalf("expected fruit f1 consumed, got %+v", result)
	}
	if len(sink.picked) != 1 || sink.picked[0] != grid.KindFruit {
		t.Fatalf("expected sink notified of one fruit pickup, got %v", sink.picked)
	}
	if p.Cell() != g.At(5, 6) {
		t.Fatal("player should have moved onto the fruit cell")
	}
}

func TestPlayerDiesWalkingIntoEnemy(t *testing.T) {
	g := grid.NewGrid()
	p := NewPlayer("p1", g.At(5, 5), "red", "Alice", nil)
	enemy := NewTroll("e1", g.At(5, 6), rand.New(rand.NewSource(1)))

	result, err := p.MoveRight()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.KilledPlayer || result.Alive {
		t.Fatalf("expected the player to die on contact, got %+v", result)
	}
	if p.IsAlive() {
		t.Fatal("player should be dead")
	}
	if enemy.Cell() != g.At(5, 6) {
		t.Fatal("the enemy must keep its own cell; the player does not displace it")
	}
	if g.At(5, 5).Character() != nil {
		t.Fatal("the player's old cell must be vacated")
	}
}

func TestPlayerMoveIntoBlockedCellFails(t *testing.T) {
	g := grid.NewGrid()
	p := NewPlayer("p1", g.At(5, 5), "red", "Alice", nil)
	g.At(5, 6).SetItem(grid.NewRock("r1"))

	if _, err := p.MoveRight(); err != apperrors.ErrBlockedCell {
		t.Fatalf("expected ErrBlockedCell, got %v", err)
	}
}
