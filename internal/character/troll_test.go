package character

import (
	"math/rand"
	"testing"

	"badicecream/internal/grid"
)

func TestTrollKillsPlayerOnContact(t *testing.T) {
	g := grid.NewGrid()
	troll := NewTroll("t1", g.At(5, 5), rand.New(rand.NewSource(1)))
	troll.orientation = grid.Right
	player := NewPlayer("p1", g.At(5, 6), "red", "Alice", nil)

	tick := troll.CalculateMovement()
	if len(tick.Moves) != 1 {
		t.Fatalf("expected one move, got %+v", tick)
	}
	if player.IsAlive() {
		t.Fatal("player should have died on contact")
	}
	if troll.Cell() != g.At(5, 6) {
		t.Fatal("troll should occupy the player's former cell")
	}
}

func TestTrollStopsWhenEverySideIsBlocked(t *testing.T) {
	g := grid.NewGrid()
	troll := NewTroll("t1", g.At(5, 5), rand.New(rand.NewSource(1)))
	for _, dir := range grid.AllDirections {
		g.At(5, 5).Neighbor(dir).SetItem(grid.NewRock("r"))
	}

	tick := troll.CalculateMovement()
	if len(tick.Moves) != 0 {
		t.Fatalf("expected no moves when boxed in, got %+v", tick)
	}
	if troll.GetState() != StateStopped {
		t.Fatalf("expected state %q, got %q", StateStopped, troll.GetState())
	}
}

func TestTrollNeverCrossesFrozenCell(t *testing.T) {
	g := grid.NewGrid()
	troll := NewTroll("t1", g.At(0, 0), rand.New(rand.NewSource(7)))
	for _, dir := range grid.AllDirections {
		if n := g.At(0, 0).Neighbor(dir); n != nil {
			n.SetFrozen(true)
		}
	}

	tick := troll.CalculateMovement()
	if len(tick.Moves) != 0 {
		t.Fatalf("expected no moves across frozen neighbors, got %+v", tick)
	}
}
