package grid

import "testing"

func TestNeighborAtEdgeIsNil(t *testing.T) {
	g := NewGrid()
	corner := g.At(0, 0)
	if n := corner.Neighbor(Up); n != nil {
		t.Fatalf("expected nil neighbor off the top edge, got %v", n)
	}
	if n := corner.Neighbor(Left); n != nil {
		t.Fatalf("expected nil neighbor off the left edge, got %v", n)
	}
	if n := corner.Neighbor(Down); n == nil {
		t.Fatalf("expected a neighbor below the corner")
	}
}

func TestRockBlocksTraversalAndFreeze(t *testing.T) {
	g := NewGrid()
	c := g.At(5, 5)
	c.SetItem(NewRock("r1"))

	if !c.Blocked() {
		t.Fatal("rock cell should be blocked")
	}
	changed := g.At(5, 4).ExecutePower(Right, true)
	if len(changed) != 0 {
		t.Fatalf("freeze chain should stop before a rock, got %d changed cells", len(changed))
	}
}

func TestExecutePowerFreezesThenUnfreezesChain(t *testing.T) {
	g := NewGrid()
	source := g.At(3, 3)

	changed := source.ExecutePower(Right, true)
	if len(changed) == 0 {
		t.Fatal("expected at least one cell to freeze")
	}
	for _, c := range changed {
		if !c.IsFrozen() {
			t.Fatalf("cell %v should be frozen after freeze chain", c.Coord())
		}
	}

	changed = source.ExecutePower(Right, true)
	for _, c := range changed {
		if c.IsFrozen() {
			t.Fatalf("cell %v should be thawed after unfreeze chain", c.Coord())
		}
	}
}

func TestFreezeChainStopsAtOccupiedCell(t *testing.T) {
	g := NewGrid()
	source := g.At(0, 0)
	blocker := g.At(0, 2)
	blocker.SetCharacter(stubOccupant{id: "blocker"})

	changed := source.ExecutePower(Right, true)
	for _, c := range changed {
		if c == blocker {
			t.Fatal("freeze chain must not cross an occupied cell")
		}
	}
}

func TestUnfreezeAndFreezeCellsAroundAreSingleStep(t *testing.T) {
	g := NewGrid()
	center := g.At(8, 8)
	for _, dir := range AllDirections {
		n := center.Neighbor(dir)
		n.SetFrozen(true)
	}
	// Freeze two steps further out so propagation would reach them if the
	// around-variants propagated, which they must not.
	far := center.Neighbor(Right).Neighbor(Right)
	far.SetFrozen(true)

	changed := center.UnfreezeCellsAround()
	if len(changed) != 4 {
		t.Fatalf("expected 4 cells thawed, got %d", len(changed))
	}
	if !far.IsFrozen() {
		t.Fatal("UnfreezeCellsAround must not propagate past the immediate neighbor")
	}

	changed = center.FreezeCellsAround()
	if len(changed) != 4 {
		t.Fatalf("expected 4 cells refrozen, got %d", len(changed))
	}
}

func TestPickItemClearsSlot(t *testing.T) {
	g := NewGrid()
	c := g.At(1, 1)
	c.SetItem(NewFruit("f1", "apple"))

	item, ok := c.PickItem()
	if !ok || item.ID() != "f1" {
		t.Fatalf("expected to pick fruit f1, got %v, %v", item, ok)
	}
	if _, ok := c.PickItem(); ok {
		t.Fatal("cell should be empty after PickItem")
	}
}

// stubOccupant is a minimal grid.Occupant for tests that only need
// presence on a cell, not character behavior.
type stubOccupant struct{ id string }

func (s stubOccupant) ID() string    { return s.id }
func (s stubOccupant) Killable() bool { return true }
func (s stubOccupant) Die()          {}
