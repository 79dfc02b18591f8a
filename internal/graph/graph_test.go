package graph

import (
	"math"
	"testing"

	"badicecream/internal/grid"
)

func TestShortestPathStraightLine(t *testing.T) {
	g := grid.NewGrid()
	gr := Build(g, Policy{})

	res := gr.ShortestPath(grid.Coord(0, 0), grid.Coord(0, 3))
	if res.Distance != 3 {
		t.Fatalf("expected distance 3, got %v", res.Distance)
	}
	want := []string{"0,0", "0,1", "0,2", "0,3"}
	if len(res.Path) != len(want) {
		t.Fatalf("expected path %v, got %v", want, res.Path)
	}
	for i := range want {
		if res.Path[i] != want[i] {
			t.Fatalf("expected path %v, got %v", want, res.Path)
		}
	}
}

func TestShortestPathUnreachableAcrossRocks(t *testing.T) {
	g := grid.NewGrid()
	// wall off (0,0) entirely with rocks on both live neighbors.
	g.At(0, 1).SetItem(grid.NewRock("r1"))
	g.At(1, 0).SetItem(grid.NewRock("r2"))

	gr := Build(g, Policy{})
	res := gr.ShortestPath(grid.Coord(0, 0), grid.Coord(5, 5))
	if !math.IsInf(res.Distance, 1) {
		t.Fatalf("expected unreachable target, got distance %v", res.Distance)
	}
	if len(res.Path) != 0 {
		t.Fatalf("expected empty path for unreachable target, got %v", res.Path)
	}
}

func TestPolicyFrozenCellWalkability(t *testing.T) {
	g := grid.NewGrid()
	g.At(0, 1).SetFrozen(true)

	blocked := Build(g, Policy{CanBreakFrozen: false})
	res := blocked.ShortestPath(grid.Coord(0, 0), grid.Coord(0, 1))
	if !math.IsInf(res.Distance, 1) {
		t.Fatal("frozen cell should be unwalkable without CanBreakFrozen")
	}

	allowed := Build(g, Policy{CanBreakFrozen: true})
	res = allowed.ShortestPath(grid.Coord(0, 0), grid.Coord(0, 1))
	if res.Distance != 1 {
		t.Fatalf("frozen cell should be walkable with CanBreakFrozen, got distance %v", res.Distance)
	}
}

func TestPolicyPlayerWalkability(t *testing.T) {
	g := grid.NewGrid()
	g.At(0, 1).SetCharacter(stubOccupant{id: "p1", killable: false})

	blocked := Build(g, Policy{CanWalkOverPlayers: false})
	res := blocked.ShortestPath(grid.Coord(0, 0), grid.Coord(0, 2))
	if res.Distance != 4 {
		t.Fatalf("a player-occupied cell should block traversal without CanWalkOverPlayers, forcing a 4-step detour; got distance %v", res.Distance)
	}

	allowed := Build(g, Policy{CanWalkOverPlayers: true})
	res = allowed.ShortestPath(grid.Coord(0, 0), grid.Coord(0, 2))
	if res.Distance != 2 {
		t.Fatalf("expected distance 2 through the player cell, got %v", res.Distance)
	}
}

type stubOccupant struct {
	id       string
	killable bool
}

func (s stubOccupant) ID() string     { return s.id }
func (s stubOccupant) Killable() bool { return s.killable }
func (s stubOccupant) Die()           {}
