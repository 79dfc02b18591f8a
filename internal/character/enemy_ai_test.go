package character

import (
	"testing"

	"badicecream/internal/grid"
)

// fakePathFinder hands back a fixed direction/path regardless of the cell
// it's asked about, letting enemy AI tests drive CalculateMovement without
// a real board.
type fakePathFinder struct {
	dir    grid.Direction
	dirOK  bool
	path   []string
	pathOK bool
}

func (f *fakePathFinder) BestDirectionToPlayers(from *grid.Cell, canBreakFrozen bool) (grid.Direction, bool) {
	return f.dir, f.dirOK
}

func (f *fakePathFinder) BestPathToPlayers(from *grid.Cell, canBreakFrozen bool) ([]string, bool) {
	return f.path, f.pathOK
}

func TestCowMovesTowardDirectedPlayer(t *testing.T) {
	g := grid.NewGrid()
	pf := &fakePathFinder{dir: grid.Right, dirOK: true}
	cow := NewCow("c1", g.At(5, 5), pf)

	tick := cow.CalculateMovement()
	if len(tick.Moves) != 1 {
		t.Fatalf("expected one move, got %+v", tick)
	}
	if cow.Cell() != g.At(5, 6) {
		t.Fatal("cow should have stepped right toward the reported player direction")
	}
}

func TestCowFallsBackToOrientationWhenNoPlayerReachable(t *testing.T) {
	g := grid.NewGrid()
	pf := &fakePathFinder{dirOK: false}
	cow := NewCow("c1", g.At(5, 5), pf)

	tick := cow.CalculateMovement()
	if len(tick.Moves) != 1 {
		t.Fatalf("expected cow to still take a step in its own orientation, got %+v", tick)
	}
	if cow.Cell() != g.At(6, 5) {
		t.Fatal("cow should have moved down, its default spawn orientation")
	}
}

func TestLogManRollsMultipleStepsAlongStraightPath(t *testing.T) {
	g := grid.NewGrid()
	pf := &fakePathFinder{
		pathOK: true,
		path:   []string{"5,5", "5,6", "5,7", "5,8"},
	}
	logman := NewLogMan("l1", g.At(5, 5), pf)

	tick := logman.CalculateMovement()
	if len(tick.Moves) != 3 {
		t.Fatalf("expected three rolling moves along the straight run, got %d", len(tick.Moves))
	}
	if logman.Cell() != g.At(5, 8) {
		t.Fatal("logman should have rolled to the end of the straight path")
	}
	if logman.GetState() != StateStopped {
		t.Fatalf("expected logman to end stopped after its roll, got %q", logman.GetState())
	}
}

func TestLogManStopsRollWhenPathBends(t *testing.T) {
	g := grid.NewGrid()
	pf := &fakePathFinder{
		pathOK: true,
		path:   []string{"5,5", "5,6", "6,6"},
	}
	logman := NewLogMan("l1", g.At(5, 5), pf)

	tick := logman.CalculateMovement()
	if len(tick.Moves) != 1 {
		t.Fatalf("expected the roll to stop at the bend after one step, got %d", len(tick.Moves))
	}
	if logman.Cell() != g.At(5, 6) {
		t.Fatal("logman should have stopped at the first bend in the path")
	}
}

func TestSquidGreenUnfreezesThenMoves(t *testing.T) {
	g := grid.NewGrid()
	for _, dir := range grid.AllDirections {
		g.At(5, 5).Neighbor(dir).SetFrozen(true)
	}
	pf := &fakePathFinder{dir: grid.Right, dirOK: true}
	squid := NewSquidGreen("s1", g.At(5, 5), pf)

	tick := squid.CalculateMovement()
	if len(tick.FrozenCells) != 4 {
		t.Fatalf("expected 4 cells thawed by the power, got %d", len(tick.FrozenCells))
	}
	for _, c := range tick.FrozenCells {
		if c.IsFrozen() {
			t.Fatalf("cell %v should be thawed, still frozen", c.Coord())
		}
	}
	if len(tick.Moves) != 1 || squid.Cell() != g.At(5, 6) {
		t.Fatal("squid-green should have moved right after unfreezing")
	}
}

func TestSquidBlueFreezesThenMoves(t *testing.T) {
	g := grid.NewGrid()
	pf := &fakePathFinder{dir: grid.Right, dirOK: true}
	squid := NewSquidBlue("s1", g.At(5, 5), pf)

	tick := squid.CalculateMovement()
	if len(tick.FrozenCells) != 4 {
		t.Fatalf("expected 4 cells frozen by the power, got %d", len(tick.FrozenCells))
	}
	for _, c := range tick.FrozenCells {
		if !c.IsFrozen() {
			t.Fatalf("cell %v should be frozen, is not", c.Coord())
		}
	}
	if len(tick.Moves) != 1 || squid.Cell() != g.At(5, 6) {
		t.Fatal("squid-blue should have moved right after freezing")
	}
}
