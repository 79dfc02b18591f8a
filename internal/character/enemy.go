package character

import (
	"fmt"
	"math/rand"

	"badicecream/internal/grid"
)

// Enemy kind tags.
const (
	KindTroll      = "troll"
	KindCow        = "cow"
	KindLogMan     = "log-man"
	KindSquidGreen = "squid-green"
	KindSquidBlue  = "squid-blue"
)

// Enemy visible states.
const (
	StateWalking = "walking"
	StateRolling = "rolling"
	StateStopped = "stopped"
)

// PathFinder is the narrow view of Board an enemy AI needs: the direction
// and full path of the shortest route to the nearest alive player. Board
// implements this; character never imports board.
type PathFinder interface {
	BestDirectionToPlayers(from *grid.Cell, canBreakFrozen bool) (grid.Direction, bool)
	BestPathToPlayers(from *grid.Cell, canBreakFrozen bool) ([]string, bool)
}

// Tick is what an enemy's per-tick AI invocation hands back: the sequence
// of moves it performed (LogMan may perform several in one tick) plus any
// cells whose frozen flag changed as a side effect of its power.
type Tick struct {
	Moves       []MoveResult
	FrozenCells []*grid.Cell
}

// enemyBase is the shared state and movement primitive for every enemy
// variant. Each variant embeds it and supplies its own CalculateMovement.
type enemyBase struct {
	base
	kind       string
	state      string
	pathFinder PathFinder
	rng        *rand.Rand
}

func (e *enemyBase) Killable() bool  { return true }
func (e *enemyBase) GetKind() string { return e.kind }
func (e *enemyBase) GetState() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *enemyBase) setState(s string) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// SetState and SetOrientation are exported for snapshot restore, where an
// enemy is reconstructed at its default state/orientation and then
// brought in line with the persisted value.
func (e *enemyBase) SetState(s string) { e.setState(s) }

func (e *enemyBase) SetOrientation(dir grid.Direction) {
	e.mu.Lock()
	e.orientation = dir
	e.mu.Unlock()
}

// moveTo performs the compound validate -> mutate sequence for an enemy
// stepping in dir. self is the concrete variant (it must embed this
// enemyBase) so the right value lands in the cell's occupant slot. If the
// target holds a player, the player dies on contact and the enemy takes
// its cell.
func (e *enemyBase) moveTo(self grid.Occupant, dir grid.Direction) (MoveResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.orientation = dir
	target := e.cell.Neighbor(dir)
	if err := validateMove(target, true); err != nil {
		return MoveResult{}, false
	}

	if other := target.Character(); other != nil {
		other.Die()
	}

	e.cell.SetCharacter(nil)
	target.SetCharacter(self)
	e.cell = target

	return MoveResult{
		CharacterID: e.id,
		X:           target.X,
		Y:           target.Y,
		Direction:   dir,
		Alive:       true,
	}, true
}

// EnemyDTO is the wire representation of an enemy used by update-enemy and
// match snapshots.
type EnemyDTO struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
	State     string `json:"state"`
	Alive     bool   `json:"alive"`
}

func (e *enemyBase) DTO() EnemyDTO {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EnemyDTO{
		ID:        e.id,
		Kind:      e.kind,
		X:         e.cell.X,
		Y:         e.cell.Y,
		Direction: e.orientation.String(),
		State:     e.state,
		Alive:     e.alive,
	}
}

// otherDirections returns the three directions other than cur, in a fixed
// base order; callers that need randomness shuffle the result themselves.
func otherDirections(cur grid.Direction) []grid.Direction {
	out := make([]grid.Direction, 0, 3)
	for _, d := range grid.AllDirections {
		if d != cur {
			out = append(out, d)
		}
	}
	return out
}

func shuffleDirections(dirs []grid.Direction, rng *rand.Rand) {
	rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
}

// directionBetween returns the direction of travel from cell a to its
// grid-adjacent neighbor b (as "x,y" coordinate strings), used to find the
// straight-line run at the head of a pathfinding result.
func directionBetween(a, b string) (grid.Direction, bool) {
	ax, ay, aok := parseCoord(a)
	bx, by, bok := parseCoord(b)
	if !aok || !bok {
		return 0, false
	}
	dx, dy := bx-ax, by-ay
	switch {
	case dx == -1 && dy == 0:
		return grid.Up, true
	case dx == 1 && dy == 0:
		return grid.Down, true
	case dx == 0 && dy == -1:
		return grid.Left, true
	case dx == 0 && dy == 1:
		return grid.Right, true
	default:
		return 0, false
	}
}

func parseCoord(s string) (x, y int, ok bool) {
	if _, err := fmt.Sscanf(s, "%d,%d", &x, &y); err != nil {
		return 0, 0, false
	}
	return x, y, true
}
