package character

import (
	"math/rand"

	"badicecream/internal/grid"
)

// Troll keeps moving in its current orientation; on any movement failure
// it tries the other three directions in random order until one succeeds
// or all fail, in which case it stops for this tick. Trolls cannot cross
// frozen cells (canBreakFrozen = false is implied: the shared validateMove
// already rejects frozen targets for every character).
type Troll struct {
	enemyBase
}

func NewTroll(id string, spawn *grid.Cell, rng *rand.Rand) *Troll {
	t := &Troll{enemyBase: enemyBase{
		base: base{id: id, cell: spawn, orientation: grid.Down, alive: true},
		kind: KindTroll,
		state: StateWalking,
		rng:   rng,
	}}
	spawn.SetCharacter(t)
	return t
}

func (t *Troll) CalculateMovement() Tick {
	if !t.IsAlive() {
		return Tick{}
	}

	if mr, ok := t.moveTo(t, t.Orientation()); ok {
		t.setState(StateWalking)
		return Tick{Moves: []MoveResult{mr}}
	}

	dirs := otherDirections(t.Orientation())
	shuffleDirections(dirs, t.rng)
	for _, d := range dirs {
		if mr, ok := t.moveTo(t, d); ok {
			t.setState(StateWalking)
			return Tick{Moves: []MoveResult{mr}}
		}
	}

	t.setState(StateStopped)
	return Tick{}
}
