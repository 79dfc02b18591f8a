package character

import "badicecream/internal/grid"

// Cow asks the board for the best direction toward any alive player every
// tick (canBreakFrozen = false) and moves one step that way. If no player
// is reachable it keeps its current orientation.
type Cow struct {
	enemyBase
}

func NewCow(id string, spawn *grid.Cell, pf PathFinder) *Cow {
	c := &Cow{enemyBase: enemyBase{
		base:       base{id: id, cell: spawn, orientation: grid.Down, alive: true},
		kind:       KindCow,
		state:      StateWalking,
		pathFinder: pf,
	}}
	spawn.SetCharacter(c)
	return c
}

func (c *Cow) CalculateMovement() Tick {
	if !c.IsAlive() {
		return Tick{}
	}

	dir, ok := c.pathFinder.BestDirectionToPlayers(c.Cell(), false)
	if !ok {
		dir = c.Orientation()
	}

	if mr, moved := c.moveTo(c, dir); moved {
		c.setState(StateWalking)
		return Tick{Moves: []MoveResult{mr}}
	}
	return Tick{}
}
