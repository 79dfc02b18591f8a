package character

import "badicecream/internal/grid"

// SquidGreen unfreezes its four neighboring cells (its power) before
// moving one step toward the best player with canBreakFrozen = true.
type SquidGreen struct {
	enemyBase
}

func NewSquidGreen(id string, spawn *grid.Cell, pf PathFinder) *SquidGreen {
	s := &SquidGreen{enemyBase: enemyBase{
		base:       base{id: id, cell: spawn, orientation: grid.Down, alive: true},
		kind:       KindSquidGreen,
		state:      StateWalking,
		pathFinder: pf,
	}}
	spawn.SetCharacter(s)
	return s
}

func (s *SquidGreen) CalculateMovement() Tick {
	if !s.IsAlive() {
		return Tick{}
	}

	s.mu.Lock()
	frozen := s.cell.UnfreezeCellsAround()
	s.mu.Unlock()

	dir, ok := s.pathFinder.BestDirectionToPlayers(s.Cell(), true)
	if !ok {
		dir = s.Orientation()
	}

	tick := Tick{FrozenCells: frozen}
	if mr, moved := s.moveTo(s, dir); moved {
		s.setState(StateWalking)
		tick.Moves = []MoveResult{mr}
	}
	return tick
}

// SquidBlue is the freeze counterpart of SquidGreen: it freezes its four
// neighboring cells before moving, with the same canBreakFrozen = true
// movement policy. It may step onto a frozen cell, which stays frozen.
type SquidBlue struct {
	enemyBase
}

func NewSquidBlue(id string, spawn *grid.Cell, pf PathFinder) *SquidBlue {
	s := &SquidBlue{enemyBase: enemyBase{
		base:       base{id: id, cell: spawn, orientation: grid.Down, alive: true},
		kind:       KindSquidBlue,
		state:      StateWalking,
		pathFinder: pf,
	}}
	spawn.SetCharacter(s)
	return s
}

func (s *SquidBlue) CalculateMovement() Tick {
	if !s.IsAlive() {
		return Tick{}
	}

	s.mu.Lock()
	frozen := s.cell.FreezeCellsAround()
	s.mu.Unlock()

	dir, ok := s.pathFinder.BestDirectionToPlayers(s.Cell(), true)
	if !ok {
		dir = s.Orientation()
	}

	tick := Tick{FrozenCells: frozen}
	// validateMove rejects frozen targets, so a frozen target's flag is
	// lifted for the step and restored afterwards.
	target := s.Cell().Neighbor(dir)
	refreeze := target != nil && target.IsFrozen()
	if refreeze {
		target.SetFrozen(false)
	}
	mr, moved := s.moveTo(s, dir)
	if refreeze {
		target.SetFrozen(true)
	}
	if moved {
		s.setState(StateWalking)
		tick.Moves = []MoveResult{mr}
	}
	return tick
}
