package character

import "badicecream/internal/grid"

// LogMan is the "rolling" enemy: it computes the best straight path to
// either player (canBreakFrozen = false), keeps the prefix of that path
// that stays on a single axis, and performs that many single-step moves
// back-to-back within one tick. Its visible state is "rolling" while the
// steps are in progress and "stopped" once the roll ends. If no path to a
// player exists, it takes a single step in its current orientation.
type LogMan struct {
	enemyBase
}

func NewLogMan(id string, spawn *grid.Cell, pf PathFinder) *LogMan {
	l := &LogMan{enemyBase: enemyBase{
		base:       base{id: id, cell: spawn, orientation: grid.Down, alive: true},
		kind:       KindLogMan,
		state:      StateStopped,
		pathFinder: pf,
	}}
	spawn.SetCharacter(l)
	return l
}

func (l *LogMan) CalculateMovement() Tick {
	if !l.IsAlive() {
		return Tick{}
	}

	path, ok := l.pathFinder.BestPathToPlayers(l.Cell(), false)
	if !ok || len(path) < 2 {
		mr, moved := l.moveTo(l, l.Orientation())
		l.setState(StateStopped)
		if !moved {
			return Tick{}
		}
		return Tick{Moves: []MoveResult{mr}}
	}

	dir, ok := directionBetween(path[0], path[1])
	if !ok {
		l.setState(StateStopped)
		return Tick{}
	}

	n := 1
	for i := 1; i+1 < len(path); i++ {
		d, ok := directionBetween(path[i], path[i+1])
		if !ok || d != dir {
			break
		}
		n++
	}

	l.setState(StateRolling)
	var moves []MoveResult
	for i := 0; i < n; i++ {
		mr, moved := l.moveTo(l, dir)
		if !moved {
			break
		}
		moves = append(moves, mr)
	}
	l.setState(StateStopped)

	return Tick{Moves: moves}
}
