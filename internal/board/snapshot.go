package board

import (
	"math/rand"

	"badicecream/internal/character"
	"badicecream/internal/grid"
)

// Snapshot is the value object returned by Board.Snapshot: enough to
// reconstruct a board's grid, fruit lifecycle, players and enemies after
// a process restart. The match layer embeds this alongside its own
// fields (secondsLeft, paused, level, map name) to build the full
// persisted match Storage.
type Snapshot struct {
	FruitQueueTail   []string
	FruitsNumber     int
	RemainingRounds  int
	CurrentRound     int
	CurrentFruitType string
	Cells            []grid.CellDTO
	Host             character.PlayerDTO
	Guest            character.PlayerDTO
	Enemies          []character.EnemyDTO
}

// Snapshot acquires the board's critical section and renders its current
// state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	var cells []grid.CellDTO
	b.grid.Each(func(c *grid.Cell) {
		if c.Item() != nil || c.IsFrozen() || c.Character() != nil {
			cells = append(cells, c.DTO())
		}
	})

	var enemyDTOs []character.EnemyDTO
	for _, e := range b.enemyList {
		enemyDTOs = append(enemyDTOs, e.DTO())
	}

	return Snapshot{
		FruitQueueTail:   append([]string(nil), b.fruitQueue...),
		FruitsNumber:     b.fruitsNumber,
		RemainingRounds:  b.remainingRounds,
		CurrentRound:     b.currentRound,
		CurrentFruitType: b.currentFruitType,
		Cells:            cells,
		Host:             b.host.DTO(),
		Guest:            b.guest.DTO(),
		Enemies:          enemyDTOs,
	}
}

// RestoreBoard reconstructs a board from a snapshot taken earlier in this
// level: it rebuilds the static grid from level (rocks, pre-frozen
// cells, enemy spawns) exactly as NewBoard would, then re-applies the
// snapshot's dynamic state (items, frozen flags, fruit counters, and
// per-character position/orientation/alive/state) on top, using the
// character kind tag in each EnemyDTO as the reconstruction factory key,
// since the snapshot never stores pointers, only ids and coordinates.
func RestoreBoard(snap Snapshot, level *Level, rng *rand.Rand, hostID, guestID string) *Board {
	b := NewBoard(level, rng)

	b.mu.Lock()
	b.fruitQueue = append([]string(nil), snap.FruitQueueTail...)
	b.fruitsNumber = snap.FruitsNumber
	b.remainingRounds = snap.RemainingRounds
	b.currentRound = snap.CurrentRound
	b.currentFruitType = snap.CurrentFruitType
	b.mu.Unlock()

	b.grid.Each(func(c *grid.Cell) {
		c.SetItem(nil)
		c.SetFrozen(false)
		c.SetCharacter(nil)
	})
	for _, dto := range snap.Cells {
		cell := b.grid.At(dto.X, dto.Y)
		if cell == nil {
			continue
		}
		cell.SetFrozen(dto.Frozen)
		switch dto.ItemKind {
		case grid.KindFruit:
			cell.SetItem(grid.NewFruit(dto.ItemID, snap.CurrentFruitType))
		case grid.KindSpecialFruit:
			cell.SetItem(grid.NewSpecialFruit(dto.ItemID))
		case grid.KindRock:
			cell.SetItem(grid.NewRock(dto.ItemID))
		}
	}

	hostCell := b.grid.At(snap.Host.X, snap.Host.Y)
	guestCell := b.grid.At(snap.Guest.X, snap.Guest.Y)
	b.host = character.NewPlayer(hostID, hostCell, snap.Host.Color, snap.Host.DisplayName, b)
	b.guest = character.NewPlayer(guestID, guestCell, snap.Guest.Color, snap.Guest.DisplayName, b)
	restorePlayer(b.host, snap.Host)
	restorePlayer(b.guest, snap.Guest)

	restoredEnemies := make(map[string]character.Enemy, len(snap.Enemies))
	var restoredList []character.Enemy
	for _, dto := range snap.Enemies {
		cell := b.grid.At(dto.X, dto.Y)
		if cell == nil {
			continue
		}
		e := newEnemy(dto.Kind, dto.ID, cell, b, b.rng)
		if e == nil {
			continue
		}
		if dir, ok := grid.ParseDirection(dto.Direction); ok {
			e.SetOrientation(dir)
		}
		e.SetState(dto.State)
		if !dto.Alive {
			e.Die()
		}
		restoredEnemies[dto.ID] = e
		restoredList = append(restoredList, e)
	}
	b.enemies = restoredEnemies
	b.enemyList = restoredList

	return b
}

func restorePlayer(p *character.Player, dto character.PlayerDTO) {
	if dir, ok := grid.ParseDirection(dto.Direction); ok {
		p.ChangeOrientation(dir)
	}
	p.SetStatus(dto.Status)
	if !dto.Alive {
		p.Die()
	}
}

func newEnemy(kind, id string, cell *grid.Cell, pf character.PathFinder, rng *rand.Rand) character.Enemy {
	switch kind {
	case character.KindTroll:
		return character.NewTroll(id, cell, rng)
	case character.KindCow:
		return character.NewCow(id, cell, pf)
	case character.KindLogMan:
		return character.NewLogMan(id, cell, pf)
	case character.KindSquidGreen:
		return character.NewSquidGreen(id, cell, pf)
	case character.KindSquidBlue:
		return character.NewSquidBlue(id, cell, pf)
	default:
		return nil
	}
}
