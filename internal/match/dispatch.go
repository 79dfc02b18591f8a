package match

import (
	"encoding/json"

	"badicecream/internal/apperrors"
	"badicecream/internal/character"
	"badicecream/internal/events"
	"badicecream/internal/grid"
)

// handleInbound applies one user's message to the board under that
// player's own critical section and fans out the result. Runs on the
// event-loop goroutine.
func (m *Match) handleInbound(userID string, in events.Inbound) {
	player, err := m.board.ResolvePlayer(userID)
	if err != nil {
		m.errorReply(userID, err)
		return
	}

	if !player.IsAlive() && in.Type != events.TypeUpdateAll {
		m.notifyOne(userID, events.OutUpdateState, events.UpdateStatePayload{ID: player.ID(), State: "dead"})
		return
	}

	switch in.Type {
	case events.TypeMovement:
		m.handleMovement(userID, player, in.Payload)
	case events.TypeRotate:
		m.handleRotate(player, in.Payload, userID)
	case events.TypeExecPower:
		m.handleExecPower(player)
	case events.TypeSetColor:
		m.handleSetColor(player, in.Payload)
	case events.TypePause:
		m.setPaused(true)
	case events.TypeResume:
		m.setPaused(false)
	case events.TypeUpdateAll:
		m.notifyOne(userID, events.OutUpdateAll, m.snapshotPayload())
	default:
		m.errorReply(userID, apperrors.ErrInvalidMessageType)
	}

	m.persist()
}

func (m *Match) handleMovement(userID string, p *character.Player, raw json.RawMessage) {
	dir, err := parseDirection(raw)
	if err != nil {
		m.errorReply(userID, apperrors.ErrInvalidMove)
		return
	}

	var result character.MoveResult
	var moveErr error
	switch dir {
	case grid.Up:
		result, moveErr = p.MoveUp()
	case grid.Down:
		result, moveErr = p.MoveDown()
	case grid.Left:
		result, moveErr = p.MoveLeft()
	case grid.Right:
		result, moveErr = p.MoveRight()
	}

	if moveErr != nil {
		m.errorReply(userID, moveErr)
		return
	}

	m.emitUpdateMove(result)
	m.flushFruitEvents()
	m.flushSpecialFruitEvents()
}

func (m *Match) handleRotate(p *character.Player, raw json.RawMessage, userID string) {
	dir, err := parseDirection(raw)
	if err != nil {
		m.errorReply(userID, apperrors.ErrInvalidRotation)
		return
	}
	p.ChangeOrientation(dir)
	m.notifyBoth(events.OutUpdateMove, events.UpdateMovePayload{
		ID:          p.ID(),
		Coordinates: events.Coordinates{X: p.Cell().X, Y: p.Cell().Y},
		Direction:   dir.String(),
		State:       aliveState(p.IsAlive()),
	})
}

func (m *Match) handleExecPower(p *character.Player) {
	changed := p.ExecPower()
	if len(changed) == 0 {
		return
	}
	m.notifyBoth(events.OutUpdateFrozenCells, events.UpdateFrozenCellsPayload{
		Cells:     cellDeltaDTOs(changed),
		Direction: p.Orientation().String(),
	})
}

func (m *Match) handleSetColor(p *character.Player, raw json.RawMessage) {
	var color string
	if err := json.Unmarshal(raw, &color); err != nil {
		m.errorReply(p.ID(), apperrors.ErrInvalidMessageType)
		return
	}
	p.SetColor(color)
	// Echoed to both users including the sender.
	m.notifyBoth(events.OutUpdateState, events.UpdateStatePayload{ID: p.ID(), State: aliveState(p.IsAlive())})
}

func (m *Match) setPaused(paused bool) {
	m.mu.Lock()
	m.paused = paused
	m.mu.Unlock()
	m.notifyBoth(events.OutPaused, events.PausedPayload{Paused: paused})
}

func (m *Match) flushFruitEvents() {
	for _, ev := range m.board.DrainFruitEvents() {
		m.notifyBoth(events.OutUpdateFruits, events.UpdateFruitsPayload{
			CurrentRound:  ev.CurrentRound,
			NextFruitType: ev.NextFruitType,
			FruitsNumber:  ev.FruitsNumber,
		})
	}
}

func (m *Match) emitUpdateMove(r character.MoveResult) {
	payload := events.UpdateMovePayload{
		ID:          r.CharacterID,
		Coordinates: events.Coordinates{X: r.X, Y: r.Y},
		Direction:   r.Direction.String(),
		State:       aliveState(r.Alive),
	}
	// numberOfFruits is emitted only when an item was actually consumed.
	if r.ItemConsumed != nil {
		payload.IDItemConsumed = r.ItemConsumed
		n := m.board.FruitsNumber()
		payload.NumberOfFruits = &n
	}
	m.notifyBoth(events.OutUpdateMove, payload)

	if r.KilledPlayer {
		m.notifyBoth(events.OutUpdateState, events.UpdateStatePayload{ID: r.CharacterID, State: "dead"})
	}
}

func aliveState(alive bool) string {
	if alive {
		return "alive"
	}
	return "dead"
}

func parseDirection(raw json.RawMessage) (grid.Direction, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, apperrors.ErrInvalidMove
	}
	dir, ok := grid.ParseDirection(s)
	if !ok {
		return 0, apperrors.ErrInvalidMove
	}
	return dir, nil
}
