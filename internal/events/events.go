// Package events defines the inbound and outbound message envelopes that
// make up the wire contract between a connected user's duplex channel
// and the match runtime.
package events

import "encoding/json"

// Inbound type tags.
const (
	TypeMovement   = "movement"
	TypeRotate     = "rotate"
	TypeExecPower  = "exec-power"
	TypeSetColor   = "set-color"
	TypePause      = "pause"
	TypeResume     = "resume"
	TypeUpdateAll  = "update-all"
)

// Outbound type tags.
const (
	OutUpdateMove         = "update-move"
	OutUpdateEnemy        = "update-enemy"
	OutUpdateTime         = "update-time"
	OutUpdateState        = "update-state"
	OutUpdateFruits       = "update-fruits"
	OutUpdateFrozenCells  = "update-frozen-cells"
	OutUpdateAll          = "update-all"
	OutPaused             = "paused"
	OutEnd                = "end"
	OutError              = "error"
	OutTimeout            = "timeout"
	OutUpdateSpecialFruit = "update-special-fruit"
	OutPlayerUpdate       = "player-update"
)

// Inbound is the envelope of one message arriving on a user's channel.
// Payload is left raw so each handler parses it into the shape it
// expects (a bare direction string for movement/rotate, a color string
// for set-color, empty for the rest).
type Inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Outbound is the envelope sent back to one or both users.
type Outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Coordinates mirrors the {x,y} shape nested in several outbound payloads.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// UpdateMovePayload is emitted after a player's movement or rotate
// primitive (exec-power emits update-frozen-cells instead); both fill
// Direction and Coordinates with the player's current facing and cell.
type UpdateMovePayload struct {
	ID              string      `json:"id"`
	Coordinates     Coordinates `json:"coordinates"`
	Direction       string      `json:"direction"`
	State           string      `json:"state"`
	IDItemConsumed  *string     `json:"idItemConsumed,omitempty"`
	NumberOfFruits  *int        `json:"numberOfFruits,omitempty"`
}

// UpdateEnemyPayload mirrors one enemy's post-move state.
type UpdateEnemyPayload struct {
	EnemyID     string      `json:"enemyId"`
	Coordinates Coordinates `json:"coordinates"`
	Direction   string      `json:"direction"`
	EnemyState  string      `json:"enemyState"`
}

// UpdateTimePayload is emitted every clock tick.
type UpdateTimePayload struct {
	MinutesLeft int `json:"minutesLeft"`
	SecondsLeft int `json:"secondsLeft"`
}

// UpdateStatePayload reports a player's alive/dead transition outside of
// a move (e.g. killed by an enemy tick, or the match's short-circuit
// reply to an inbound message from a dead player).
type UpdateStatePayload struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// UpdateFruitsPayload announces a fruit-round advance.
type UpdateFruitsPayload struct {
	CurrentRound   int     `json:"currentRound"`
	NextFruitType  *string `json:"nextFruitType"`
	FruitsNumber   int     `json:"fruitsNumber"`
}

// CellDeltaDTO mirrors grid.CellDTO on the wire; kept as its own type so
// this package has no dependency on internal/grid.
type CellDeltaDTO struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Frozen      bool   `json:"frozen"`
	ItemKind    string `json:"itemKind,omitempty"`
	ItemID      string `json:"itemId,omitempty"`
	CharacterID string `json:"characterId,omitempty"`
}

// UpdateFrozenCellsPayload is emitted after exec-power or a squid's power.
type UpdateFrozenCellsPayload struct {
	Cells     []CellDeltaDTO `json:"cells"`
	Direction string         `json:"direction,omitempty"`
}

// PausedPayload toggles the paused indicator.
type PausedPayload struct {
	Paused bool `json:"paused"`
}

// EndPayload announces match termination.
type EndPayload struct {
	Result string `json:"result"` // "win" | "lose" | "end game"
}

// ErrorPayload is the uniform shape for the error/timeout outbound tags.
type ErrorPayload struct {
	Error string `json:"error"`
}

// UpdateSpecialFruitPayload announces a special fruit's appearance or
// consumption (reborn effect).
type UpdateSpecialFruitPayload struct {
	ID          string      `json:"id"`
	Coordinates Coordinates `json:"coordinates"`
	Consumed    bool        `json:"consumed"`
}

// PlayerUpdatePayload mirrors a player's profile-level change (color,
// display name) outside the movement lifecycle.
type PlayerUpdatePayload struct {
	ID          string `json:"id"`
	Color       string `json:"color,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}
