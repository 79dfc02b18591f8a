// Package character implements the Player and Enemy capability sets:
// movement primitives guarded by a per-character critical section,
// kill/die/reborn semantics, and enemy AI strategies.
package character

import (
	"sync"

	"badicecream/internal/apperrors"
	"badicecream/internal/grid"
)

// Character is the capability set shared by Player and Enemy.
type Character interface {
	grid.Occupant
	Orientation() grid.Direction
	IsAlive() bool
	Reborn()
	Cell() *grid.Cell
}

// Enemy adds AI-specific behavior on top of Character.
type Enemy interface {
	Character
	CalculateMovement() Tick
	GetKind() string
	GetState() string
	DTO() EnemyDTO
	// SetState and SetOrientation exist for snapshot restore only; no
	// in-progress tick logic calls them directly.
	SetState(s string)
	SetOrientation(dir grid.Direction)
}

// FruitSink is the narrow view of Board that a Player needs to report a
// consumed fruit against the round's live count. Board implements this;
// character never imports board, breaking what would otherwise be a
// cyclic package dependency.
type FruitSink interface {
	FruitPicked(kind string)
}

// Item is a plain-data mirror of grid.Item for crossing the character/board
// boundary without leaking the grid.Item interface to callers that only
// need id+kind.
type Item struct {
	ID   string
	Kind string
}

// MoveResult is what a movement primitive hands back to its caller so the
// caller (Match) can translate it into an outbound update-move/update-enemy
// event without reaching back into character internals.
type MoveResult struct {
	CharacterID  string
	X, Y         int
	Direction    grid.Direction
	Alive        bool
	ItemConsumed *string
	ItemKind     string
	KilledPlayer bool // true if this move killed the mover (player stepped onto an enemy)
}

// base holds the state and critical section shared by every character.
type base struct {
	mu          sync.Mutex
	id          string
	cell        *grid.Cell
	orientation grid.Direction
	alive       bool
	color       string
}

func (b *base) ID() string                  { return b.id }
func (b *base) Cell() *grid.Cell            { return b.cell }
func (b *base) Orientation() grid.Direction { return b.orientation }
func (b *base) IsAlive() bool               { return b.alive }

func (b *base) Die() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alive = false
}

func (b *base) Reborn() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alive = true
}

// validateMove checks a move's preconditions: NullCell if off-grid,
// BlockedCell if blocked, frozen, or occupied by a character of the same
// kill-ness (two players, or two enemies, never share a cell). A
// killable/non-killable collision is always allowed here; its resolution
// (who dies) is the mover's responsibility.
func validateMove(target *grid.Cell, selfKillable bool) error {
	if target == nil {
		return apperrors.ErrNullCell
	}
	if target.Blocked() || target.IsFrozen() {
		return apperrors.ErrBlockedCell
	}
	if occ := target.Character(); occ != nil && occ.Killable() == selfKillable {
		return apperrors.ErrBlockedCell
	}
	return nil
}
