// Package apperrors collects the sentinel error kinds shared across the
// match server so every layer (character, board, match, session) can
// raise and compare them with errors.Is without import cycles.
package apperrors

import "errors"

var (
	// ErrNullCell: a move targets an off-grid neighbor.
	ErrNullCell = errors.New("null cell")
	// ErrBlockedCell: target is blocked, frozen, or holds a non-killable character.
	ErrBlockedCell = errors.New("blocked cell")
	// ErrInvalidMessageType: inbound message tag is not recognized.
	ErrInvalidMessageType = errors.New("invalid message type")
	// ErrInvalidMove: movement payload could not be parsed as a direction.
	ErrInvalidMove = errors.New("invalid move")
	// ErrInvalidRotation: rotate payload could not be parsed as a direction.
	ErrInvalidRotation = errors.New("invalid rotation")
	// ErrMatchNotFound: the router could not resolve a match id.
	ErrMatchNotFound = errors.New("match not found")
	// ErrPlayerNotFound: the router could not resolve a player in a match.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrSocketClosed: the peer's outbound channel is not open.
	ErrSocketClosed = errors.New("socket closed")
	// ErrMatchAlreadyStarted: a join was attempted against a started match.
	ErrMatchAlreadyStarted = errors.New("match already started")
	// ErrUserNotDefined: a board query ran before players were set up.
	ErrUserNotDefined = errors.New("user not defined")
)
