package session

import (
	"github.com/google/uuid"

	"badicecream/internal/board"
	"badicecream/internal/match"
)

// waitingPlayer is one user queued for a level, simplified from a
// challenge/lobby model to direct two-player pairing: matches here
// aren't challenged between named users, they're paired off a single
// FIFO queue per level.
type waitingPlayer struct {
	userID      string
	color       string
	displayName string
}

// Join enqueues userID for level and, if a peer is already waiting on
// the same level, creates and starts the match pairing them. It returns
// the matchID once paired, or "" while still waiting.
func (r *Router) Join(userID string, level int, color, displayName string) string {
	if displayName == "" {
		displayName = RandomDisplayName(r.rng)
	}

	r.mu.Lock()
	waiting, ok := r.queues[level]
	if !ok {
		r.queues[level] = &waitingPlayer{userID: userID, color: color, displayName: displayName}
		r.mu.Unlock()
		return ""
	}
	delete(r.queues, level)
	r.mu.Unlock()

	return r.createMatch(level, waiting, &waitingPlayer{userID: userID, color: color, displayName: displayName})
}

func (r *Router) createMatch(level int, host, guest *waitingPlayer) string {
	lvl, ok := board.Levels[level]
	if !ok {
		lvl = board.Levels[1]
	}

	b := board.NewBoard(lvl, r.rng)
	b.SetUpPlayers(host.userID, guest.userID, host.color, guest.color, host.displayName, guest.displayName)

	id := uuid.New().String()
	m := match.New(id, lvl.Number, lvl.MapName, host.userID, guest.userID, b, r.cfg.Match, r.log, r, r.snapshots)

	r.registerMatch(host.userID, guest.userID, m)
	m.Start()

	r.log.WithFields(map[string]any{
		"matchId": id, "level": level, "host": host.userID, "guest": guest.userID,
	}).Info("match created")

	return id
}
