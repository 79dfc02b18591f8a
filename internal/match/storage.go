package match

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"badicecream/internal/board"
	"badicecream/internal/config"
)

// Storage is the full persisted value object for a match: the board's
// snapshot plus the match-level timing and identity fields needed to
// rebuild a running Match. Restore is its reconstruction counterpart.
type Storage struct {
	MatchID     string
	Level       int
	MapName     string
	HostID      string
	GuestID     string
	SecondsLeft int
	Paused      bool
	StartedAt   time.Time
	Board       board.Snapshot
}

// persist acquires the board's critical section via Snapshot and writes
// the result to the snapshot cache. Called after every handled inbound
// message. A nil store (no collaborator wired) is a no-op rather than a
// panic, so tests can drive a Match without a persistence backend.
func (m *Match) persist() {
	if m.snapshots == nil {
		return
	}
	m.snapshots.Save(m.id, m.snapshotPayload())
}

// snapshotPayload renders the current full state for an update-all
// reply, either on explicit request or on reconnect.
func (m *Match) snapshotPayload() Storage {
	m.mu.Lock()
	secondsLeft, paused, startedAt := m.secondsLeft, m.paused, m.startedAt
	m.mu.Unlock()

	return Storage{
		MatchID:     m.id,
		Level:       m.level,
		MapName:     m.mapName,
		HostID:      m.hostID,
		GuestID:     m.guestID,
		SecondsLeft: secondsLeft,
		Paused:      paused,
		StartedAt:   startedAt,
		Board:       m.board.Snapshot(),
	}
}

// finalize hands the final snapshot to the snapshot store's permanent
// history sink. A nil store is a no-op, matching persist's tolerance of
// a storage-less test harness.
func (m *Match) finalize(result string) {
	if m.snapshots == nil {
		return
	}
	m.snapshots.Finalize(m.snapshotPayload(), result)
}

// SnapshotForReconnect renders the current full state for an
// update-all reply sent to a user who just reconnected mid-match.
func (m *Match) SnapshotForReconnect() Storage {
	return m.snapshotPayload()
}

// Restore reconstructs a Match from a previously persisted Storage value
// and the live collaborators of the new process. The returned match is
// unstarted; the caller decides whether to call Start immediately.
func Restore(s Storage, lvl *board.Level, rng *rand.Rand, cfg config.MatchConfig, log *logrus.Logger, outbox Outbox, snapshots SnapshotStore) *Match {
	b := board.RestoreBoard(s.Board, lvl, rng, s.HostID, s.GuestID)
	m := New(s.MatchID, s.Level, s.MapName, s.HostID, s.GuestID, b, cfg, log, outbox, snapshots)
	m.secondsLeft = s.SecondsLeft
	m.paused = s.Paused
	m.startedAt = s.StartedAt
	return m
}
