// Package storage provides a sqlite-backed persistence layer: the match
// snapshot cache (match.SnapshotStore) plus a match_history table
// recording completed matches.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"badicecream/internal/match"
)

// Store is a sqlite-backed match.SnapshotStore plus a match-history
// writer. Snapshots live in memory, written on every handled inbound
// message, and are mirrored to sqlite only at match end via an
// asynchronous insert.
type Store struct {
	db  *sql.DB
	log *logrus.Logger

	mu        sync.Mutex // guards the in-memory map below
	snapshots map[string]match.Storage
}

// Open creates/opens the sqlite database at path and ensures its schema.
func Open(path string, log *logrus.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %q: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS match_history (
		id TEXT PRIMARY KEY,
		started_at DATETIME,
		ended_at DATETIME,
		level INTEGER,
		map_name TEXT,
		host_id TEXT,
		guest_id TEXT,
		result TEXT,
		snapshot_json TEXT
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create match_history table: %w", err)
	}

	log.WithField("path", path).Info("database initialized")

	s := &Store{
		db:        db,
		log:       log,
		snapshots: make(map[string]match.Storage),
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save implements match.SnapshotStore: the live snapshot cache is an
// in-memory map, written after every handled inbound message. It is not
// itself persisted to sqlite; Finalize does that once, at match end.
func (s *Store) Save(matchID string, storage match.Storage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[matchID] = storage
}

// Load implements match.SnapshotStore.
func (s *Store) Load(matchID string) (match.Storage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	storage, ok := s.snapshots[matchID]
	return storage, ok
}

// Finalize implements match.SnapshotStore. It persists a finished
// match's final snapshot to the match_history table: every needed value
// is extracted into locals synchronously, then inserted in a goroutine
// that closes over only those locals, never the live Match or Board.
func (s *Store) Finalize(storage match.Storage, result string) {
	snapshotJSON, err := json.Marshal(storage)
	if err != nil {
		s.log.WithError(err).Warn("failed to marshal match snapshot for history")
		return
	}

	id := storage.MatchID
	level := storage.Level
	mapName := storage.MapName
	hostID := storage.HostID
	guestID := storage.GuestID
	startedAt := storage.StartedAt
	endedAt := time.Now()

	go func() {
		const insert = `
		INSERT INTO match_history (id, started_at, ended_at, level, map_name, host_id, guest_id, result, snapshot_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := s.db.Exec(insert, id, startedAt, endedAt, level, mapName, hostID, guestID, result, string(snapshotJSON)); err != nil {
			s.log.WithError(err).WithField("matchId", id).Warn("failed to record match history")
			return
		}
		s.log.WithField("matchId", id).Info("match history recorded")
	}()
}
