package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"badicecream/internal/match"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(discardWriter{})
	return log
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestSaveAndLoadRoundTripsInMemorySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	want := match.Storage{MatchID: "m1", Level: 1, MapName: "ice-cave", HostID: "host", GuestID: "guest"}
	store.Save("m1", want)

	got, ok := store.Load("m1")
	if !ok {
		t.Fatal("expected the saved snapshot to be found")
	}
	if got.MapName != want.MapName || got.HostID != want.HostID {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if _, ok := store.Load("unknown"); ok {
		t.Fatal("expected a miss for a match id never saved")
	}
}

func TestFinalizeWritesMatchHistoryRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	store.Finalize(match.Storage{
		MatchID:   "m1",
		Level:     2,
		MapName:   "frozen-lake",
		HostID:    "host",
		GuestID:   "guest",
		StartedAt: time.Now().Add(-time.Minute),
	}, "win")

	deadline := time.After(time.Second)
	for {
		var count int
		if err := store.db.QueryRow(`SELECT COUNT(*) FROM match_history WHERE id = ?`, "m1").Scan(&count); err != nil {
			t.Fatalf("query match_history: %v", err)
		}
		if count == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for the async history insert")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
