package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"badicecream/internal/config"
	"badicecream/internal/events"
	"badicecream/internal/match"
)

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func testRouter(t *testing.T) *Router {
	t.Helper()
	log := logrus.New()
	log.SetOutput(discardWriter{})
	cfg := config.Default()
	r := New(cfg, log, nil, rand.New(rand.NewSource(1)))
	t.Cleanup(func() {
		r.mu.Lock()
		matches := make([]*match.Match, 0, len(r.matches))
		for _, m := range r.matches {
			matches = append(matches, m)
		}
		r.mu.Unlock()
		for _, m := range matches {
			m.Stop("lose")
		}
	})
	return r
}

func TestJoinQueuesThenPairsSecondUserOnSameLevel(t *testing.T) {
	r := testRouter(t)

	if id := r.Join("alice", 1, "red", "Alice"); id != "" {
		t.Fatalf("expected the first joiner to wait, got match id %q", id)
	}

	id := r.Join("bob", 1, "blue", "Bob")
	if id == "" {
		t.Fatal("expected the second joiner to pair and return a match id")
	}

	r.mu.Lock()
	_, ok := r.matches[id]
	aliceMatch := r.userMatch["alice"]
	bobMatch := r.userMatch["bob"]
	r.mu.Unlock()

	if !ok {
		t.Fatal("expected the created match to be registered")
	}
	if aliceMatch != id || bobMatch != id {
		t.Fatalf("expected both users mapped to match %q, got alice=%q bob=%q", id, aliceMatch, bobMatch)
	}
}

func TestJoinKeepsSeparateQueuesPerLevel(t *testing.T) {
	r := testRouter(t)

	if id := r.Join("alice", 1, "red", "Alice"); id != "" {
		t.Fatalf("expected level-1 joiner to wait, got %q", id)
	}
	if id := r.Join("carol", 2, "green", "Carol"); id != "" {
		t.Fatalf("expected level-2 joiner to wait rather than pair with level-1's queue, got %q", id)
	}
}

func TestConnectPushesSnapshotOnReconnectToRunningMatch(t *testing.T) {
	r := testRouter(t)
	r.Join("alice", 1, "red", "Alice")
	id := r.Join("bob", 1, "blue", "Bob")
	if id == "" {
		t.Fatal("expected a match to be created")
	}

	ch := r.Connect("alice")
	select {
	case out := <-ch:
		if out.Type != events.OutUpdateAll {
			t.Fatalf("expected an update-all snapshot on reconnect, got %q", out.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the reconnect snapshot")
	}
}

func TestConnectFreshUserGetsNoImmediateMessage(t *testing.T) {
	r := testRouter(t)
	ch := r.Connect("alice")

	select {
	case out := <-ch:
		t.Fatalf("expected no message for a user not yet in any match, got %+v", out)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDisconnectClosesChannel(t *testing.T) {
	r := testRouter(t)
	ch := r.Connect("alice")
	r.Disconnect("alice")

	if _, ok := <-ch; ok {
		t.Fatal("expected the outbound channel to be closed after disconnect")
	}
}

func TestCleanupDropsMatchesPastTimeout(t *testing.T) {
	r := testRouter(t)
	r.cfg.Match.MatchTimeOutSeconds = 1

	r.Join("alice", 1, "red", "Alice")
	id := r.Join("bob", 1, "blue", "Bob")

	r.MatchEnded(id)
	r.mu.Lock()
	r.finished[id] = time.Now().Add(-time.Hour)
	m := r.matches[id]
	r.mu.Unlock()
	defer m.Stop("lose")

	r.cleanup()

	r.mu.Lock()
	_, stillThere := r.matches[id]
	_, aliceStillMapped := r.userMatch["alice"]
	r.mu.Unlock()

	if stillThere {
		t.Fatal("expected the stale match to be dropped")
	}
	if aliceStillMapped {
		t.Fatal("expected alice's user-to-match mapping to be cleared too")
	}
}
