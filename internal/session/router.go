package session

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"badicecream/internal/apperrors"
	"badicecream/internal/board"
	"badicecream/internal/config"
	"badicecream/internal/events"
	"badicecream/internal/match"
)

// conn is one connected user's outbound channel plus its per-user session
// lease deadline.
type conn struct {
	out       chan events.Outbound
	expiresAt time.Time
}

// Router is the session router: it maintains {userId -> outbound
// channel}, resolves inbound messages to the right Match, and restores a
// match from its snapshot store on first miss.
type Router struct {
	mu sync.Mutex

	conns     map[string]*conn
	userMatch map[string]string
	matches   map[string]*match.Match
	finished  map[string]time.Time   // matchId -> when it finished, for the cleanup sweep
	queues    map[int]*waitingPlayer // level -> the one user waiting for an opponent

	cfg       config.Config
	log       *logrus.Logger
	snapshots match.SnapshotStore
	rng       *rand.Rand

	stop chan struct{}
}

// New constructs a Router bound to its persistence and logging
// collaborators. Call Run to start its cleanup ticker.
func New(cfg config.Config, log *logrus.Logger, snapshots match.SnapshotStore, rng *rand.Rand) *Router {
	return &Router{
		conns:     make(map[string]*conn),
		userMatch: make(map[string]string),
		matches:   make(map[string]*match.Match),
		finished:  make(map[string]time.Time),
		queues:    make(map[int]*waitingPlayer),
		cfg:       cfg,
		log:       log,
		snapshots: snapshots,
		rng:       rng,
		stop:      make(chan struct{}),
	}
}

// Send implements match.Outbox: a best-effort, non-blocking delivery to
// userID's outbound channel. Returns false if the user has no open
// channel or its buffer is full; the caller drops the outbound message
// for that peer only and continues.
func (r *Router) Send(userID string, out events.Outbound) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[userID]
	if !ok {
		return false
	}
	select {
	case c.out <- out:
		return true
	default:
		return false
	}
}

// Connect registers userID's outbound channel and returns it. A user
// already associated with a match is treated as reconnecting: on
// reconnect to a still-running match, the current snapshot is pushed
// immediately so the client can re-render. On reconnect to a match that
// already finished, a timeout is sent instead and the stale association
// is dropped.
func (r *Router) Connect(userID string) chan events.Outbound {
	r.mu.Lock()
	c := &conn{out: make(chan events.Outbound, 64), expiresAt: r.leaseDeadline()}
	r.conns[userID] = c
	matchID, inMatch := r.userMatch[userID]
	m, live := r.matches[matchID]
	r.mu.Unlock()

	if !inMatch {
		return c.out
	}
	if live {
		r.log.WithField("userId", userID).Info("user reconnected to running match")
		r.Send(userID, events.Outbound{Type: events.OutUpdateAll, Payload: m.SnapshotForReconnect()})
		return c.out
	}

	r.log.WithField("userId", userID).Info("user reconnected to a finished match")
	r.Send(userID, events.Outbound{Type: events.OutTimeout, Payload: events.ErrorPayload{Error: "match already ended"}})
	r.mu.Lock()
	delete(r.userMatch, userID)
	r.mu.Unlock()
	return c.out
}

// Disconnect removes userID's outbound channel. The match itself is left
// running; a disconnected player simply stops receiving events until it
// reconnects. Sends to a closed channel are never attempted again once
// Disconnect has run, since Send checks r.conns first.
func (r *Router) Disconnect(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conns[userID]; ok {
		close(c.out)
		delete(r.conns, userID)
	}
}

func (r *Router) leaseDeadline() time.Time {
	return time.Now().Add(time.Duration(r.cfg.Match.SessionLeaseMinutes) * time.Minute)
}

// extendLease bumps userID's session lease by SessionLeaseMinutes,
// called on every inbound message so an active player never times out
// mid-match.
func (r *Router) extendLease(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conns[userID]; ok {
		c.expiresAt = r.leaseDeadline()
	}
}

// Dispatch parses raw as an Inbound envelope and routes it to userID's
// match, restoring from the snapshot store on first lookup miss.
// Unrecoverable resolution failures reply with error and close the
// offending channel.
func (r *Router) Dispatch(userID string, raw []byte) {
	r.extendLease(userID)

	var in events.Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		r.Send(userID, events.Outbound{Type: events.OutError, Payload: events.ErrorPayload{Error: "Bad Request"}})
		return
	}

	m, err := r.resolveMatch(userID)
	if err != nil {
		r.Send(userID, events.Outbound{Type: events.OutError, Payload: events.ErrorPayload{Error: err.Error()}})
		r.Disconnect(userID)
		return
	}

	m.Dispatch(userID, in)
}

func (r *Router) resolveMatch(userID string) (*match.Match, error) {
	r.mu.Lock()
	matchID, ok := r.userMatch[userID]
	if !ok {
		r.mu.Unlock()
		return nil, apperrors.ErrMatchNotFound
	}
	if m, live := r.matches[matchID]; live {
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()

	return r.restore(matchID)
}

// restore attempts to rebuild a Match from its last persisted snapshot
// and resume its tickers. Absence of a snapshot means the match is
// genuinely gone.
func (r *Router) restore(matchID string) (*match.Match, error) {
	if r.snapshots == nil {
		return nil, apperrors.ErrMatchNotFound
	}
	storage, ok := r.snapshots.Load(matchID)
	if !ok {
		return nil, apperrors.ErrMatchNotFound
	}
	lvl, ok := board.Levels[storage.Level]
	if !ok {
		return nil, apperrors.ErrMatchNotFound
	}

	m := match.Restore(storage, lvl, r.rng, r.cfg.Match, r.log, r, r.snapshots)
	r.registerMatch(storage.HostID, storage.GuestID, m)
	m.Start()
	return m, nil
}

// registerMatch indexes m under both its peers' userIDs, called once a
// match is created by matchmaking or reconstructed by restore.
func (r *Router) registerMatch(hostID, guestID string, m *match.Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[m.ID()] = m
	r.userMatch[hostID] = m.ID()
	r.userMatch[guestID] = m.ID()
}

// MatchEnded implements match.Outbox. It records that matchID ended, so
// the cleanup sweep can drop it once MatchTimeOutSeconds has elapsed.
func (r *Router) MatchEnded(matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished[matchID] = time.Now()
}

// Run starts the periodic stale-match cleanup sweep. Blocks until Stop
// is called.
func (r *Router) Run() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stop:
			return
		}
	}
}

func (r *Router) Stop() { close(r.stop) }

func (r *Router) cleanup() {
	timeout := time.Duration(r.cfg.Match.MatchTimeOutSeconds) * time.Second
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	for matchID, finishedAt := range r.finished {
		if now.Sub(finishedAt) < timeout {
			continue
		}
		delete(r.matches, matchID)
		delete(r.finished, matchID)
		for uid, mid := range r.userMatch {
			if mid == matchID {
				delete(r.userMatch, uid)
			}
		}
		r.log.WithField("matchId", matchID).Info("dropped stale match from router")
	}
}
