// Package match owns one board, runs its countdown and enemy tickers,
// and fans out every resulting event to both connected users. Each
// Match is a single-threaded event loop over {inbound message, enemy
// tick, clock tick, cancel}: all board and character mutation for a
// match happens on the loop goroutine, so its invariants hold without a
// match-wide mutex.
package match

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"badicecream/internal/apperrors"
	"badicecream/internal/board"
	"badicecream/internal/character"
	"badicecream/internal/config"
	"badicecream/internal/events"
	"badicecream/internal/grid"
)

// Outbox is the narrow view of the session router a Match needs to
// deliver outbound events. Send returning false means the peer's channel
// was not open; the match continues and simply drops that outbound
// message for that peer.
type Outbox interface {
	Send(userID string, out events.Outbound) bool
	// MatchEnded lets the router start its stale-match cleanup countdown
	// for this match id.
	MatchEnded(matchID string)
}

// SnapshotStore persists and restores a Storage value: the match
// snapshot cache collaborator.
type SnapshotStore interface {
	Save(matchID string, storage Storage)
	Load(matchID string) (Storage, bool)
	// Finalize records a terminated match's last snapshot permanently in
	// the match-history table.
	Finalize(storage Storage, result string)
}

// inboundMsg is one inbound envelope routed onto the match's single
// command channel from the session router.
type inboundMsg struct {
	userID string
	in     events.Inbound
}

type enemyTickMsg struct {
	enemy character.Enemy
}

// Match is the runtime instance of one in-progress game.
type Match struct {
	id        string
	level     int
	mapName   string
	hostID    string
	guestID   string
	board     *board.Board
	cfg       config.MatchConfig
	log       *logrus.Entry
	outbox    Outbox
	snapshots SnapshotStore

	secondsLeft int

	mu        sync.Mutex // guards paused/running/started
	paused    bool
	running   bool
	started   bool
	startedAt time.Time

	inbound   chan inboundMsg
	enemyTick chan enemyTickMsg
	stop      chan struct{}
	done      chan struct{}
}

// New constructs a match over an already-populated board (players and
// enemies set up). The match is created but not started; Start launches
// its tickers and event loop.
func New(id string, level int, mapName, hostID, guestID string, b *board.Board, cfg config.MatchConfig, log *logrus.Logger, outbox Outbox, snapshots SnapshotStore) *Match {
	return &Match{
		id:          id,
		level:       level,
		mapName:     mapName,
		hostID:      hostID,
		guestID:     guestID,
		board:       b,
		cfg:         cfg,
		log:         log.WithField("matchId", id),
		outbox:      outbox,
		snapshots:   snapshots,
		secondsLeft: cfg.MatchTimeSeconds,
		inbound:     make(chan inboundMsg, 16),
		enemyTick:   make(chan enemyTickMsg, 16),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (m *Match) ID() string { return m.id }

// Running reports whether the match's event loop is still servicing
// ticks and inbound messages.
func (m *Match) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Start launches the clock ticker, one ticker per enemy, and the match's
// event loop goroutine. Safe to call once.
func (m *Match) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.running = true
	if m.startedAt.IsZero() {
		m.startedAt = time.Now()
	}
	m.mu.Unlock()

	go m.runClock()
	go m.runSpecialFruitTicker()
	for _, e := range m.board.Enemies() {
		go m.runEnemyTicker(e)
	}
	go m.loop()

	m.log.Info("match started")
}

// Dispatch enqueues one inbound message for processing on the event
// loop. It never blocks the caller beyond the channel's buffer.
func (m *Match) Dispatch(userID string, in events.Inbound) {
	select {
	case m.inbound <- inboundMsg{userID: userID, in: in}:
	case <-m.done:
	}
}

// Stop cancels every ticker and the event loop (an external stop, e.g.
// an operator-triggered "end game"). Idempotent.
func (m *Match) Stop(result string) {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	close(m.stop)
	<-m.done

	m.forceNotifyBoth(events.OutEnd, events.EndPayload{Result: result})
	m.persist()
	m.finalize(result)
	m.outbox.MatchEnded(m.id)
}

func (m *Match) runClock() {
	period := time.Duration(m.cfg.TimerSpeedMS) * time.Millisecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			select {
			case m.inbound <- inboundMsg{in: events.Inbound{Type: clockTickType}}:
			case <-m.stop:
				return
			}
		case <-m.stop:
			return
		}
	}
}

func (m *Match) runEnemyTicker(e character.Enemy) {
	period := time.Duration(m.board.Level().TickMSFor(e.GetKind())) * time.Millisecond
	if period <= 0 {
		period = time.Duration(m.cfg.EnemiesSpeedMS) * time.Millisecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			select {
			case m.enemyTick <- enemyTickMsg{enemy: e}:
			case <-m.stop:
				return
			}
		case <-m.stop:
			return
		}
	}
}

// specialFruitPeriod is how often the match checks whether to spawn a
// reborn-effect special fruit. Not operator-configured like the
// clock/enemy periods, since it's a fixed supplemental rhythm rather than
// a tunable match timing.
const specialFruitPeriod = 20 * time.Second

func (m *Match) runSpecialFruitTicker() {
	ticker := time.NewTicker(specialFruitPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			select {
			case m.inbound <- inboundMsg{in: events.Inbound{Type: specialFruitTickType}}:
			case <-m.stop:
				return
			}
		case <-m.stop:
			return
		}
	}
}

// clockTickType and specialFruitTickType are internal pseudo message-types
// routed through the same inbound channel as real messages so every tick
// is serialized with everything else on the event loop, never racing
// board reads.
const (
	clockTickType        = "__clock_tick"
	specialFruitTickType = "__special_fruit_tick"
)

func (m *Match) loop() {
	defer close(m.done)
	for {
		select {
		case msg := <-m.inbound:
			switch msg.in.Type {
			case clockTickType:
				m.handleClockTick()
			case specialFruitTickType:
				m.handleSpecialFruitTick()
			default:
				m.handleInbound(msg.userID, msg.in)
			}
		case tick := <-m.enemyTick:
			m.handleEnemyTick(tick.enemy)
		case <-m.stop:
			return
		}

		if m.checkTerminal() {
			return
		}
	}
}

// checkTerminal tests win/lose after whatever the loop iteration just
// did and, if terminal, emits end and stops every ticker. Runs inside
// the loop goroutine so it never double-fires.
func (m *Match) checkTerminal() bool {
	if m.board.CheckWin() {
		m.finish("win")
		return true
	}
	if m.board.CheckLose() || m.secondsLeftSnapshot() <= 0 {
		m.finish("lose")
		return true
	}
	return false
}

func (m *Match) secondsLeftSnapshot() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.secondsLeft
}

func (m *Match) finish(result string) {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
	close(m.stop)
	m.forceNotifyBoth(events.OutEnd, events.EndPayload{Result: result})
	m.persist()
	m.finalize(result)
	m.outbox.MatchEnded(m.id)
}

func (m *Match) handleClockTick() {
	m.mu.Lock()
	paused := m.paused
	if !paused && m.secondsLeft > 0 {
		m.secondsLeft--
	}
	left := m.secondsLeft
	m.mu.Unlock()

	if paused {
		return
	}

	m.notifyBoth(events.OutUpdateTime, events.UpdateTimePayload{
		MinutesLeft: left / 60,
		SecondsLeft: left % 60,
	})
}

// handleSpecialFruitTick offers the board a chance to spawn a
// reborn-effect special fruit, and flushes whatever event that staged.
func (m *Match) handleSpecialFruitTick() {
	m.mu.Lock()
	paused := m.paused
	m.mu.Unlock()
	if paused {
		return
	}
	m.board.MaybeSpawnSpecialFruit()
	m.flushSpecialFruitEvents()
}

// flushSpecialFruitEvents drains the board's staged special-fruit events
// (spawned or consumed) and fans each out, emitting the extra
// update-state that follows a revived player.
func (m *Match) flushSpecialFruitEvents() {
	for _, ev := range m.board.DrainSpecialFruitEvents() {
		m.notifyBoth(events.OutUpdateSpecialFruit, events.UpdateSpecialFruitPayload{
			ID:          ev.ID,
			Coordinates: events.Coordinates{X: ev.X, Y: ev.Y},
			Consumed:    ev.Consumed,
		})
		if ev.RevivedPlayerID != "" {
			m.notifyBoth(events.OutUpdateState, events.UpdateStatePayload{
				ID: ev.RevivedPlayerID, State: "alive",
			})
		}
	}
}

func (m *Match) handleEnemyTick(e character.Enemy) {
	m.mu.Lock()
	paused := m.paused
	m.mu.Unlock()
	if paused {
		return
	}

	host, guest := m.board.Host(), m.board.Guest()
	hostAlive, guestAlive := host.IsAlive(), guest.IsAlive()

	tick := e.CalculateMovement()

	if len(tick.FrozenCells) > 0 {
		m.notifyBoth(events.OutUpdateFrozenCells, events.UpdateFrozenCellsPayload{
			Cells: cellDeltaDTOs(tick.FrozenCells),
		})
	}

	// LogMan performs several internal steps per tick; each gets its own
	// update-enemy so the client animates the roll, rather than emitting
	// once per ticker fire.
	for _, mv := range tick.Moves {
		m.notifyBoth(events.OutUpdateEnemy, events.UpdateEnemyPayload{
			EnemyID:     e.ID(),
			Coordinates: events.Coordinates{X: mv.X, Y: mv.Y},
			Direction:   mv.Direction.String(),
			EnemyState:  e.GetState(),
		})
	}
	// An enemy kills a player by stepping onto its cell.
	if hostAlive && !host.IsAlive() {
		m.notifyBoth(events.OutUpdateState, events.UpdateStatePayload{ID: host.ID(), State: "dead"})
	}
	if guestAlive && !guest.IsAlive() {
		m.notifyBoth(events.OutUpdateState, events.UpdateStatePayload{ID: guest.ID(), State: "dead"})
	}
}

func cellDeltaDTOs(cells []*grid.Cell) []events.CellDeltaDTO {
	out := make([]events.CellDeltaDTO, 0, len(cells))
	for _, c := range cells {
		dto := c.DTO()
		out = append(out, events.CellDeltaDTO{
			X: dto.X, Y: dto.Y, Frozen: dto.Frozen,
			ItemKind: dto.ItemKind, ItemID: dto.ItemID, CharacterID: dto.CharacterID,
		})
	}
	return out
}

// notifyBoth delivers to both users if the match is still running.
// Delivery failures are silently skipped per peer.
func (m *Match) notifyBoth(tag string, payload any) {
	if !m.Running() {
		return
	}
	out := events.Outbound{Type: tag, Payload: payload}
	if !m.outbox.Send(m.hostID, out) {
		m.log.WithField("userId", m.hostID).Debug("outbound delivery skipped: socket closed")
	}
	if !m.outbox.Send(m.guestID, out) {
		m.log.WithField("userId", m.guestID).Debug("outbound delivery skipped: socket closed")
	}
}

// forceNotifyBoth sends regardless of the running flag, for the single
// terminal "end" event that must reach both peers even though running
// has already flipped false by the time it's sent.
func (m *Match) forceNotifyBoth(tag string, payload any) {
	out := events.Outbound{Type: tag, Payload: payload}
	m.outbox.Send(m.hostID, out)
	m.outbox.Send(m.guestID, out)
}

// notifyOne delivers a single-recipient reply (e.g. an error or a
// reconnect snapshot).
func (m *Match) notifyOne(userID string, tag string, payload any) {
	m.outbox.Send(userID, events.Outbound{Type: tag, Payload: payload})
}

func (m *Match) errorReply(userID string, err error) {
	m.notifyOne(userID, events.OutError, events.ErrorPayload{Error: errMessage(err)})
}

func errMessage(err error) string {
	switch err {
	case apperrors.ErrNullCell, apperrors.ErrBlockedCell, apperrors.ErrInvalidMove, apperrors.ErrInvalidRotation:
		return "Invalid move"
	case apperrors.ErrInvalidMessageType:
		return "Bad Request"
	default:
		return "Invalid move"
	}
}
