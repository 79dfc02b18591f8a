package board

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"badicecream/internal/apperrors"
	"badicecream/internal/character"
	"badicecream/internal/graph"
	"badicecream/internal/grid"
)

// FruitRoundEvent is queued whenever a round advances so the match layer
// can fan out update-fruits after the inbound handler that triggered it
// returns.
type FruitRoundEvent struct {
	CurrentRound  int
	NextFruitType *string
	FruitsNumber  int
}

// Board owns the grid, the fruit-round lifecycle, and the enemy roster
// for one match. Board.mu guards fruit-count mutation, round advance,
// and snapshot reads so a tick never observes a torn view.
type Board struct {
	mu sync.Mutex

	grid  *grid.Grid
	level *Level
	rng   *rand.Rand

	host  *character.Player
	guest *character.Player

	enemies   map[string]character.Enemy
	enemyList []character.Enemy // stable iteration order for match tickers

	fruitQueue       []string
	fruitsNumber     int
	currentRound     int
	remainingRounds  int
	currentFruitType string

	pendingFruitEvents []FruitRoundEvent

	specialFruitActive  bool
	pendingSpecialEvents []SpecialFruitEvent
}

// SpecialFruitEvent mirrors a special fruit's appearance or consumption,
// drained by the match layer into an update-special-fruit event (and, on
// consumption, the update-state that follows a revived player).
type SpecialFruitEvent struct {
	ID              string
	X, Y            int
	Consumed        bool
	RevivedPlayerID string
}

// NewBoard constructs the static layout of level (rocks, pre-frozen
// cells, enemies) and stages round 1 of the fruit queue. Players are
// added later via SetUpPlayers once matchmaking resolves the two users.
func NewBoard(level *Level, rng *rand.Rand) *Board {
	b := &Board{
		grid:            grid.NewGrid(),
		level:           level,
		rng:             rng,
		enemies:         make(map[string]character.Enemy),
		fruitQueue:      append([]string(nil), level.FruitQueue...),
		remainingRounds: len(level.FruitQueue),
	}

	for _, c := range level.RockCoords {
		cell := b.grid.At(c.X, c.Y)
		if cell != nil {
			cell.SetItem(grid.NewRock(uuid.New().String()))
		}
	}
	for _, c := range level.FrozenCoords {
		cell := b.grid.At(c.X, c.Y)
		if cell != nil {
			cell.SetFrozen(true)
		}
	}

	for _, spawn := range level.Enemies {
		cell := b.grid.At(spawn.X, spawn.Y)
		if cell == nil {
			continue
		}
		id := uuid.New().String()
		var e character.Enemy
		switch spawn.Kind {
		case character.KindTroll:
			e = character.NewTroll(id, cell, b.rng)
		case character.KindCow:
			e = character.NewCow(id, cell, b)
		case character.KindLogMan:
			e = character.NewLogMan(id, cell, b)
		case character.KindSquidGreen:
			e = character.NewSquidGreen(id, cell, b)
		case character.KindSquidBlue:
			e = character.NewSquidBlue(id, cell, b)
		default:
			continue
		}
		b.enemies[id] = e
		b.enemyList = append(b.enemyList, e)
	}

	b.setUpFruits()

	return b
}

// SetUpPlayers instantiates the host and guest at their level-configured
// spawns. Board satisfies character.FruitSink so a player's pickup of a
// fruit item reports back here without character importing board.
func (b *Board) SetUpPlayers(hostID, guestID, hostColor, guestColor, hostName, guestName string) (*character.Player, *character.Player) {
	b.mu.Lock()
	defer b.mu.Unlock()

	hostCell := b.grid.At(b.level.HostSpawn.X, b.level.HostSpawn.Y)
	guestCell := b.grid.At(b.level.GuestSpawn.X, b.level.GuestSpawn.Y)

	b.host = character.NewPlayer(hostID, hostCell, hostColor, hostName, b)
	b.guest = character.NewPlayer(guestID, guestCell, guestColor, guestName, b)
	return b.host, b.guest
}

func (b *Board) Host() *character.Player  { return b.host }
func (b *Board) Guest() *character.Player { return b.guest }

func (b *Board) Enemies() []character.Enemy { return b.enemyList }

// Grid exposes the underlying grid for graph construction outside the
// board (e.g. a test harness replaying a scenario directly).
func (b *Board) Grid() *grid.Grid { return b.grid }

// Level exposes the level table the board was constructed from, so the
// match layer can resolve per-enemy tick periods.
func (b *Board) Level() *Level { return b.level }

// setUpFruits consumes the head of the fruit-type queue, places one
// fruit on each configured coordinate unless a non-killable character
// (a player) already occupies it, and advances the round counters. The
// caller must hold b.mu.
func (b *Board) setUpFruits() {
	if len(b.fruitQueue) == 0 {
		b.currentFruitType = ""
		return
	}

	kind := b.fruitQueue[0]
	b.fruitQueue = b.fruitQueue[1:]
	b.currentFruitType = kind

	placed := 0
	for _, c := range b.level.FruitCoords {
		cell := b.grid.At(c.X, c.Y)
		if cell == nil {
			continue
		}
		if occ := cell.Character(); occ != nil && !occ.Killable() {
			continue
		}
		cell.SetItem(grid.NewFruit(uuid.New().String(), kind))
		placed++
	}

	b.fruitsNumber = placed
	b.currentRound++
	b.remainingRounds--
}

// FruitPicked implements character.FruitSink. It is called from inside a
// player's own critical section, so it only touches board-owned state
// under b.mu, never the caller's character state.
func (b *Board) FruitPicked(kind string) {
	if kind == grid.KindSpecialFruit {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.specialFruitActive = false
		revived := b.reviveDeadPlayer()
		b.pendingSpecialEvents = append(b.pendingSpecialEvents, SpecialFruitEvent{Consumed: true, RevivedPlayerID: revived})
		return
	}
	if kind != grid.KindFruit {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fruitsNumber > 0 {
		b.fruitsNumber--
	}
	if b.fruitsNumber != 0 {
		return
	}
	if len(b.fruitQueue) == 0 {
		return
	}

	b.setUpFruits()

	var next *string
	if b.currentFruitType != "" {
		t := b.currentFruitType
		next = &t
	}
	b.pendingFruitEvents = append(b.pendingFruitEvents, FruitRoundEvent{
		CurrentRound:  b.currentRound,
		NextFruitType: next,
		FruitsNumber:  b.fruitsNumber,
	})
}

// DrainFruitEvents returns and clears any round-advance events staged by
// FruitPicked since the last call, for the match layer to fan out.
func (b *Board) DrainFruitEvents() []FruitRoundEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pendingFruitEvents) == 0 {
		return nil
	}
	events := b.pendingFruitEvents
	b.pendingFruitEvents = nil
	return events
}

// reviveDeadPlayer sets the first dead player of host/guest back alive
// and re-occupies its last cell if nothing has since taken it. The
// caller must hold b.mu.
func (b *Board) reviveDeadPlayer() string {
	for _, p := range []*character.Player{b.host, b.guest} {
		if p == nil || p.IsAlive() {
			continue
		}
		cell := p.Cell()
		if cell != nil && cell.Character() == nil && !cell.Blocked() {
			cell.SetCharacter(p)
		}
		p.Reborn()
		return p.ID()
	}
	return ""
}

// MaybeSpawnSpecialFruit places one special fruit on the first free,
// unblocked fruit coordinate if a player is currently dead and no special
// fruit is already on the board. Called periodically by the match layer;
// returns whether it spawned one.
func (b *Board) MaybeSpawnSpecialFruit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.specialFruitActive {
		return false
	}
	anyDead := (b.host != nil && !b.host.IsAlive()) || (b.guest != nil && !b.guest.IsAlive())
	if !anyDead {
		return false
	}

	for _, c := range b.level.FruitCoords {
		cell := b.grid.At(c.X, c.Y)
		if cell == nil || cell.Blocked() || cell.Character() != nil || cell.Item() != nil {
			continue
		}
		id := uuid.New().String()
		cell.SetItem(grid.NewSpecialFruit(id))
		b.specialFruitActive = true
		b.pendingSpecialEvents = append(b.pendingSpecialEvents, SpecialFruitEvent{ID: id, X: c.X, Y: c.Y})
		return true
	}
	return false
}

// DrainSpecialFruitEvents returns and clears any special-fruit events
// staged since the last call.
func (b *Board) DrainSpecialFruitEvents() []SpecialFruitEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pendingSpecialEvents) == 0 {
		return nil
	}
	events := b.pendingSpecialEvents
	b.pendingSpecialEvents = nil
	return events
}

// CheckWin reports the win predicate: no fruit left to collect, no more
// rounds staged, and at least one player still alive.
func (b *Board) CheckWin() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.host == nil || b.guest == nil {
		return false
	}
	return b.fruitsNumber == 0 && b.remainingRounds == 0 && (b.host.IsAlive() || b.guest.IsAlive())
}

// CheckLose reports whether both players are dead. The match additionally
// treats secondsLeft == 0 as a lose condition, outside Board's concern.
func (b *Board) CheckLose() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.host == nil || b.guest == nil {
		return false
	}
	return !b.host.IsAlive() && !b.guest.IsAlive()
}

// FruitsNumber, CurrentRound and CurrentFruitType back the match
// snapshot and the update-fruits payload.
func (b *Board) FruitsNumber() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fruitsNumber
}

func (b *Board) CurrentRound() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentRound
}

// BestDirectionToPlayers implements character.PathFinder: the first-hop
// direction of whichever alive player's shortest path to from is
// shorter, ties favoring the host. Graph traversal always allows
// stepping onto a player cell (canWalkOverPlayers = true) because an
// enemy reaching a player's cell is exactly how it kills them.
func (b *Board) BestDirectionToPlayers(from *grid.Cell, canBreakFrozen bool) (grid.Direction, bool) {
	path, ok := b.BestPathToPlayers(from, canBreakFrozen)
	if !ok || len(path) < 2 {
		return 0, false
	}
	return stepDirection(path[0], path[1])
}

// BestPathToPlayers returns the shortest path from from's cell to
// whichever alive player is closer, ties favoring the host.
func (b *Board) BestPathToPlayers(from *grid.Cell, canBreakFrozen bool) ([]string, bool) {
	g := graph.Build(b.grid, graph.Policy{CanBreakFrozen: canBreakFrozen, CanWalkOverPlayers: true})

	source := from.Coord()
	var best graph.Result
	found := false

	if b.host != nil && b.host.IsAlive() {
		res := g.ShortestPath(source, b.host.Cell().Coord())
		if !math.IsInf(res.Distance, 1) {
			best = res
			found = true
		}
	}
	if b.guest != nil && b.guest.IsAlive() {
		res := g.ShortestPath(source, b.guest.Cell().Coord())
		if !math.IsInf(res.Distance, 1) && (!found || res.Distance < best.Distance) {
			best = res
			found = true
		}
	}

	if !found {
		return nil, false
	}
	return best.Path, true
}

func stepDirection(a, b string) (grid.Direction, bool) {
	ax, ay, aok := splitCoord(a)
	bx, by, bok := splitCoord(b)
	if !aok || !bok {
		return 0, false
	}
	dx, dy := bx-ax, by-ay
	switch {
	case dx == -1 && dy == 0:
		return grid.Up, true
	case dx == 1 && dy == 0:
		return grid.Down, true
	case dx == 0 && dy == -1:
		return grid.Left, true
	case dx == 0 && dy == 1:
		return grid.Right, true
	default:
		return 0, false
	}
}

func splitCoord(s string) (x, y int, ok bool) {
	if _, err := fmt.Sscanf(s, "%d,%d", &x, &y); err != nil {
		return 0, 0, false
	}
	return x, y, true
}

// ResolvePlayer returns the host or guest matching id, used by the
// session router to apply an inbound operation under the right
// character's critical section.
func (b *Board) ResolvePlayer(id string) (*character.Player, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.host != nil && b.host.ID() == id:
		return b.host, nil
	case b.guest != nil && b.guest.ID() == id:
		return b.guest, nil
	default:
		return nil, apperrors.ErrPlayerNotFound
	}
}
