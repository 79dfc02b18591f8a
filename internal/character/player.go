package character

import "badicecream/internal/grid"

// Player status values.
const (
	StatusWaiting = "WAITING"
	StatusPlaying = "PLAYING"
	StatusReady   = "READY"
)

// Player is a human-controlled character. A player dies on contact with an
// enemy, whether it walks into the enemy or the enemy walks into it;
// players never kill enemies.
type Player struct {
	base
	status      string
	displayName string
	fruitSink   FruitSink
}

// NewPlayer constructs a live player standing on spawn, wired to sink for
// fruit-count reporting.
func NewPlayer(id string, spawn *grid.Cell, color, displayName string, sink FruitSink) *Player {
	p := &Player{
		base: base{
			id:          id,
			cell:        spawn,
			orientation: grid.Down,
			alive:       true,
			color:       color,
		},
		status:      StatusWaiting,
		displayName: displayName,
		fruitSink:   sink,
	}
	spawn.SetCharacter(p)
	return p
}

func (p *Player) Killable() bool { return false }

func (p *Player) Status() string          { return p.status }
func (p *Player) SetStatus(status string) { p.status = status }
func (p *Player) DisplayName() string     { return p.displayName }
func (p *Player) Color() string           { return p.color }
func (p *Player) SetColor(color string)   { p.color = color }

// moveTo performs the compound validate -> mutate -> pick sequence under
// the player's own critical section. If the target cell holds an enemy,
// the player dies in place and the enemy's cell is left untouched
// (players can never kill enemies).
func (p *Player) moveTo(dir grid.Direction) (MoveResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.orientation = dir
	target := p.cell.Neighbor(dir)
	if err := validateMove(target, false); err != nil {
		return MoveResult{}, err
	}

	if other := target.Character(); other != nil {
		// other.Killable() is guaranteed true here: validateMove only
		// lets a non-killable mover through onto nil or a killable
		// occupant.
		p.cell.SetCharacter(nil)
		p.alive = false
		return MoveResult{
			CharacterID:  p.id,
			X:            p.cell.X,
			Y:            p.cell.Y,
			Direction:    dir,
			Alive:        false,
			KilledPlayer: true,
		}, nil
	}

	p.cell.SetCharacter(nil)
	target.SetCharacter(p)
	p.cell = target

	result := MoveResult{
		CharacterID: p.id,
		X:           target.X,
		Y:           target.Y,
		Direction:   dir,
		Alive:       true,
	}

	if item, ok := target.PickItem(); ok {
		id := item.ID()
		result.ItemConsumed = &id
		result.ItemKind = item.Kind()
		if p.fruitSink != nil && (item.Kind() == grid.KindFruit || item.Kind() == grid.KindSpecialFruit) {
			p.fruitSink.FruitPicked(item.Kind())
		}
	}

	return result, nil
}

func (p *Player) MoveUp() (MoveResult, error)    { return p.moveTo(grid.Up) }
func (p *Player) MoveDown() (MoveResult, error)  { return p.moveTo(grid.Down) }
func (p *Player) MoveLeft() (MoveResult, error)  { return p.moveTo(grid.Left) }
func (p *Player) MoveRight() (MoveResult, error) { return p.moveTo(grid.Right) }

// ChangeOrientation is a pure orientation change: no cell mutation.
func (p *Player) ChangeOrientation(dir grid.Direction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orientation = dir
}

// ExecPower fires the freeze/unfreeze chain from the player's cell in its
// current orientation, propagating along the line.
func (p *Player) ExecPower() []*grid.Cell {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cell.ExecutePower(p.orientation, true)
}

// PlayerDTO is the wire representation of a player used by update-state
// and match snapshots.
type PlayerDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Direction   string `json:"direction"`
	Alive       bool   `json:"alive"`
	Status      string `json:"status"`
}

func (p *Player) DTO() PlayerDTO {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PlayerDTO{
		ID:          p.id,
		DisplayName: p.displayName,
		Color:       p.color,
		X:           p.cell.X,
		Y:           p.cell.Y,
		Direction:   p.orientation.String(),
		Alive:       p.alive,
		Status:      p.status,
	}
}
