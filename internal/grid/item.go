package grid

// Item kinds, matching the wire-visible CellDTO.ItemKind values.
const (
	KindFruit        = "fruit"
	KindSpecialFruit = "special_fruit"
	KindRock         = "rock"
)

// Item is a board occupant placed on a cell: a fruit, a special fruit, or
// a rock. Rocks block both traversal and freezing; fruits and special
// fruits never block.
type Item interface {
	ID() string
	Kind() string
	Blocked() bool
}

// Fruit is consumed on pickup and decrements the board's live fruit count.
type Fruit struct {
	id       string
	fruitKind string
}

func NewFruit(id, fruitKind string) *Fruit { return &Fruit{id: id, fruitKind: fruitKind} }

func (f *Fruit) ID() string      { return f.id }
func (f *Fruit) Kind() string    { return KindFruit }
func (f *Fruit) Blocked() bool   { return false }
func (f *Fruit) FruitType() string { return f.fruitKind }

// SpecialFruit reborns dead players and is consumed like a regular fruit
// but is not counted against the round's fruit total by the board.
type SpecialFruit struct {
	id string
}

func NewSpecialFruit(id string) *SpecialFruit { return &SpecialFruit{id: id} }

func (s *SpecialFruit) ID() string    { return s.id }
func (s *SpecialFruit) Kind() string  { return KindSpecialFruit }
func (s *SpecialFruit) Blocked() bool { return false }

// Rock permanently blocks the cell it sits on: no character may enter it,
// and it can never be frozen.
type Rock struct {
	id string
}

func NewRock(id string) *Rock { return &Rock{id: id} }

func (r *Rock) ID() string    { return r.id }
func (r *Rock) Kind() string  { return KindRock }
func (r *Rock) Blocked() bool { return true }
