package grid

// Occupant is the narrow view the grid package needs of a character
// sitting on a cell. Player and Enemy (package character) satisfy this
// without grid importing character, avoiding a cyclic Cell<->Character
// reference.
type Occupant interface {
	ID() string
	// Killable is true for enemies and false for players. A cell holding
	// a killable occupant stays walkable for pathfinding, and contact
	// between an enemy and a player kills the player whichever of the two
	// moved (handled one level up).
	Killable() bool
	// Die marks the occupant dead. Called on a non-killable occupant
	// (a player) when a killable character (an enemy) moves onto its
	// cell.
	Die()
}

// Cell is one tile of the 16x16 board. Neighbor references are non-owning
// back-edges; the owning Grid holds every Cell by value in row-major order.
type Cell struct {
	X, Y      int
	item      Item
	character Occupant
	frozen    bool
	neighbors [4]*Cell // indexed by Direction
}

// Neighbor returns the adjacent cell in dir, or nil at a grid edge.
func (c *Cell) Neighbor(dir Direction) *Cell {
	return c.neighbors[dir]
}

// Blocked reports whether the cell's item refuses both traversal and
// freezing (only rocks do).
func (c *Cell) Blocked() bool {
	return c.item != nil && c.item.Blocked()
}

func (c *Cell) IsFrozen() bool { return c.frozen }

func (c *Cell) SetFrozen(b bool) { c.frozen = b }

func (c *Cell) Item() Item { return c.item }

func (c *Cell) SetItem(item Item) { c.item = item }

func (c *Cell) Character() Occupant { return c.character }

func (c *Cell) SetCharacter(occ Occupant) { c.character = occ }

// PickItem consumes the cell's item, if any, and clears the slot.
func (c *Cell) PickItem() (Item, bool) {
	if c.item == nil {
		return nil, false
	}
	picked := c.item
	c.item = nil
	return picked, true
}

// ExecutePower fires a freeze/unfreeze chain starting at the neighbor of c
// in dir. It returns every cell whose frozen flag changed, in walk order.
func (c *Cell) ExecutePower(dir Direction, propagate bool) []*Cell {
	start := c.Neighbor(dir)
	if start == nil || start.Blocked() {
		return nil
	}
	if start.IsFrozen() {
		return unfreezeChain(start, dir, propagate)
	}
	return freezeChain(start, dir, propagate)
}

func freezeChain(first *Cell, dir Direction, propagate bool) []*Cell {
	var changed []*Cell
	cur := first
	for cur != nil {
		if cur.IsFrozen() || cur.Blocked() || cur.character != nil {
			break
		}
		cur.SetFrozen(true)
		changed = append(changed, cur)
		if !propagate {
			break
		}
		cur = cur.Neighbor(dir)
	}
	return changed
}

func unfreezeChain(first *Cell, dir Direction, propagate bool) []*Cell {
	var changed []*Cell
	cur := first
	for cur != nil {
		if !cur.IsFrozen() {
			break
		}
		cur.SetFrozen(false)
		changed = append(changed, cur)
		if !propagate {
			break
		}
		cur = cur.Neighbor(dir)
	}
	return changed
}

// UnfreezeCellsAround thaws each of the four neighboring cells that are
// currently frozen, one step, no propagation. Used by SquidGreen's power.
func (c *Cell) UnfreezeCellsAround() []*Cell {
	var changed []*Cell
	for _, dir := range AllDirections {
		n := c.Neighbor(dir)
		if n != nil && n.IsFrozen() {
			n.SetFrozen(false)
			changed = append(changed, n)
		}
	}
	return changed
}

// FreezeCellsAround freezes each of the four neighboring cells that are
// currently unfrozen, unblocked and unoccupied, one step, no propagation.
// Used by SquidBlue's power (the freeze counterpart of UnfreezeCellsAround).
func (c *Cell) FreezeCellsAround() []*Cell {
	var changed []*Cell
	for _, dir := range AllDirections {
		n := c.Neighbor(dir)
		if n != nil && !n.IsFrozen() && !n.Blocked() && n.character == nil {
			n.SetFrozen(true)
			changed = append(changed, n)
		}
	}
	return changed
}
