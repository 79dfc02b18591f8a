package grid

import "fmt"

// CellDTO is the wire representation of a cell used by update-frozen-cells,
// update-all snapshots, and match persistence.
type CellDTO struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Frozen    bool   `json:"frozen"`
	ItemKind  string `json:"itemKind,omitempty"`
	ItemID    string `json:"itemId,omitempty"`
	CharacterID string `json:"characterId,omitempty"`
}

// DTO renders the cell's current state for outbound serialization.
func (c *Cell) DTO() CellDTO {
	dto := CellDTO{X: c.X, Y: c.Y, Frozen: c.frozen}
	if c.item != nil {
		dto.ItemKind = c.item.Kind()
		dto.ItemID = c.item.ID()
	}
	if c.character != nil {
		dto.CharacterID = c.character.ID()
	}
	return dto
}

// Coord renders the cell's address as the "x,y" string used by the graph
// package to key nodes.
func (c *Cell) Coord() string {
	return Coord(c.X, c.Y)
}

func Coord(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}
