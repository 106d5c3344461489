package engine

import (
	"encoding/json"
	"fmt"
	"math"
)

// Pos is an integer grid cell coordinate.
type Pos struct {
	X int
	Y int
}

// MarshalJSON encodes a position as a two-element array, e.g. [3, 7].
func (p Pos) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a two-element array into a position.
func (p *Pos) UnmarshalJSON(data []byte) error {
	var arr [2]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("position must be a [x, y] array: %w", err)
	}
	p.X = arr[0]
	p.Y = arr[1]
	return nil
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Grid is an immutable width x height rectangle of cells.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewGrid validates the dimensions and returns a grid.
func NewGrid(width, height int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("grid dimensions must be positive: %dx%d", width, height)
	}
	return Grid{Width: width, Height: height}, nil
}

// InBounds reports whether p lies inside the grid.
func (g Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Distance returns the Euclidean distance between two cell positions.
func (g Grid) Distance(a, b Pos) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Hypot(dx, dy)
}
