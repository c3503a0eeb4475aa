package calc

import (
	"fmt"
	"math"
	"strings"
)

// Standard opening sizes, in m².
const (
	StandardDoorArea   = 1.95
	StandardWindowArea = 1.11
)

// Shape selects how a room's perimeter is derived from its walls.
type Shape int

const (
	// ShapeRectangle uses two walls: perimeter = 2·(w1 + w2).
	ShapeRectangle Shape = iota
	// ShapeSquare uses one wall: perimeter = 4·w1.
	ShapeSquare
	// ShapeWalls sums every wall given.
	ShapeWalls
)

func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeSquare:
		return "square"
	case ShapeWalls:
		return "walls"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape resolves a shape name.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "":
		return ShapeRectangle, nil
	case "square":
		return ShapeSquare, nil
	case "walls", "custom":
		return ShapeWalls, nil
	}
	return 0, fmt.Errorf("unknown room shape %q", s)
}

// Room describes the walls to be covered.
type Room struct {
	Shape  Shape
	Walls  []float64 // m
	Height float64   // m

	Doors   float64
	Windows float64

	DoorArea   float64 // m² each; zero means StandardDoorArea
	WindowArea float64 // m² each; zero means StandardWindowArea
}

// WallResult breaks down the paintable wall area.
type WallResult struct {
	Perimeter float64 // m
	GrossArea float64 // m²
	Openings  float64 // m²
	NetArea   float64 // m²
}

// Compute returns perimeter × height minus doors and windows.
func (r Room) Compute() (WallResult, error) {
	nan := WallResult{Perimeter: math.NaN(), GrossArea: math.NaN(), Openings: math.NaN(), NetArea: math.NaN()}

	perimeter, err := r.perimeter()
	if err != nil {
		return nan, err
	}
	if err := requireNonNegative("height", r.Height); err != nil {
		return nan, err
	}
	if err := requireNonNegative("doors", r.Doors); err != nil {
		return nan, err
	}
	if err := requireNonNegative("windows", r.Windows); err != nil {
		return nan, err
	}

	doorArea := orDefault(r.DoorArea, StandardDoorArea)
	windowArea := orDefault(r.WindowArea, StandardWindowArea)
	doors := zeroIfEmpty(r.Doors)
	windows := zeroIfEmpty(r.Windows)

	res := WallResult{Perimeter: perimeter}
	res.GrossArea = perimeter * r.Height
	res.Openings = doors*doorArea + windows*windowArea
	res.NetArea = res.GrossArea - res.Openings
	if empty(res.NetArea) {
		res.GrossArea, res.NetArea = math.NaN(), math.NaN()
		return res, nil
	}
	if res.NetArea < 0 {
		return nan, invalid("openings", "doors and windows (%v m²) exceed the wall area (%v m²)", res.Openings, res.GrossArea)
	}
	return res, nil
}

func (r Room) perimeter() (float64, error) {
	need := map[Shape]int{ShapeRectangle: 2, ShapeSquare: 1}
	if n, ok := need[r.Shape]; ok && len(r.Walls) < n {
		return math.NaN(), invalid("walls", "%s room needs %d wall lengths, got %d", r.Shape, n, len(r.Walls))
	}
	for i, w := range r.Walls {
		if err := requireNonNegative(fmt.Sprintf("wall%d", i+1), w); err != nil {
			return math.NaN(), err
		}
	}

	switch r.Shape {
	case ShapeRectangle:
		return 2 * (r.Walls[0] + r.Walls[1]), nil
	case ShapeSquare:
		return 4 * r.Walls[0], nil
	case ShapeWalls:
		if len(r.Walls) == 0 {
			return math.NaN(), invalid("walls", "at least one wall length is required")
		}
		sum := 0.0
		for _, w := range r.Walls {
			sum += w
		}
		return sum, nil
	}
	return math.NaN(), invalid("shape", "unknown room shape %s", r.Shape)
}

func zeroIfEmpty(v float64) float64 {
	if empty(v) {
		return 0
	}
	return v
}
