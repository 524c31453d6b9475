package world

import (
	"testing"
)

func containsPoint(ps []Point, p Point) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

func TestCalculateFOV_OpenRoom(t *testing.T) {
	g := NewGrid(9, 9)
	for x := 1; x < 8; x++ {
		for y := 1; y < 8; y++ {
			g.Set(x, y, Floor)
		}
	}
	visible := CalculateFOV(g, 4, 4, 2)
	// 5x5 square around the center, all open
	if len(visible) != 25 {
		t.Errorf("visible cells = %d, want 25", len(visible))
	}
	if !containsPoint(visible, Pt(4, 4)) {
		t.Error("center must be visible")
	}
}

func TestCalculateFOV_WallBlocksButIsVisible(t *testing.T) {
	g := NewGrid(7, 3)
	for x := 1; x < 6; x++ {
		g.Set(x, 1, Floor)
	}
	g.Set(3, 1, Wall)

	visible := CalculateFOV(g, 1, 1, FOVRadius)
	if !containsPoint(visible, Pt(3, 1)) {
		t.Error("blocking wall should itself be visible")
	}
	if containsPoint(visible, Pt(4, 1)) {
		t.Error("cell behind wall should not be visible")
	}
}

func TestCalculateFOV_OutOfBounds(t *testing.T) {
	if CalculateFOV(NewGrid(3, 3), 5, 5, 2) != nil {
		t.Error("FOV from outside the grid should be nil")
	}
	if CalculateFOV(nil, 0, 0, 2) != nil {
		t.Error("FOV on nil grid should be nil")
	}
}
