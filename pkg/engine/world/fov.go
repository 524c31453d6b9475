package world

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// FOVRadius is the default field of view radius (Chebyshev distance).
const FOVRadius = 4

// CalculateFOV returns the cells visible from (cx, cy) within radius, sorted.
// Uses a Chebyshev square with Bresenham line-of-sight. Walls block sight but
// are themselves visible, so room outlines show up.
func CalculateFOV(grid *Grid, cx, cy, radius int) []Point {
	if grid == nil || !grid.InBounds(cx, cy) {
		return nil
	}

	visible := mapset.New[Point]()
	visible.Put(Pt(cx, cy))

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if chebyshevDist(dx, dy) > radius {
				continue
			}
			x, y := cx+dx, cy+dy
			if !grid.InBounds(x, y) {
				continue
			}
			if hasLineOfSight(grid, cx, cy, x, y) {
				visible.Put(Pt(x, y))
			}
		}
	}

	result := make([]Point, 0, visible.Size())
	visible.Each(func(p Point) {
		result = append(result, p)
	})
	sort.Slice(result, func(i, j int) bool { return LessPoint(result[i], result[j]) })
	return result
}

// chebyshevDist returns Chebyshev (chessboard) distance for (dx, dy).
func chebyshevDist(dx, dy int) int {
	return max(abs(dx), abs(dy))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// hasLineOfSight returns true if nothing opaque lies strictly between
// (x0,y0) and (x1,y1). Uses Bresenham's line algorithm.
func hasLineOfSight(grid *Grid, x0, y0, x1, y1 int) bool {
	dx := x1 - x0
	dy := y1 - y0
	if dx == 0 && dy == 0 {
		return true
	}

	absDx, absDy := abs(dx), abs(dy)

	var stepX, stepY int
	if dx > 0 {
		stepX = 1
	} else if dx < 0 {
		stepX = -1
	}
	if dy > 0 {
		stepY = 1
	} else if dy < 0 {
		stepY = -1
	}

	x, y := x0, y0

	if absDx >= absDy {
		err := 2*absDy - absDx
		for x != x1 {
			x += stepX
			if err > 0 {
				y += stepY
				err -= 2 * absDx
			}
			err += 2 * absDy
			if x == x1 && y == y1 {
				return true
			}
			if !grid.Passable(x, y) {
				return false
			}
		}
	} else {
		err := 2*absDx - absDy
		for y != y1 {
			y += stepY
			if err > 0 {
				x += stepX
				err -= 2 * absDy
			}
			err += 2 * absDx
			if x == x1 && y == y1 {
				return true
			}
			if !grid.Passable(x, y) {
				return false
			}
		}
	}

	return true
}
