package world

// Direction represents a cardinal direction
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Vector returns Delta as a Point
func (d Direction) Vector() Point {
	dx, dy := d.Delta()
	return Pt(dx, dy)
}

// DirectionOf returns the cardinal direction matching a unit vector.
func DirectionOf(dx, dy int) (Direction, bool) {
	for _, d := range AllDirections() {
		ddx, ddy := d.Delta()
		if ddx == dx && ddy == dy {
			return d, true
		}
	}
	return 0, false
}

// Topology is the neighbour-adjacency model of a grid: 4, 6 (hex) or 8 connected.
type Topology int

// Supported topologies
const (
	Topology4 Topology = 4
	Topology6 Topology = 6
	Topology8 Topology = 8
)

var (
	dirs4 = []Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}
	dirs6 = []Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -2, Y: 0}}
	dirs8 = []Point{
		{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
		{X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
	}
)

// IsValid reports whether t is one of the supported topologies
func (t Topology) IsValid() bool {
	return t == Topology4 || t == Topology6 || t == Topology8
}

// Dirs returns the neighbour offsets for the topology, clockwise from north.
// Unknown topologies fall back to 8-connected.
func (t Topology) Dirs() []Point {
	var src []Point
	switch t {
	case Topology4:
		src = dirs4
	case Topology6:
		src = dirs6
	default:
		src = dirs8
	}
	out := make([]Point, len(src))
	copy(out, src)
	return out
}
