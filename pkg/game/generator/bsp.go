package generator

import (
	"context"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/game/feature"
)

// BSP generates maps using Binary Space Partitioning: the inner area is split
// recursively, every leaf gets one room and sibling subtrees are joined with
// straight corridors.
type BSP struct {
	base
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *feature.Room
}

func (n *bspNode) leaf() bool {
	return n.left == nil && n.right == nil
}

// NewBSP creates a BSP generator for a width x height map
func NewBSP(width, height int, r *rng.RNG, opts Options) (*BSP, error) {
	b, err := newBase(KindBSP, width, height, r, opts)
	if err != nil {
		return nil, err
	}
	return &BSP{base: b}, nil
}

// Generate builds whole trees until one comes out with every room linked.
// Each tree counts as one iteration.
func (g *BSP) Generate(ctx context.Context) (*Level, error) {
	g.reset()

	var stop error
	for {
		limit, err := g.poll(ctx)
		if err != nil {
			return nil, err
		}
		if limit != nil {
			stop = limit
			break
		}

		g.clear()
		root := &bspNode{x: 1, y: 1, width: g.width - 2, height: g.height - 2}
		g.split(root)
		g.createRooms(root)
		if g.connect(root) && len(regions(g.grid)) == 1 {
			break
		}
	}

	g.addDoors()
	return g.finish(stop), nil
}

// split recursively splits a node while both halves can hold the smallest
// room plus its margin
func (g *BSP) split(node *bspNode) {
	minW := g.opts.RoomWidth.Min + 2
	minH := g.opts.RoomHeight.Min + 2
	canW := node.width >= minW*2
	canH := node.height >= minH*2

	var horizontal bool
	switch {
	case canW && canH:
		switch {
		case node.width > node.height:
			horizontal = false
		case node.height > node.width:
			horizontal = true
		default:
			horizontal = g.rng.GetUniform() < 0.5
		}
	case canW:
		horizontal = false
	case canH:
		horizontal = true
	default:
		return
	}

	if horizontal {
		at := g.rng.GetUniformInt(minH, node.height-minH)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: at}
		node.right = &bspNode{x: node.x, y: node.y + at, width: node.width, height: node.height - at}
	} else {
		at := g.rng.GetUniformInt(minW, node.width-minW)
		node.left = &bspNode{x: node.x, y: node.y, width: at, height: node.height}
		node.right = &bspNode{x: node.x + at, y: node.y, width: node.width - at, height: node.height}
	}

	g.split(node.left)
	g.split(node.right)
}

// createRooms creates rooms in leaf nodes. A room keeps one cell of margin to
// its leaf edge so neighbouring rooms never share a wall; a leaf too thin for
// that is filled whole.
func (g *BSP) createRooms(node *bspNode) {
	if !node.leaf() {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	margin := 1
	if node.width < 3 || node.height < 3 {
		margin = 0
	}
	maxW, maxH := node.width-2*margin, node.height-2*margin
	w := max(min(g.opts.RoomWidth.Draw(g.rng), maxW), 1)
	h := max(min(g.opts.RoomHeight.Draw(g.rng), maxH), 1)

	x := node.x + margin + g.rng.GetUniformInt(0, maxW-w)
	y := node.y + margin + g.rng.GetUniformInt(0, maxH-h)
	node.room = feature.NewRoom(x, y, x+w-1, y+h-1)
	node.room.Dig(g.carve)
	g.rooms = append(g.rooms, node.room)
}

// connect joins the two subtrees of every inner node, deepest first. One end
// is a random room of the right subtree, the other the closest room of the
// left one.
func (g *BSP) connect(node *bspNode) bool {
	if node.leaf() {
		return true
	}
	if !g.connect(node.left) || !g.connect(node.right) {
		return false
	}
	room2, ok := rng.Item(g.rng, collectRooms(node.right))
	if !ok {
		return false
	}
	room1 := closestRoom(collectRooms(node.left), room2)
	if room1 == nil {
		return false
	}
	return g.connectRooms(room1, room2)
}

// collectRooms collects all rooms from the BSP tree
func collectRooms(node *bspNode) []*feature.Room {
	if node.leaf() {
		if node.room == nil {
			return nil
		}
		return []*feature.Room{node.room}
	}
	return append(collectRooms(node.left), collectRooms(node.right)...)
}
