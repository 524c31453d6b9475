// Package graph is the connectivity graph over the features of a level.
// Nodes are feature names, edges join features that touch and remember
// where they touch.
package graph

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"deepdelve/pkg/engine/world"
)

// Edge is an undirected link. A sorts before B.
type Edge struct {
	A  string      `json:"a"`
	B  string      `json:"b"`
	At world.Point `json:"at"`
}

type edgeKey struct {
	a, b string
}

func keyOf(a, b string) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Graph is an undirected graph keyed by node name
type Graph struct {
	adj   map[string]*mapset.Set[string]
	edges map[edgeKey]world.Point
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		adj:   make(map[string]*mapset.Set[string]),
		edges: make(map[edgeKey]world.Point),
	}
}

// AddNode adds a node, returning false if it already existed
func (g *Graph) AddNode(name string) bool {
	if _, ok := g.adj[name]; ok {
		return false
	}
	set := mapset.New[string]()
	g.adj[name] = &set
	return true
}

// HasNode reports whether name is a node
func (g *Graph) HasNode(name string) bool {
	_, ok := g.adj[name]
	return ok
}

// AddEdge links a and b, adding missing nodes. The first coordinate recorded
// for a pair is kept. Self loops are ignored.
func (g *Graph) AddEdge(a, b string, at world.Point) bool {
	if a == b {
		return false
	}
	g.AddNode(a)
	g.AddNode(b)
	k := keyOf(a, b)
	if _, ok := g.edges[k]; ok {
		return false
	}
	g.edges[k] = at
	g.adj[a].Put(b)
	g.adj[b].Put(a)
	return true
}

// HasEdge reports whether a and b are linked
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.edges[keyOf(a, b)]
	return ok
}

// EdgeAt returns where a and b touch
func (g *Graph) EdgeAt(a, b string) (world.Point, bool) {
	p, ok := g.edges[keyOf(a, b)]
	return p, ok
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.adj)
}

// Nodes returns every node name, sorted
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.adj))
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// Neighbors returns the nodes linked to name, sorted
func (g *Graph) Neighbors(name string) []string {
	set, ok := g.adj[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, set.Size())
	set.Each(func(n string) {
		out = append(out, n)
	})
	sort.Strings(out)
	return out
}

// Degree returns the number of neighbours of name
func (g *Graph) Degree(name string) int {
	set, ok := g.adj[name]
	if !ok {
		return 0
	}
	return set.Size()
}

// Edges returns every edge sorted by A then B
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for k, at := range g.edges {
		out = append(out, Edge{A: k.a, B: k.b, At: at})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Components returns the connected components. Each component is sorted and
// components are ordered by their first node.
func (g *Graph) Components() [][]string {
	seen := mapset.New[string]()
	var comps [][]string
	for _, start := range g.Nodes() {
		if seen.Has(start) {
			continue
		}
		var comp []string
		g.walk(start, func(n, _ string) {
			seen.Put(n)
			comp = append(comp, n)
		})
		sort.Strings(comp)
		comps = append(comps, comp)
	}
	return comps
}

// Connected reports whether every node can reach every other node. An empty
// graph is connected.
func (g *Graph) Connected() bool {
	return len(g.Components()) <= 1
}

// Leaves returns the terminal nodes, those with at most one neighbour
func (g *Graph) Leaves() []string {
	var out []string
	for _, n := range g.Nodes() {
		if g.Degree(n) <= 1 {
			out = append(out, n)
		}
	}
	return out
}

// Path returns the shortest chain of nodes from a to b, both included. nil
// when either node is missing or b cannot be reached.
func (g *Graph) Path(a, b string) []string {
	if !g.HasNode(a) || !g.HasNode(b) {
		return nil
	}
	prev := map[string]string{}
	found := false
	g.walk(a, func(n, from string) {
		if n != a {
			prev[n] = from
		}
		if n == b {
			found = true
		}
	})
	if !found {
		return nil
	}
	path := []string{b}
	for n := b; n != a; {
		n = prev[n]
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// walk visits every node reachable from start breadth first, in sorted
// neighbour order, reporting the node it was reached from.
func (g *Graph) walk(start string, visit func(n, from string)) {
	visited := mapset.New[string]()
	visited.Put(start)
	todo := queue.New[[2]string]()
	todo.Enqueue([2]string{start, ""})
	for !todo.Empty() {
		item := todo.Dequeue()
		visit(item[0], item[1])
		for _, n := range g.Neighbors(item[0]) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			todo.Enqueue([2]string{n, item[0]})
		}
	}
}
