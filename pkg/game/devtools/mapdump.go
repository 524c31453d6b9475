// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/generator"
)

// DefaultDumpFilename is where DumpMapToFile writes when given no path
const DefaultDumpFilename = "map.txt"

// cellSymbol returns the single-character symbol for a cell (no entrance/exit overlay)
func cellSymbol(c world.Cell) rune {
	switch c {
	case world.Floor:
		return '.'
	case world.Door:
		return 'D'
	default:
		return '#'
	}
}

// writeMapGrid writes the grid with the entrance and exit marked
func writeMapGrid(w io.Writer, l *generator.Level, entrance, exit world.Point, marked bool) {
	for y := 0; y < l.Height; y++ {
		var sb strings.Builder
		for x := 0; x < l.Width; x++ {
			p := world.Pt(x, y)
			switch {
			case marked && p == entrance:
				sb.WriteByte('S')
			case marked && p == exit:
				sb.WriteByte('E')
			default:
				sb.WriteRune(cellSymbol(l.Grid.At(x, y)))
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}

// WriteMapDump writes a full debug dump: metadata, legend, map, rooms,
// corridors and the connectivity graph. Format is human- and LLM-readable
// (sections, key: value, consistent structure).
func WriteMapDump(out io.Writer, l *generator.Level, depth int) error {
	if l == nil || l.Grid == nil {
		return fmt.Errorf("devtools: no level to dump")
	}
	f := bufio.NewWriter(out)
	entrance, exit, marked := l.Endpoints()

	// --- Metadata ---
	fmt.Fprintln(f, "=== MAP DUMP DEBUG (level layout, features, connectivity) ===")
	fmt.Fprintln(f, "")
	fmt.Fprintln(f, "--- Metadata ---")
	fmt.Fprintf(f, "depth: %d\n", depth)
	fmt.Fprintf(f, "generator: %s\n", l.Generator)
	fmt.Fprintf(f, "seed: %v\n", l.Seed)
	fmt.Fprintf(f, "rng_state: %v\n", l.StartState)
	fmt.Fprintf(f, "width: %d\n", l.Width)
	fmt.Fprintf(f, "height: %d\n", l.Height)
	fmt.Fprintf(f, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)\n")
	fmt.Fprintf(f, "complete: %v\n", l.Complete)
	if l.Err != nil {
		fmt.Fprintf(f, "error: %q\n", l.Err.Error())
	}
	fmt.Fprintf(f, "iterations: %d\n", l.Iterations)
	fmt.Fprintf(f, "elapsed: %s\n", l.Elapsed)
	fmt.Fprintf(f, "dug_ratio: %.3f\n", l.DugRatio())
	fmt.Fprintf(f, "open_regions: %d\n", l.Regions())
	if marked {
		fmt.Fprintf(f, "entrance: %d,%d\n", entrance.X, entrance.Y)
		fmt.Fprintf(f, "exit: %d,%d\n", exit.X, exit.Y)
	}
	fmt.Fprintln(f, "")

	// --- Legend ---
	fmt.Fprintln(f, "--- Legend (cell symbols) ---")
	fmt.Fprintln(f, ". = floor  # = wall  D = door  S = entrance  E = exit")
	fmt.Fprintln(f, "")

	// --- Map ---
	fmt.Fprintln(f, "--- Map ---")
	writeMapGrid(f, l, entrance, exit, marked)
	fmt.Fprintln(f, "")

	// Rooms
	fmt.Fprintln(f, "Rooms:")
	for _, r := range l.Rooms {
		c := r.Center()
		fmt.Fprintf(f, "  name: %s x1: %d y1: %d x2: %d y2: %d center: %d,%d doors: %s\n",
			r.Name(), r.Left(), r.Top(), r.Right(), r.Bottom(), c.X, c.Y, joinPoints(r.Doors()))
	}
	fmt.Fprintln(f, "")

	// Corridors
	fmt.Fprintln(f, "Corridors:")
	for _, c := range l.Corridors {
		s, e := c.Start(), c.End()
		fmt.Fprintf(f, "  name: %s start: %d,%d end: %d,%d length: %d ends_with_wall: %v\n",
			c.Name(), s.X, s.Y, e.X, e.Y, c.Length(), c.EndsWithWall())
	}
	fmt.Fprintln(f, "")

	// Graph
	fmt.Fprintln(f, "Graph:")
	fmt.Fprintf(f, "  nodes: %d\n", l.Graph.Len())
	fmt.Fprintf(f, "  connected: %v\n", l.Graph.Connected())
	fmt.Fprintf(f, "  components: %d\n", len(l.Graph.Components()))
	fmt.Fprintf(f, "  leaves: %s\n", strings.Join(l.Graph.Leaves(), ","))
	for _, e := range l.Graph.Edges() {
		fmt.Fprintf(f, "  edge: %s -- %s at: %d,%d\n", e.A, e.B, e.At.X, e.At.Y)
	}
	fmt.Fprintln(f, "")

	fmt.Fprintln(f, "=== END MAP DUMP ===")
	return f.Flush()
}

func joinPoints(ps []world.Point) string {
	if len(ps) == 0 {
		return "none"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return strings.Join(parts, ";")
}

// DumpMapToFile writes WriteMapDump output to path (DefaultDumpFilename when
// empty) and returns the absolute path written
func DumpMapToFile(l *generator.Level, depth int, path string) (string, error) {
	if path == "" {
		path = DefaultDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteMapDump(f, l, depth); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
