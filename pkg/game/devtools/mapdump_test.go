package devtools

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/game/generator"
)

func level(t *testing.T, kind generator.Kind) *generator.Level {
	t.Helper()
	g, err := generator.New(kind, 30, 15, rng.New(3), generator.Options{Logger: log.New(io.Discard, "", 0)})
	require.NoError(t, err)
	l, err := g.Generate(context.Background())
	require.NoError(t, err)
	return l
}

func TestWriteMapDumpSections(t *testing.T) {
	l := level(t, generator.KindArena)
	var buf bytes.Buffer
	require.NoError(t, WriteMapDump(&buf, l, 2))
	out := buf.String()

	for _, section := range []string{"--- Metadata ---", "--- Legend", "--- Map ---", "Rooms:", "Corridors:", "Graph:", "=== END MAP DUMP ==="} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "depth: 2\n")
	assert.Contains(t, out, "generator: arena\n")
	assert.Contains(t, out, "width: 30\n")
	assert.Contains(t, out, "complete: true\n")
	assert.Contains(t, out, "  nodes: 1\n")
	// entrance at the room center (15,7)
	assert.Contains(t, out, "\n#"+strings.Repeat(".", 14)+"S"+strings.Repeat(".", 13)+"#\n")
	assert.Contains(t, out, strings.Repeat("#", 30)+"\n")
}

func TestWriteMapDumpListsFeatures(t *testing.T) {
	l := level(t, generator.KindUniform)
	var buf bytes.Buffer
	require.NoError(t, WriteMapDump(&buf, l, 1))
	out := buf.String()
	for _, r := range l.Rooms {
		assert.Contains(t, out, "name: "+r.Name()+" ")
	}
	for _, c := range l.Corridors {
		assert.Contains(t, out, "name: "+c.Name()+" ")
	}
	assert.Equal(t, len(l.Graph.Edges()), strings.Count(out, "  edge: "))
}

func TestWriteMapDumpNoLevel(t *testing.T) {
	assert.Error(t, WriteMapDump(io.Discard, nil, 1))
}

func TestDumpMapToFile(t *testing.T) {
	l := level(t, generator.KindDividedMaze)
	path := filepath.Join(t.TempDir(), "dump.txt")
	written, err := DumpMapToFile(l, 4, path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "=== MAP DUMP DEBUG"))
}
