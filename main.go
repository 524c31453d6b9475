package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/leonelquinteros/gotext"

	"deepdelve/pkg/engine/rng"
	"deepdelve/pkg/engine/terminal"
	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/depth"
	"deepdelve/pkg/game/devtools"
	"deepdelve/pkg/game/gameplay"
	"deepdelve/pkg/game/generator"
	"deepdelve/pkg/game/renderer"
	"deepdelve/pkg/game/state"
)

// lines kept free under the map for the summary
const reservedLines = 6

type config struct {
	kind    string
	depth   int
	width   int
	height  int
	seed    float64
	dump    string
	save    string
	color   bool
	turns   int
	batch   int
	lang    string
	locales string
	schema  bool
}

func parseFlags() config {
	var c config
	flag.StringVar(&c.kind, "generator", "", "generator kind (default: chosen by depth)")
	flag.IntVar(&c.depth, "depth", 1, "dungeon depth, picks generator, size and options")
	flag.IntVar(&c.width, "width", 0, "map width (default: chosen by depth)")
	flag.IntVar(&c.height, "height", 0, "map height (default: chosen by depth)")
	flag.Float64Var(&c.seed, "seed", 0, "RNG seed (default: current time)")
	flag.StringVar(&c.dump, "dump", "", "write a text dump of the map to this file")
	flag.StringVar(&c.save, "save", "", "write the RNG snapshot and level as JSON to this file")
	flag.BoolVar(&c.color, "color", terminal.IsTerminal(), "colored output")
	flag.IntVar(&c.turns, "turns", 0, "simulate this many scheduler turns of walkers heading for the exit")
	flag.IntVar(&c.batch, "batch", 0, "generate this many consecutive seeds in parallel and report each")
	flag.StringVar(&c.lang, "lang", "en_US", "language of the labels")
	flag.StringVar(&c.locales, "locales", "locales", "directory holding the translations")
	flag.BoolVar(&c.schema, "schema", false, "print the JSON schema of the save file and exit")
	flag.Parse()
	return c
}

// profile merges the depth profile with explicit flags
func (c config) profile() (depth.Profile, error) {
	p := depth.ProfileFor(c.depth)
	if c.kind != "" {
		k, err := generator.ParseKind(c.kind)
		if err != nil {
			return p, err
		}
		p.Kind = k
		p.Options = generator.DefaultOptions(k)
	}
	if c.width > 0 {
		p.Width = c.width
	}
	if c.height > 0 {
		p.Height = c.height
	}
	return p, nil
}

func main() {
	cfg := parseFlags()

	gotext.Configure(cfg.locales, cfg.lang, "default")
	renderer.SetColor(cfg.color)

	if cfg.schema {
		data, err := state.SchemaJSON()
		if err != nil {
			log.Fatalf("schema: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	p, err := cfg.profile()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cfg.seed == 0 {
		cfg.seed = float64(time.Now().UnixMilli())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.batch > 0 {
		runBatch(ctx, p, cfg.seed, cfg.batch)
		return
	}

	r := rng.New(cfg.seed)
	snapshot := state.Capture(r)
	gen, err := p.Generator(r)
	if err != nil {
		log.Fatalf("%v", err)
	}
	level, err := gen.Generate(ctx)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	fmt.Println(renderer.ColorTitle.Sprint(renderer.Translate("SUMMARY_DEPTH", p.Depth, depth.Title(p.Kind))))
	renderer.PrintString("GT{%s}\n\n", depth.FlavourKey(p.Depth))

	w, h := terminal.Fit(level.Width, level.Height, reservedLines)
	renderer.PrintLevel(level, w, h)
	fmt.Println()

	printSummary(level, r.Seed())

	if cfg.dump != "" {
		path, err := devtools.DumpMapToFile(level, p.Depth, cfg.dump)
		if err != nil {
			log.Fatalf("dump: %v", err)
		}
		fmt.Println(renderer.Translate("SUMMARY_DUMP", path))
	}

	if cfg.save != "" {
		if err := save(cfg.save, snapshot, level); err != nil {
			log.Fatalf("save: %v", err)
		}
		fmt.Println(renderer.Translate("SUMMARY_SAVE", cfg.save))
	}

	if cfg.turns > 0 {
		simulate(level, cfg.turns)
	}
}

func printSummary(level *generator.Level, seed float64) {
	fmt.Println(renderer.Translate("SUMMARY_LEVEL",
		level.Generator, level.Width, level.Height, seed,
		len(level.Rooms), len(level.Corridors), level.DugRatio()*100))
	if !level.Complete {
		fmt.Println(renderer.ColorWarning.Sprint(renderer.Translate("SUMMARY_INCOMPLETE", level.Err)))
	}
	if entrance, exit, ok := level.Endpoints(); ok {
		fmt.Println(renderer.Translate("SUMMARY_ENDPOINTS", entrance, exit))
	}
}

func save(path string, snapshot state.Snapshot, level *generator.Level) error {
	data := level.Data()
	doc := state.Document{Snapshot: snapshot, Level: &data}
	out, err := state.MarshalDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func simulate(level *generator.Level, turns int) {
	start, _, ok := level.Endpoints()
	if !ok {
		return
	}
	sim, err := gameplay.NewSimulation(level, nil, gameplay.DefaultActors(start)...)
	if err != nil {
		log.Printf("gameplay: %v", err)
		return
	}
	fmt.Println()
	fmt.Println(renderer.Translate("SUMMARY_TURNS", turns))
	for _, t := range sim.Run(turns) {
		line := fmt.Sprintf("%6.2f %-7s %v -> %v", t.Time, t.Actor, t.From, t.To)
		if t.Arrived {
			line += " " + renderer.ColorAction.Sprint(">")
		}
		fmt.Println(line)
	}
}

// runBatch generates count consecutive seeds concurrently, one worker each
func runBatch(ctx context.Context, p depth.Profile, seed float64, count int) {
	results := make([]<-chan generator.Result, count)
	for i := range results {
		results[i] = generator.Run(ctx, generator.Request{
			Kind:    p.Kind,
			Width:   p.Width,
			Height:  p.Height,
			Seed:    seed + float64(i),
			Options: p.Options,
		})
	}
	for i, ch := range results {
		res := <-ch
		if res.Err != nil {
			log.Printf("seed %v: %v", seed+float64(i), res.Err)
			continue
		}
		d := res.Level
		fmt.Println(renderer.Translate("SUMMARY_LEVEL",
			d.Generator, d.Width, d.Height, d.Seed,
			len(d.Rooms), len(d.Corridors), openRatio(d)*100))
		if !d.Complete {
			fmt.Println(renderer.ColorWarning.Sprint(renderer.Translate("SUMMARY_INCOMPLETE", d.Error)))
		}
	}
}

func openRatio(d state.LevelData) float64 {
	if d.Width <= 2 || d.Height <= 2 {
		return 0
	}
	open := 0
	for _, row := range d.Cells {
		for _, c := range row {
			if world.Cell(c).Passable() {
				open++
			}
		}
	}
	return float64(open) / float64((d.Width-2)*(d.Height-2))
}
