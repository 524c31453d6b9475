package gameplay

import (
	"errors"
	"log"

	"deepdelve/pkg/engine/path"
	"deepdelve/pkg/engine/schedule"
	"deepdelve/pkg/engine/world"
	"deepdelve/pkg/game/generator"
)

// ErrNoExit is returned for levels without an open cell
var ErrNoExit = errors.New("gameplay: level has no entrance or exit")

// Turn is one action taken by an actor
type Turn struct {
	Time    float64
	Actor   string
	From    world.Point
	To      world.Point
	Visible int
	Arrived bool
}

// Simulation runs actors from wherever they stand to the level exit
type Simulation struct {
	level  *generator.Level
	exit   world.Point
	router *path.Dijkstra
	sched  *schedule.Speed[*Actor]
	actors []*Actor
	logger *log.Logger
}

// NewSimulation routes every actor to the exit and schedules it. Actors with
// no route to the exit are logged and left out of the turn order.
func NewSimulation(l *generator.Level, logger *log.Logger, actors ...*Actor) (*Simulation, error) {
	if l == nil || l.Grid == nil {
		return nil, ErrNoExit
	}
	_, exit, ok := l.Endpoints()
	if !ok {
		return nil, ErrNoExit
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Simulation{
		level:  l,
		exit:   exit,
		router: path.NewDijkstra(exit.X, exit.Y, path.GridPassable(l.Grid), world.Topology4),
		sched:  schedule.NewSpeed[*Actor](),
		logger: logger,
	}
	for _, a := range actors {
		s.Add(a)
	}
	return s, nil
}

// DefaultActors are three walkers of different speeds standing on start
func DefaultActors(start world.Point) []*Actor {
	return []*Actor{
		NewActor("scout", 2, start),
		NewActor("delver", 1, start),
		NewActor("porter", 0.5, start),
	}
}

// Add routes and schedules an actor
func (s *Simulation) Add(a *Actor) bool {
	a.route = s.router.Path(a.Pos.X, a.Pos.Y)
	if a.route == nil {
		s.logger.Printf("gameplay: %s at %s cannot reach the exit", a.Name, world.Key(a.Pos))
		return false
	}
	s.actors = append(s.actors, a)
	if a.Arrived() {
		return true
	}
	s.sched.Add(a, true)
	return true
}

// Exit is the cell every actor walks to
func (s *Simulation) Exit() world.Point {
	return s.exit
}

// Actors lists the routed actors in the order they were added
func (s *Simulation) Actors() []*Actor {
	return s.actors
}

// Time is the scheduler clock
func (s *Simulation) Time() float64 {
	return s.sched.Time()
}

// Step lets the next actor walk one cell. ok is false once every actor has
// arrived.
func (s *Simulation) Step() (Turn, bool) {
	a, ok := s.sched.Next()
	if !ok {
		return Turn{}, false
	}
	turn := Turn{Time: s.sched.Time(), Actor: a.Name, From: a.Pos}
	a.advance(s.level)
	turn.To = a.Pos
	turn.Visible = len(world.CalculateFOV(s.level.Grid, a.Pos.X, a.Pos.Y, world.FOVRadius))
	if a.Arrived() {
		turn.Arrived = true
		s.sched.Remove(a)
	}
	return turn, true
}

// Run takes up to n turns
func (s *Simulation) Run(n int) []Turn {
	var turns []Turn
	for i := 0; i < n; i++ {
		t, ok := s.Step()
		if !ok {
			break
		}
		turns = append(turns, t)
	}
	return turns
}
