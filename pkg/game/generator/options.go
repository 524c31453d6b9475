package generator

import (
	"log"
	"time"

	"deepdelve/pkg/game/feature"
)

// Options tunes a generator. Zero fields take the per-kind default from
// DefaultOptions; not every generator reads every field.
type Options struct {
	RoomWidth      feature.Range
	RoomHeight     feature.Range
	CorridorLength feature.Range

	// DugPercentage is the open fraction at which Digger, Miner and Mountain
	// stop. Digger measures it against the whole map; Miner and Mountain
	// against the inner area inside the outer ring.
	DugPercentage float64
	// RoomDugPercentage is the fraction Uniform fills with rooms before
	// connecting them.
	RoomDugPercentage float64

	TimeLimit     time.Duration
	MaxIterations int

	FeatureAttempts  int
	RoomAttempts     int
	CorridorAttempts int

	RoomWeight     float64
	CorridorWeight float64

	// Clock is polled between iterations to enforce TimeLimit
	Clock  func() time.Time
	Logger *log.Logger
}

// DefaultTimeLimit bounds every time limited generation loop
const DefaultTimeLimit = time.Second

// DefaultOptions returns the defaults for a generator kind
func DefaultOptions(kind Kind) Options {
	o := Options{
		RoomWidth:        feature.Range{Min: 3, Max: 9},
		RoomHeight:       feature.Range{Min: 3, Max: 5},
		CorridorLength:   feature.Range{Min: 3, Max: 10},
		TimeLimit:        DefaultTimeLimit,
		FeatureAttempts:  20,
		RoomAttempts:     20,
		CorridorAttempts: 20,
		RoomWeight:       4,
		CorridorWeight:   4,
	}
	switch kind {
	case KindDigger:
		o.DugPercentage = 0.2
		o.MaxIterations = 50000
	case KindUniform:
		o.RoomDugPercentage = 0.1
		o.MaxIterations = 1000
	case KindBSP:
		o.RoomWidth = feature.Range{Min: 4, Max: 12}
		o.RoomHeight = feature.Range{Min: 4, Max: 8}
		o.MaxIterations = 20
	case KindMiner:
		o.CorridorLength = feature.Range{Min: 2, Max: 6}
		o.DugPercentage = 0.25
		o.MaxIterations = 5000
	case KindMountain:
		o.DugPercentage = 0.3
		o.MaxIterations = 10
	}
	return o
}

// withDefaults fills every zero field from DefaultOptions(kind)
func (o Options) withDefaults(kind Kind) Options {
	d := DefaultOptions(kind)
	if o.RoomWidth == (feature.Range{}) {
		o.RoomWidth = d.RoomWidth
	}
	if o.RoomHeight == (feature.Range{}) {
		o.RoomHeight = d.RoomHeight
	}
	if o.CorridorLength == (feature.Range{}) {
		o.CorridorLength = d.CorridorLength
	}
	if o.DugPercentage == 0 {
		o.DugPercentage = d.DugPercentage
	}
	if o.RoomDugPercentage == 0 {
		o.RoomDugPercentage = d.RoomDugPercentage
	}
	if o.TimeLimit == 0 {
		o.TimeLimit = d.TimeLimit
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.FeatureAttempts == 0 {
		o.FeatureAttempts = d.FeatureAttempts
	}
	if o.RoomAttempts == 0 {
		o.RoomAttempts = d.RoomAttempts
	}
	if o.CorridorAttempts == 0 {
		o.CorridorAttempts = d.CorridorAttempts
	}
	if o.RoomWeight == 0 && o.CorridorWeight == 0 {
		o.RoomWeight, o.CorridorWeight = d.RoomWeight, d.CorridorWeight
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}
