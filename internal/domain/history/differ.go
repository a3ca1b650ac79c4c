// Package history compares current axis positions against prior snapshot
// positions and produces movement trails for the dashboard.
package history

import "math"

// defaultNoiseFloor is the per-axis movement, in percentage points, below
// which a position change is treated as jitter.
const defaultNoiseFloor = 2

// Position is a point in the (sync, velocity) plane.
type Position struct {
	Sync     float64
	Velocity float64
}

// Trail is the movement from a prior snapshot position to the current one.
// The consumer draws a line between the two points.
type Trail struct {
	From Position
	To   Position
}

// Option applies a configuration option to the Differ.
type Option func(*Differ)

// WithNoiseFloor sets the per-axis movement threshold.
func WithNoiseFloor(floor float64) Option {
	return func(d *Differ) {
		if floor >= 0 {
			d.noiseFloor = floor
		}
	}
}

// Differ computes directional deltas between snapshot positions.
type Differ struct {
	noiseFloor float64
}

// New constructs a Differ with the default noise floor.
func New(opts ...Option) *Differ {
	d := &Differ{noiseFloor: defaultNoiseFloor}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// NoiseFloor returns the configured per-axis movement threshold.
func (d *Differ) NoiseFloor() float64 {
	return d.noiseFloor
}

// Delta returns the trail from previous to current, and whether a trail
// should be drawn at all. Movement counts when any single axis moved by more
// than the noise floor; below that on both axes the change is jitter and no
// trail is reported.
func (d *Differ) Delta(current, previous Position) (Trail, bool) {
	syncMove := math.Abs(current.Sync - previous.Sync)
	velocityMove := math.Abs(current.Velocity - previous.Velocity)

	if syncMove <= d.noiseFloor && velocityMove <= d.noiseFloor {
		return Trail{}, false
	}

	return Trail{From: previous, To: current}, true
}
