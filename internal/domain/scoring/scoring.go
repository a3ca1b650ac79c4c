// Package scoring computes Strategic Sync / Value Velocity axis scores,
// quadrant classification and derived portfolio KPIs.
package scoring

import (
	"github.com/ssaa/navigator/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultThreshold         = 60
	defaultAssetSharePct     = 20
	ratingToPercent          = 20 // rescales a max rating of 5 to 100%
	defaultVisionWeight      = 0.4
	defaultResonanceWeight   = 0.3
	defaultContextWeight     = 0.3
	defaultMarketWeight      = 0.4
	defaultSpeedWeight       = 0.4
	defaultFrictionWeight    = 0.2
	percentScale             = 100
)

// Quadrant is the qualitative classification of a project's axis position.
type Quadrant string

// Quadrant values.
const (
	QuadrantStar  Quadrant = "Star"
	QuadrantPivot Quadrant = "Pivot"
	QuadrantRisk  Quadrant = "Risk"
	QuadrantStop  Quadrant = "Stop"
)

// Color returns the dashboard palette color for the quadrant.
func (q Quadrant) Color() string {
	switch q {
	case QuadrantStar:
		return "#3b82f6"
	case QuadrantPivot:
		return "#f59e0b"
	case QuadrantRisk:
		return "#8b5cf6"
	case QuadrantStop:
		return "#ef4444"
	}
	return "#64748b"
}

// Weights holds the three weights of one axis triad. Callers keep the sum at
// 1.0; the engine applies them as given.
type Weights struct {
	A, B, C float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithThreshold sets the axis cutoff for quadrant classification.
func WithThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold >= 0 && threshold <= percentScale {
			e.threshold = threshold
		}
	}
}

// WithSyncWeights sets the vision/resonance/context weights.
func WithSyncWeights(w Weights) Option {
	return func(e *Engine) {
		e.syncWeights = w
	}
}

// WithVelocityWeights sets the market/speed/friction weights.
func WithVelocityWeights(w Weights) Option {
	return func(e *Engine) {
		e.velocityWeights = w
	}
}

// WithDefaultAssetShare sets the share reported per project when the
// portfolio total work hours is zero.
func WithDefaultAssetShare(pct float64) Option {
	return func(e *Engine) {
		if pct >= 0 {
			e.defaultAssetShare = pct
		}
	}
}

// Engine derives plottable metrics from raw ratings. All methods are total
// functions: any numeric input yields a deterministic numeric output.
type Engine struct {
	threshold         float64
	syncWeights       Weights
	velocityWeights   Weights
	defaultAssetShare float64
}

// New constructs an Engine with the canonical weights and threshold.
func New(opts ...Option) *Engine {
	e := &Engine{
		threshold:         defaultThreshold,
		syncWeights:       Weights{A: defaultVisionWeight, B: defaultResonanceWeight, C: defaultContextWeight},
		velocityWeights:   Weights{A: defaultMarketWeight, B: defaultSpeedWeight, C: defaultFrictionWeight},
		defaultAssetShare: defaultAssetSharePct,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Threshold returns the configured quadrant threshold.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// ComputeAxes maps the six ratings to the two axis percentages. Ratings are
// expected in [1,5]; out-of-range input produces out-of-range output with no
// error, per the contract that callers supply validated ratings.
func (e *Engine) ComputeAxes(ev model.Evaluation) (sync, velocity float64) {
	sync = (float64(ev.VisionScore)*e.syncWeights.A +
		float64(ev.ResonanceScore)*e.syncWeights.B +
		float64(ev.ContextScore)*e.syncWeights.C) * ratingToPercent
	velocity = (float64(ev.MarketScore)*e.velocityWeights.A +
		float64(ev.SpeedScore)*e.velocityWeights.B +
		float64(ev.FrictionScore)*e.velocityWeights.C) * ratingToPercent
	return sync, velocity
}

// Classify maps an axis position to its quadrant. Boundary values meet the
// threshold (>= on both axes) so every position lands in exactly one quadrant.
func (e *Engine) Classify(sync, velocity float64) Quadrant {
	switch {
	case sync >= e.threshold && velocity >= e.threshold:
		return QuadrantStar
	case sync >= e.threshold:
		return QuadrantPivot
	case velocity >= e.threshold:
		return QuadrantRisk
	default:
		return QuadrantStop
	}
}

// AssetShare returns each project's percentage of the portfolio's total work
// hours. When the total is zero every project gets the configured default
// share so the metric stays displayable.
func (e *Engine) AssetShare(evals []model.Evaluation) map[string]float64 {
	shares := make(map[string]float64, len(evals))

	var total float64
	for _, ev := range evals {
		total += ev.WorkHours
	}

	for _, ev := range evals {
		if total > 0 {
			shares[ev.ID] = ev.WorkHours / total * percentScale
		} else {
			shares[ev.ID] = e.defaultAssetShare
		}
	}

	return shares
}

// ReturnOnHours returns actual profit per work hour, or 0 when no hours are
// reported. Defined as 0 by convention so the metric is always computable.
func (e *Engine) ReturnOnHours(ev model.Evaluation) float64 {
	if ev.WorkHours <= 0 {
		return 0
	}
	return ev.ActualProfit / ev.WorkHours
}
