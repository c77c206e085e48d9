package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/aerosim/internal/aircraft"
	"github.com/san-kum/aerosim/internal/dynamo"
	"github.com/san-kum/aerosim/internal/flight"
)

// Factory builds a fresh flight for one grid point. params holds one value
// per searched parameter.
type Factory func(params map[string]float64) (*flight.Simulator, aircraft.Kinematics, error)

// GridSearch flies every combination of parameter values and keeps the one
// minimising a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// Search returns the best parameters, their metric value and every trial in
// grid order. Flights that fail or report an error are scored +Inf.
func (g *GridSearch) Search(ctx context.Context, build Factory, cfg flight.Config, metricName string) (map[string]float64, float64, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("%w: %d parameters, %d ranges", dynamo.ErrParameterBounds, len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	var trials []Trial

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) {
		t := Trial{Params: params, Value: math.Inf(1)}
		t.Value, t.Err = evaluate(ctx, build, params, cfg, metricName)
		trials = append(trials, t)
		if t.Err == nil && t.Value < best {
			best = t.Value
			bestParams = params
		}
	})
	if err != nil {
		return nil, 0, trials, err
	}
	if bestParams == nil {
		return nil, best, trials, fmt.Errorf("no grid point flew successfully")
	}
	return bestParams, best, trials, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, visit func(map[string]float64)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, err)
	}
	if depth == len(g.paramNames) {
		visit(current)
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, visit); err != nil {
			return err
		}
	}
	return nil
}

func evaluate(ctx context.Context, build Factory, params map[string]float64, cfg flight.Config, metricName string) (float64, error) {
	sim, k0, err := build(params)
	if err != nil {
		return math.Inf(1), err
	}
	result, err := sim.Run(ctx, k0, cfg)
	if err != nil {
		return math.Inf(1), err
	}
	if len(result.Errors) > 0 {
		return math.Inf(1), result.Errors[0]
	}
	val, ok := result.Metrics[metricName]
	if !ok {
		return math.Inf(1), fmt.Errorf("metric %q: %w", metricName, dynamo.ErrUnknownName)
	}
	return val, nil
}

// Apply sets params on target, which is usually a pilot.
func Apply(target dynamo.Configurable, params map[string]float64) error {
	for name, v := range params {
		if err := target.SetParam(name, v); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
