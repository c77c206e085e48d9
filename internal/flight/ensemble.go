package flight

import (
	"context"
	"sync"

	"github.com/san-kum/aerosim/internal/aircraft"
)

// Factory builds a fresh simulator and initial state for run idx. Surfaces
// carry flap state, so runs must not share an airframe.
type Factory func(idx int) (*Simulator, aircraft.Kinematics, error)

// Ensemble flies independent copies of a configuration concurrently.
type Ensemble struct {
	build   Factory
	numRuns int
}

func NewEnsemble(build Factory, numRuns int) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sim, k0, err := e.build(idx)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = sim.Run(ctx, k0, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
