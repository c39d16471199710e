// Package sweep runs a cycle engine across a range of compression ratios
// to produce efficiency-vs-ratio curves.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/bohounsoun/thermosim/internal/cycle"
	"github.com/bohounsoun/thermosim/internal/thermo"
)

// Sample is one sweep point. Err is non-nil when the cycle at this ratio
// failed to compute; the remaining fields are then zero.
type Sample struct {
	Tau        float64
	Efficiency float64
	NetWork    float64
	Err        error
}

// Result is the ordered sweep output. Samples appear in ascending τ order
// regardless of the execution order of the workers; Failed counts the
// samples that ended in error.
type Result struct {
	Samples []Sample
	Failed  int
}

// Run samples the range [tauMin, tauMax] at steps evenly spaced ratios,
// computing one independent cycle per sample. Individual failures are
// captured in their sample, never fatal to the batch. Samples run on a
// bounded worker pool; cancellation via ctx stops the remaining work.
func Run(ctx context.Context, engine *cycle.Engine, base cycle.Spec, tauMin, tauMax float64, steps int) (*Result, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: step count %d must be at least 1", thermo.ErrInvalidParameters, steps)
	}
	if tauMin <= 1 || tauMax < tauMin {
		return nil, fmt.Errorf("%w: ratio range [%g, %g] must satisfy 1 < min <= max",
			thermo.ErrInvalidParameters, tauMin, tauMax)
	}

	taus := make([]float64, steps)
	if steps == 1 {
		taus[0] = tauMin
	} else {
		span := (tauMax - tauMin) / float64(steps-1)
		for i := range taus {
			taus[i] = tauMin + float64(i)*span
		}
	}

	res := &Result{Samples: make([]Sample, steps)}

	workers := runtime.NumCPU()
	if workers > steps {
		workers = steps
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				spec := base
				spec.CompressionRatio = taus[idx]
				r, err := engine.Compute(spec)
				if err != nil {
					res.Samples[idx] = Sample{Tau: taus[idx], Err: err}
					continue
				}
				res.Samples[idx] = Sample{
					Tau:        taus[idx],
					Efficiency: r.Efficiency,
					NetWork:    r.NetWork,
				}
			}
		}()
	}

feed:
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return res, err
	}

	for i := range res.Samples {
		if res.Samples[i].Err != nil {
			res.Failed++
		}
	}
	return res, nil
}
