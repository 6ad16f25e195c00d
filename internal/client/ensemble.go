package client

import (
	"context"
	"sync"

	"github.com/san-kum/pathviz/internal/grid"
)

// Outcome is the result of one algorithm within an ensemble.
type Outcome struct {
	Algorithm Algorithm
	Result    Result
	Err       error
}

// RunAll runs every algorithm against the same grid concurrently. Outcomes
// keep the order of algos; a failed run does not cancel the others.
func (c *Client) RunAll(ctx context.Context, g grid.Grid, algos ...Algorithm) []Outcome {
	if len(algos) == 0 {
		algos = Algorithms()
	}
	out := make([]Outcome, len(algos))

	var wg sync.WaitGroup
	for i, algo := range algos {
		wg.Add(1)
		go func(idx int, algo Algorithm) {
			defer wg.Done()
			res, err := c.Run(ctx, g, algo)
			out[idx] = Outcome{Algorithm: algo, Result: res, Err: err}
		}(i, algo)
	}
	wg.Wait()

	return out
}
