package pairing

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
)

// Searcher runs the exhaustive search, fanning large pools out over a
// worker pool. Results are identical to Exhaustive.
type Searcher struct {
	workers int
	minPool int
}

func NewSearcher(workers, parallelMinPool int) *Searcher {
	if workers < 1 {
		workers = 1
	}
	if parallelMinPool < 4 {
		parallelMinPool = 4
	}
	return &Searcher{workers: workers, minPool: parallelMinPool}
}

func (s *Searcher) Exhaustive(ctx context.Context, pool []Candidate) (Suggestion, error) {
	if s == nil || s.workers == 1 || len(pool) < s.minPool {
		return Exhaustive(pool)
	}
	if len(pool) < 4 {
		return Suggestion{}, errors.Wrapf(ErrPoolTooSmall, "got %d", len(pool))
	}

	blocks := len(pool) - 3
	results := make([]Suggestion, blocks)
	found := make([]bool, blocks)

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return Suggestion{}, errors.Wrap(err, "create pairing worker pool")
	}
	defer workerPool.Release()

	var wg sync.WaitGroup
	for i := 0; i < blocks; i++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return Suggestion{}, err
		}
		i := i
		wg.Add(1)
		if err := workerPool.Submit(func() {
			defer wg.Done()
			results[i], found[i] = searchFrom(pool, i)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return Suggestion{}, errors.Wrapf(err, "submit pairing block %d", i)
		}
	}
	wg.Wait()

	// Blocks are merged in sequential enumeration order so ties resolve
	// exactly as in Exhaustive.
	var best Suggestion
	have := false
	for i := 0; i < blocks; i++ {
		if !found[i] {
			continue
		}
		if !have || results[i].Difference < best.Difference {
			best = results[i]
			have = true
		}
	}
	return best, nil
}
