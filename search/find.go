package search

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/ppopth/gfpoly/poly"
)

type job struct {
	index int
	p     *poly.Poly
}

type result struct {
	index int
	p     *poly.Poly
	ok    bool
	err   error
}

// Find tests the candidates on the worker pool and calls yield with every
// accepted candidate in candidate order, until yield returns false or the
// candidates run out. At most window candidates past the first unreported one
// are in flight. When yield stops the search, in-flight tests are abandoned
// through their context and Find returns nil. A failed test is reported in
// its place in the order: the accepted candidates before it are yielded first
// and Find then returns its error.
func (e *Engine) Find(
	ctx context.Context,
	candidates iter.Seq[*poly.Poly],
	predicate func(context.Context, *poly.Poly) (bool, error),
	yield func(*poly.Poly) bool,
) error {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job)
	results := make(chan result, e.window)
	slots := make(chan struct{}, e.window)

	g.Go(func() error {
		defer close(jobs)
		index := 0
		for p := range candidates {
			select {
			case slots <- struct{}{}:
			case <-gctx.Done():
				return nil
			}
			select {
			case jobs <- job{index, p}:
			case <-gctx.Done():
				return nil
			}
			index++
		}
		return nil
	})
	for i := 0; i < e.workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				ok, err := predicate(gctx, j.p)
				select {
				case results <- result{j.index, j.p, ok, err}:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	var werr error
	done := make(chan struct{})
	go func() {
		werr = g.Wait()
		close(results)
		close(done)
	}()

	pending := make(map[int]result)
	var ferr error
	next, tested, stopped := 0, 0, false
	for r := range results {
		if stopped {
			continue
		}
		pending[r.index] = r
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if r.err != nil {
				ferr = r.err
				stopped = true
				cancel()
				break
			}
			next++
			<-slots
			if r.ok && !yield(r.p) {
				stopped = true
				cancel()
				break
			}
		}
		tested++
	}
	<-done

	log.Debugf("tested %d candidates, reported through %d", tested, next)
	if stopped && ferr == nil {
		return nil
	}
	if err := parent.Err(); err != nil {
		return err
	}
	if ferr != nil {
		return ferr
	}
	return werr
}
