// Package search finds irreducible and primitive polynomials by scanning the
// candidates of an Enumerator on a pool of workers.
package search

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"runtime"

	logging "github.com/ipfs/go-log/v2"

	"github.com/ppopth/gfpoly/enumerate"
	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/poly"
	"github.com/ppopth/gfpoly/tester"
)

var log = logging.Logger("search")

var (
	// ErrNotFound is returned when no candidate satisfies the request
	ErrNotFound = errors.New("no polynomial satisfies the request")

	// ErrInvalidTerms is returned for a term count outside [1, degree+1]
	ErrInvalidTerms = errors.New("invalid term count")

	ErrInvalidDegree  = tester.ErrInvalidDegree
	ErrDomainMismatch = tester.ErrDomainMismatch
)

// MinTerms requests the candidates with the fewest non-zero terms
const MinTerms = -1

// randomProbe is the number of random misses after which Random checks that a
// solution exists at all
const randomProbe = 1024

// Request describes a search
type Request struct {
	Field    field.Field
	Degree   int
	Property tester.Property

	// Terms is 0 for any term count, MinTerms, or an exact count
	Terms int

	// Reverse scans each group from the lexicographically last candidate
	Reverse bool
}

func (r Request) String() string {
	terms := "any"
	switch {
	case r.Terms == MinTerms:
		terms = "min"
	case r.Terms > 0:
		terms = fmt.Sprint(r.Terms)
	}
	return fmt.Sprintf("%s degree %d over %s, terms %s", r.Property, r.Degree, r.Field.Descriptor(), terms)
}

func (r Request) validate() error {
	if r.Field == nil {
		return fmt.Errorf("request without field: %w", ErrDomainMismatch)
	}
	if r.Degree < 1 {
		return fmt.Errorf("degree %d: %w", r.Degree, ErrInvalidDegree)
	}
	if r.Property != tester.Irreducible && r.Property != tester.Primitive {
		return fmt.Errorf("unsupported search property %s", r.Property)
	}
	if r.Terms != 0 && r.Terms != MinTerms && (r.Terms < 1 || r.Terms > r.Degree+1) {
		return fmt.Errorf("%d terms for degree %d: %w", r.Terms, r.Degree, ErrInvalidTerms)
	}
	return nil
}

func (r Request) enumerator(opts ...enumerate.Option) (*enumerate.Enumerator, error) {
	if r.Reverse {
		opts = append(opts, enumerate.WithReverse())
	}
	if r.Terms > 0 {
		opts = append(opts, enumerate.WithTerms(r.Terms))
	}
	return enumerate.New(r.Field, r.Degree, opts...)
}

// Engine runs searches. It is safe for concurrent use.
type Engine struct {
	tester  *tester.Tester
	workers int
	window  int
}

// Option is a functional option for the Engine
type Option func(*Engine) error

// WithWorkers sets the number of candidates tested in parallel
func WithWorkers(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return fmt.Errorf("number of workers must be positive, got %d", n)
		}
		e.workers = n
		return nil
	}
}

// WithWindow bounds how far ahead of the first unreported candidate the workers
// may test
func WithWindow(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return fmt.Errorf("speculation window must be positive, got %d", n)
		}
		e.window = n
		return nil
	}
}

// New creates an Engine testing candidates with t
func New(t *tester.Tester, opts ...Option) (*Engine, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tester")
	}
	e := &Engine{
		tester:  t,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.window == 0 {
		e.window = 4 * e.workers
	}
	if e.window < e.workers {
		e.window = e.workers
	}
	return e, nil
}

// Tester returns the tester the engine runs
func (e *Engine) Tester() *tester.Tester {
	return e.tester
}

func (e *Engine) predicate(property tester.Property) func(context.Context, *poly.Poly) (bool, error) {
	return func(ctx context.Context, p *poly.Poly) (bool, error) {
		return e.tester.Check(ctx, p, property)
	}
}

// All iterates over the polynomials satisfying the request in enumeration
// order. Iteration stops after the first error, which is yielded with a nil
// polynomial.
func (e *Engine) All(ctx context.Context, req Request) iter.Seq2[*poly.Poly, error] {
	return func(yield func(*poly.Poly, error) bool) {
		if err := req.validate(); err != nil {
			yield(nil, err)
			return
		}
		stopped := false
		emit := func(p *poly.Poly) bool {
			if !yield(p, nil) {
				stopped = true
				return false
			}
			return true
		}

		var err error
		if req.Terms == MinTerms {
			err = e.minimal(ctx, req, emit)
		} else {
			var en *enumerate.Enumerator
			en, err = req.enumerator()
			if err == nil {
				err = e.Find(ctx, en.All(), e.predicate(req.Property), emit)
			}
		}
		if err != nil && !stopped {
			yield(nil, err)
		}
	}
}

// minimal reports every candidate of the smallest term-count group holding at
// least one solution
func (e *Engine) minimal(ctx context.Context, req Request, yield func(*poly.Poly) bool) error {
	en, err := req.enumerator()
	if err != nil {
		return err
	}
	pred := e.predicate(req.Property)
	for t := 1; t <= req.Degree+1; t++ {
		found, stopped := false, false
		err := e.Find(ctx, en.Group(t), pred, func(p *poly.Poly) bool {
			found = true
			if !yield(p) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
		if found || stopped {
			log.Debugf("minimum term count of %s is %d", req, t)
			return nil
		}
	}
	return nil
}

// N returns the first count polynomials satisfying the request, fewer when the
// candidate space runs out
func (e *Engine) N(ctx context.Context, req Request, count int) ([]*poly.Poly, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	var out []*poly.Poly
	for p, err := range e.All(ctx, req) {
		if err != nil {
			return out, err
		}
		out = append(out, p)
		if len(out) == count {
			break
		}
	}
	return out, nil
}

// First returns the first polynomial satisfying the request
func (e *Engine) First(ctx context.Context, req Request) (*poly.Poly, error) {
	ps, err := e.N(ctx, req, 1)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("%s: %w", req, ErrNotFound)
	}
	return ps[0], nil
}

// MinimumTerms returns the smallest number of non-zero terms of a monic
// polynomial of the given degree with the property
func (e *Engine) MinimumTerms(ctx context.Context, f field.Field, degree int, property tester.Property) (int, error) {
	req := Request{Field: f, Degree: degree, Property: property, Terms: MinTerms}
	p, err := e.First(ctx, req)
	if err != nil {
		return 0, err
	}
	return p.Terms(), nil
}

// Random returns a uniformly random polynomial satisfying the request. Reverse
// is ignored.
func (e *Engine) Random(ctx context.Context, req Request) (*poly.Poly, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.Terms == MinTerms {
		t, err := e.MinimumTerms(ctx, req.Field, req.Degree, req.Property)
		if err != nil {
			return nil, err
		}
		req.Terms = t
	}
	req.Reverse = false
	en, err := req.enumerator()
	if err != nil {
		return nil, err
	}

	pred := e.predicate(req.Property)
	for round := 0; ; round++ {
		candidates := func(yield func(*poly.Poly) bool) {
			for i := 0; i < randomProbe && yield(en.Random()); i++ {
			}
		}
		var found *poly.Poly
		err := e.Find(ctx, candidates, pred, func(p *poly.Poly) bool {
			found = p
			return false
		})
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
		if round == 0 {
			// make sure a solution exists before drawing again
			if _, err := e.First(ctx, req); err != nil {
				return nil, err
			}
			log.Debugf("no random hit for %s after %d draws", req, randomProbe)
		}
	}
}
