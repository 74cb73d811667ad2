// Package factor factors multiplicative group orders q^n - 1 of finite fields.
package factor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"sync"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/tuneinsight/lattigo/v6/utils/factorization"
	"golang.org/x/sync/singleflight"
)

var log = logging.Logger("factor")

// ErrFactorizationTimeout is returned when the factorization did not complete
// within the allowed effort. The partial factorization is returned with it.
var ErrFactorizationTimeout = errors.New("factorization timed out")

const defaultTrialBound = 1 << 16

// Factor is a prime power p^e
type Factor struct {
	Prime    *big.Int
	Exponent int
}

// Factorization is a list of prime powers in ascending order of primes
type Factorization []Factor

// Primes returns the distinct primes
func (f Factorization) Primes() []*big.Int {
	ps := make([]*big.Int, len(f))
	for i, pe := range f {
		ps[i] = new(big.Int).Set(pe.Prime)
	}
	return ps
}

// Product returns the integer the factorization describes
func (f Factorization) Product() *big.Int {
	n := big.NewInt(1)
	for _, pe := range f {
		n.Mul(n, new(big.Int).Exp(pe.Prime, big.NewInt(int64(pe.Exponent)), nil))
	}
	return n
}

func (f Factorization) String() string {
	if len(f) == 0 {
		return "1"
	}
	parts := make([]string, len(f))
	for i, pe := range f {
		if pe.Exponent == 1 {
			parts[i] = pe.Prime.String()
		} else {
			parts[i] = fmt.Sprintf("%s^%d", pe.Prime, pe.Exponent)
		}
	}
	return strings.Join(parts, " * ")
}

// merge adds the exponents of b into a and keeps the primes sorted
func merge(a, b Factorization) Factorization {
	out := make(Factorization, 0, len(a)+len(b))
	for _, pe := range a {
		out = append(out, Factor{Prime: pe.Prime, Exponent: pe.Exponent})
	}
	for _, pe := range b {
		i, found := slices.BinarySearchFunc(out, pe.Prime, func(x Factor, p *big.Int) int {
			return x.Prime.Cmp(p)
		})
		if found {
			out[i].Exponent += pe.Exponent
		} else {
			out = slices.Insert(out, i, Factor{Prime: pe.Prime, Exponent: pe.Exponent})
		}
	}
	return out
}

// Factorizer factors integers and caches every complete result. Concurrent
// requests for the same integer share one computation.
type Factorizer struct {
	budget time.Duration
	primes []*big.Int // trial division primes

	group   singleflight.Group
	results sync.Map // decimal string -> Factorization
}

// Option is a functional option for the Factorizer
type Option func(*Factorizer) error

// WithBudget bounds the effort of every call. When the budget is exhausted the
// call returns the partial factorization and ErrFactorizationTimeout. Zero means
// no bound other than the context.
func WithBudget(d time.Duration) Option {
	return func(f *Factorizer) error {
		if d < 0 {
			return fmt.Errorf("negative factorization budget %v", d)
		}
		f.budget = d
		return nil
	}
}

// WithTrialBound sets the bound of the trial division sieve
func WithTrialBound(bound int) Option {
	return func(f *Factorizer) error {
		if bound < 2 {
			return fmt.Errorf("trial division bound must be at least 2, got %d", bound)
		}
		f.primes = sieve(bound)
		return nil
	}
}

// New creates a Factorizer
func New(opts ...Option) (*Factorizer, error) {
	f := &Factorizer{}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	if f.primes == nil {
		f.primes = sieve(defaultTrialBound)
	}
	return f, nil
}

func sieve(bound int) []*big.Int {
	composite := make([]bool, bound+1)
	var primes []*big.Int
	for i := 2; i <= bound; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, big.NewInt(int64(i)))
		for j := i * i; j <= bound; j += i {
			composite[j] = true
		}
	}
	return primes
}

func (f *Factorizer) withBudget(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.budget > 0 {
		return context.WithTimeout(ctx, f.budget)
	}
	return context.WithCancel(ctx)
}

// Factor returns the complete factorization of n >= 1. When the budget or a
// deadline on ctx runs out it returns the primes found so far together with
// ErrFactorizationTimeout; plain cancellation returns ctx.Err(). The abandoned
// computation keeps running and its result is cached when it completes.
func (f *Factorizer) Factor(ctx context.Context, n *big.Int) (Factorization, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("cannot factor %v", n)
	}
	if v, ok := f.results.Load(n.String()); ok {
		return v.(Factorization), nil
	}
	ctx, cancel := f.withBudget(ctx)
	defer cancel()
	return f.factor(ctx, n)
}

func (f *Factorizer) factor(ctx context.Context, n *big.Int) (Factorization, error) {
	key := n.String()
	if v, ok := f.results.Load(key); ok {
		return v.(Factorization), nil
	}

	small, cofactor := f.trialDivide(n)
	if cofactor.Cmp(big.NewInt(1)) == 0 {
		f.results.Store(key, small)
		return small, nil
	}

	ch := f.group.DoChan(cofactor.String(), func() (interface{}, error) {
		start := time.Now()
		large, err := factorLarge(cofactor)
		if err != nil {
			return nil, err
		}
		log.Debugf("factored %d-bit cofactor in %v", cofactor.BitLen(), time.Since(start))
		f.results.Store(cofactor.String(), large)
		return large, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		full := merge(small, res.Val.(Factorization))
		f.results.Store(key, full)
		return full, nil
	case <-ctx.Done():
		if _, bounded := ctx.Deadline(); !bounded {
			return nil, fmt.Errorf("factoring %d-bit cofactor: %w", cofactor.BitLen(), ctx.Err())
		}
		return small, fmt.Errorf("%w: %d-bit cofactor left: %w", ErrFactorizationTimeout, cofactor.BitLen(), ctx.Err())
	}
}

// trialDivide strips the primes of the sieve from n
func (f *Factorizer) trialDivide(n *big.Int) (Factorization, *big.Int) {
	var out Factorization
	rest := new(big.Int).Set(n)
	q, r := new(big.Int), new(big.Int)
	for _, p := range f.primes {
		if new(big.Int).Mul(p, p).Cmp(rest) > 0 {
			break
		}
		e := 0
		for {
			q.QuoRem(rest, p, r)
			if r.Sign() != 0 {
				break
			}
			rest.Set(q)
			e++
		}
		if e > 0 {
			out = append(out, Factor{Prime: p, Exponent: e})
		}
	}
	if rest.Cmp(big.NewInt(1)) > 0 && len(f.primes) > 0 {
		last := f.primes[len(f.primes)-1]
		if new(big.Int).Mul(last, last).Cmp(rest) >= 0 {
			// no prime factor below sqrt(rest) remains
			out = merge(out, Factorization{{Prime: rest, Exponent: 1}})
			rest = big.NewInt(1)
		}
	}
	return out, rest
}

// factorLarge factors n, which has no small prime factors, with the
// ECM based factorization of lattigo.
func factorLarge(n *big.Int) (Factorization, error) {
	var out Factorization
	rest := new(big.Int).Set(n)
	one := big.NewInt(1)
	for rest.Cmp(one) > 0 {
		if factorization.IsPrime(rest) {
			return merge(out, Factorization{{Prime: new(big.Int).Set(rest), Exponent: 1}}), nil
		}
		progress := false
		for _, p := range factorization.GetFactors(rest) {
			if p.Cmp(one) <= 0 || !factorization.IsPrime(p) {
				continue
			}
			e := 0
			q, r := new(big.Int), new(big.Int)
			for {
				q.QuoRem(rest, p, r)
				if r.Sign() != 0 {
					break
				}
				rest.Set(q)
				e++
			}
			if e > 0 {
				out = merge(out, Factorization{{Prime: new(big.Int).Set(p), Exponent: e}})
				progress = true
			}
		}
		if !progress {
			return nil, fmt.Errorf("no prime factor found for %d-bit composite", rest.BitLen())
		}
	}
	return out, nil
}
