package factor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
)

// GroupOrder factors q^n - 1, the order of the multiplicative group of
// GF(q^n). The number is split into the cyclotomic values Phi_d(q) for d | n,
// which are factored separately.
func (f *Factorizer) GroupOrder(ctx context.Context, q *big.Int, n int) (Factorization, error) {
	if q.Cmp(big.NewInt(2)) < 0 || n < 1 {
		return nil, fmt.Errorf("invalid group order %v^%d - 1", q, n)
	}
	N := new(big.Int).Exp(q, big.NewInt(int64(n)), nil)
	N.Sub(N, big.NewInt(1))
	key := N.String()
	if v, ok := f.results.Load(key); ok {
		return v.(Factorization), nil
	}

	ctx, cancel := f.withBudget(ctx)
	defer cancel()

	var (
		out     Factorization
		timeout error
	)
	for _, d := range Divisors(n) {
		part, err := f.factor(ctx, Cyclotomic(d, q))
		if err != nil && !errors.Is(err, ErrFactorizationTimeout) {
			return nil, err
		}
		if err != nil {
			timeout = err
		}
		out = merge(out, part)
	}
	if timeout != nil {
		return out, timeout
	}
	f.results.Store(key, out)
	return out, nil
}

// Cyclotomic returns Phi_d(q), the d-th cyclotomic polynomial evaluated at q:
// the product of (q^e - 1)^mu(d/e) over e | d
func Cyclotomic(d int, q *big.Int) *big.Int {
	num, den := big.NewInt(1), big.NewInt(1)
	for _, e := range Divisors(d) {
		term := new(big.Int).Exp(q, big.NewInt(int64(e)), nil)
		term.Sub(term, big.NewInt(1))
		switch Mobius(d / e) {
		case 1:
			num.Mul(num, term)
		case -1:
			den.Mul(den, term)
		}
	}
	return num.Quo(num, den)
}

// Divisors returns the positive divisors of n in ascending order
func Divisors(n int) []int {
	var small, large []int
	for i := 1; i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		small = append(small, i)
		if i != n/i {
			large = append(large, n/i)
		}
	}
	for i := len(large) - 1; i >= 0; i-- {
		small = append(small, large[i])
	}
	return small
}

// PrimeDivisors returns the distinct primes dividing n in ascending order
func PrimeDivisors(n int) []int {
	var ps []int
	for p := 2; p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		ps = append(ps, p)
		for n%p == 0 {
			n /= p
		}
	}
	if n > 1 {
		ps = append(ps, n)
	}
	return ps
}

// Mobius returns the Moebius function mu(n)
func Mobius(n int) int {
	mu := 1
	for _, p := range PrimeDivisors(n) {
		if (n/p)%p == 0 {
			return 0
		}
		mu = -mu
	}
	return mu
}

// Totient returns Euler's phi of the factored integer
func (f Factorization) Totient() *big.Int {
	phi := big.NewInt(1)
	for _, pe := range f {
		pm1 := new(big.Int).Sub(pe.Prime, big.NewInt(1))
		phi.Mul(phi, pm1)
		phi.Mul(phi, new(big.Int).Exp(pe.Prime, big.NewInt(int64(pe.Exponent-1)), nil))
	}
	return phi
}
