package tester

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ppopth/gfpoly/cache"
	"github.com/ppopth/gfpoly/enumerate"
	"github.com/ppopth/gfpoly/factor"
	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/poly"
)

func mustTester(t *testing.T, opts ...Option) *Tester {
	t.Helper()
	tt, err := New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return tt
}

func mustField(t *testing.T, name string) field.Field {
	t.Helper()
	switch name {
	case "GF(2)":
		return field.MustPrimeField(2)
	case "GF(3)":
		return field.MustPrimeField(3)
	case "GF(5)":
		return field.MustPrimeField(5)
	case "GF(4)":
		f, err := field.NewBinaryField(2, big.NewInt(0b111))
		if err != nil {
			t.Fatal(err)
		}
		return f
	case "GF(9)":
		f, err := field.NewExtensionField(3, []uint64{2, 2, 1})
		if err != nil {
			t.Fatal(err)
		}
		return f
	}
	t.Fatalf("unknown field %s", name)
	return nil
}

// irreducibleCount is (1/n) sum_{d | n} mu(d) q^(n/d)
func irreducibleCount(q int64, n int) int64 {
	sum := new(big.Int)
	for _, d := range factor.Divisors(n) {
		term := new(big.Int).Exp(big.NewInt(q), big.NewInt(int64(n/d)), nil)
		term.Mul(term, big.NewInt(int64(factor.Mobius(d))))
		sum.Add(sum, term)
	}
	return sum.Quo(sum, big.NewInt(int64(n))).Int64()
}

// primitiveCount is phi(q^n - 1) / n
func primitiveCount(t *testing.T, q int64, n int) int64 {
	f, err := factor.New()
	if err != nil {
		t.Fatal(err)
	}
	order, err := f.GroupOrder(context.Background(), big.NewInt(q), n)
	if err != nil {
		t.Fatal(err)
	}
	phi := order.Totient()
	return phi.Quo(phi, big.NewInt(int64(n))).Int64()
}

func TestCounts(t *testing.T) {
	tests := []struct {
		field   string
		q       int64
		degrees []int
	}{
		{"GF(2)", 2, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"GF(3)", 3, []int{1, 2, 3, 4, 5}},
		{"GF(5)", 5, []int{1, 2, 3}},
		{"GF(4)", 4, []int{1, 2, 3}},
		{"GF(9)", 9, []int{1, 2}},
	}
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := mustField(t, tt.field)
			ts := mustTester(t)
			for _, n := range tt.degrees {
				e, err := enumerate.New(f, n)
				if err != nil {
					t.Fatal(err)
				}
				var irreducible, primitive int64
				for p := range e.All() {
					irr, err := ts.IsIrreducible(p)
					if err != nil {
						t.Fatal(err)
					}
					prim, err := ts.Check(ctx, p, Primitive)
					if err != nil {
						t.Fatal(err)
					}
					if prim && !irr {
						t.Errorf("%s is primitive but not irreducible", p)
					}
					if irr {
						irreducible++
					}
					if prim {
						primitive++
					}
				}
				if want := irreducibleCount(tt.q, n); irreducible != want {
					t.Errorf("degree %d: %d irreducible, want %d", n, irreducible, want)
				}
				if want := primitiveCount(t, tt.q, n); primitive != want {
					t.Errorf("degree %d: %d primitive, want %d", n, primitive, want)
				}
			}
		})
	}
}

func TestKnownPolynomials(t *testing.T) {
	gf7 := field.MustPrimeField(7)
	gf2 := field.MustPrimeField(2)
	x9p2, _ := poly.FromDegrees(gf7, []int{9, 0}, []uint64{1, 2})
	x9p1, _ := poly.FromDegrees(gf7, []int{9, 0}, nil)
	x9x1, _ := poly.FromDegrees(gf7, []int{9, 1, 0}, nil)
	aes, _ := poly.FromDegrees(gf2, []int{8, 4, 3, 1, 0}, nil)
	conway8, _ := poly.FromDegrees(gf2, []int{8, 4, 3, 2, 0}, nil)

	tests := []struct {
		p           *poly.Poly
		irreducible bool
		primitive   bool
	}{
		{x9p2, true, false},
		{x9p1, false, false},
		{x9x1, true, false},
		{aes, true, false},
		{conway8, true, true},
	}
	ts := mustTester(t)
	for _, tt := range tests {
		irr, err := ts.IsIrreducible(tt.p)
		if err != nil {
			t.Fatal(err)
		}
		if irr != tt.irreducible {
			t.Errorf("IsIrreducible(%s) = %v", tt.p, irr)
		}
		prim, err := ts.Check(context.Background(), tt.p, Primitive)
		if err != nil {
			t.Fatal(err)
		}
		if prim != tt.primitive {
			t.Errorf("primitive(%s) = %v", tt.p, prim)
		}
	}
}

func TestErrors(t *testing.T) {
	gf3 := field.MustPrimeField(3)
	ts := mustTester(t)

	for _, p := range []*poly.Poly{poly.Zero(gf3), poly.One(gf3)} {
		if _, err := ts.IsIrreducible(p); !errors.Is(err, ErrInvalidDegree) {
			t.Errorf("IsIrreducible(%s): expected ErrInvalidDegree, got %v", p, err)
		}
	}
	if _, err := ts.IsIrreducible(nil); !errors.Is(err, ErrDomainMismatch) {
		t.Errorf("expected ErrDomainMismatch, got %v", err)
	}

	reducible := poly.FromUint64s(gf3, 2, 0, 1) // x^2 - 1
	if _, err := ts.IsPrimitive(context.Background(), reducible); !errors.Is(err, ErrNotIrreducible) {
		t.Errorf("expected ErrNotIrreducible, got %v", err)
	}
	if ok, err := ts.Check(context.Background(), reducible, Primitive); ok || err != nil {
		t.Errorf("Check = %v, %v", ok, err)
	}
}

func TestDegreeOne(t *testing.T) {
	gf2 := field.MustPrimeField(2)
	ts := mustTester(t)
	ctx := context.Background()

	x := poly.X(gf2)
	xp1 := poly.FromUint64s(gf2, 1, 1)
	for _, p := range []*poly.Poly{x, xp1} {
		if ok, err := ts.IsIrreducible(p); !ok || err != nil {
			t.Errorf("IsIrreducible(%s) = %v, %v", p, ok, err)
		}
	}
	if ok, _ := ts.IsPrimitive(ctx, x); ok {
		t.Errorf("x is not primitive")
	}
	if ok, _ := ts.IsPrimitive(ctx, xp1); !ok {
		t.Errorf("x + 1 is primitive over GF(2)")
	}
}

func TestMemoisation(t *testing.T) {
	c, err := cache.New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ts := mustTester(t, WithCache(c))

	p := poly.FromUint64s(field.MustPrimeField(3), 1, 0, 1) // x^2 + 1
	for i := 0; i < 3; i++ {
		ok, err := ts.IsIrreducible(p)
		if err != nil || !ok {
			t.Fatalf("IsIrreducible = %v, %v", ok, err)
		}
	}
	if st := c.Stats(); st.Computes != 1 || st.Hits != 2 {
		t.Errorf("stats = %+v", st)
	}
	if c.Lookup(p.Key(), Irreducible) != cache.Yes {
		t.Errorf("outcome not cached")
	}
}

func TestLargeBinary(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping degree 1001 test in short mode")
	}
	gf2 := field.MustPrimeField(2)
	ts := mustTester(t)

	good, _ := poly.FromDegrees(gf2, []int{1001, 17, 0}, nil)
	bad, _ := poly.FromDegrees(gf2, []int{1001, 2, 0}, nil)
	if ok, err := ts.IsIrreducible(good); !ok || err != nil {
		t.Errorf("IsIrreducible(%s) = %v, %v", good, ok, err)
	}
	if ok, err := ts.IsIrreducible(bad); ok || err != nil {
		t.Errorf("IsIrreducible(%s) = %v, %v", bad, ok, err)
	}
}

func TestPrimitiveTimeout(t *testing.T) {
	gf2 := field.MustPrimeField(2)
	// 2^67 - 1 = 193707721 * 761838257287 needs more than trial division
	p, _ := poly.FromDegrees(gf2, []int{67, 5, 2, 1, 0}, nil)
	ts := mustTester(t)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	ok, err := ts.IsPrimitive(ctx, p)
	switch {
	case errors.Is(err, factor.ErrFactorizationTimeout):
		if ts.Cache().Lookup(p.Key(), Primitive) == cache.No {
			t.Errorf("interrupted test must not be cached as a failure")
		}
	case err != nil:
		t.Fatal(err)
	case !ok:
		t.Errorf("%s should be primitive", p)
	}

	ok, err = ts.IsPrimitive(context.Background(), p)
	if err != nil || !ok {
		t.Errorf("IsPrimitive = %v, %v", ok, err)
	}
}

func TestPrimitiveCancelled(t *testing.T) {
	gf2 := field.MustPrimeField(2)
	p, _ := poly.FromDegrees(gf2, []int{67, 5, 2, 1, 0}, nil)
	ts := mustTester(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ts.IsPrimitive(ctx, p); err != nil {
		if errors.Is(err, factor.ErrFactorizationTimeout) {
			t.Errorf("cancellation without a deadline is not a timeout: %v", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	}
}

// A caller giving up must not fail another caller testing the same polynomial
func TestPrimitiveSharedByCallers(t *testing.T) {
	gf2 := field.MustPrimeField(2)
	p, _ := poly.FromDegrees(gf2, []int{67, 5, 2, 1, 0}, nil)

	for i := 0; i < 20; i++ {
		ts := mustTester(t)
		ctx, cancel := context.WithCancel(context.Background())

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := ts.IsPrimitive(ctx, p)
			if err != nil && !errors.Is(err, context.Canceled) {
				t.Errorf("cancelled caller: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			ok, err := ts.IsPrimitive(context.Background(), p)
			if err != nil || !ok {
				t.Errorf("live caller: IsPrimitive = %v, %v", ok, err)
			}
		}()
		time.Sleep(time.Duration(i) * 100 * time.Microsecond)
		cancel()
		wg.Wait()
	}
}
