// gendb computes Conway and minimal-term irreducible polynomials and writes them
// as a database file for gfpoly.WithDatabaseFile, or in the text format of the
// embedded tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/ppopth/gfpoly"
	"github.com/ppopth/gfpoly/database"
	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/poly"
)

var log = logging.Logger("gendb")

var (
	conwayFlag    = flag.String("conway", "", "Conway ranges per characteristic, e.g. 2:1-20,3:1-12")
	minTermFlag   = flag.String("minterm", "", "GF(2) minimal-term degree range, e.g. 1-2000")
	recomputeFlag = flag.Bool("recompute", false, "search minimal-term polynomials even when they are tabled")
	outputFlag    = flag.String("output", "gfpoly.db", "output database file")
	textDirFlag   = flag.String("text-dir", "", "write conway.txt and irreducible_gf2.txt into this directory instead")
	workersFlag   = flag.Int("workers", 0, "parallel candidate tests, 0 for GOMAXPROCS")
	budgetFlag    = flag.Duration("factor-budget", 0, "time limit of one group order factorization, 0 for none")
	timeoutFlag   = flag.Duration("timeout", 0, "overall time limit, 0 for none")
	verboseFlag   = flag.Bool("v", false, "verbose logging")
)

// parseRange parses "a-b" or "a"
func parseRange(s string) (int, int, error) {
	lo, hi, found := strings.Cut(s, "-")
	a, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", s)
	}
	b := a
	if found {
		if b, err = strconv.Atoi(hi); err != nil {
			return 0, 0, fmt.Errorf("invalid range %q", s)
		}
	}
	if a < 1 || b < a {
		return 0, 0, fmt.Errorf("invalid range %q", s)
	}
	return a, b, nil
}

type conwayRange struct {
	p      uint64
	lo, hi int
}

// parseConwayRanges parses "p:a-b,p:a-b"
func parseConwayRanges(s string) ([]conwayRange, error) {
	var ranges []conwayRange
	if s == "" {
		return nil, nil
	}
	for _, part := range strings.Split(s, ",") {
		ps, rs, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid Conway range %q, want p:a-b", part)
		}
		p, err := strconv.ParseUint(ps, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid characteristic %q", ps)
		}
		lo, hi, err := parseRange(rs)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, conwayRange{p, lo, hi})
	}
	return ranges, nil
}

func uint64Coeffs(f *poly.Poly) []uint64 {
	coeffs := make([]uint64, f.Degree()+1)
	for i, c := range f.Coeffs() {
		coeffs[i] = c.Int().Uint64()
	}
	return coeffs
}

func exponents(f *poly.Poly) []int {
	var exps []int
	for i := f.Degree(); i >= 0; i-- {
		if !f.Coeff(i).IsZero() {
			exps = append(exps, i)
		}
	}
	return exps
}

func run(ctx context.Context) error {
	conwayRanges, err := parseConwayRanges(*conwayFlag)
	if err != nil {
		return err
	}
	var minLo, minHi int
	if *minTermFlag != "" {
		if minLo, minHi, err = parseRange(*minTermFlag); err != nil {
			return err
		}
	}
	if len(conwayRanges) == 0 && *minTermFlag == "" {
		return fmt.Errorf("nothing to generate, set -conway or -minterm")
	}

	var opts []gfpoly.Option
	if *workersFlag > 0 {
		opts = append(opts, gfpoly.WithWorkers(*workersFlag))
	}
	if *budgetFlag > 0 {
		opts = append(opts, gfpoly.WithFactorBudget(*budgetFlag))
	}
	s, err := gfpoly.New(opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	db := database.NewDatabase()
	for _, r := range conwayRanges {
		for m := r.lo; m <= r.hi; m++ {
			start := time.Now()
			c, err := s.ConwayPoly(ctx, r.p, m, true)
			if err != nil {
				return fmt.Errorf("C(%d, %d): %w", r.p, m, err)
			}
			if err := db.AddConway(r.p, m, uint64Coeffs(c)); err != nil {
				return err
			}
			log.Infof("C(%d, %d) = %s in %v", r.p, m, c, time.Since(start))
		}
	}

	gf2 := field.MustPrimeField(2)
	queryOpts := []gfpoly.QueryOption{gfpoly.MinTerms()}
	if *recomputeFlag {
		queryOpts = append(queryOpts, gfpoly.WithoutDatabase())
	}
	for n := minLo; n >= 1 && n <= minHi; n++ {
		start := time.Now()
		f, err := s.IrreduciblePoly(ctx, gf2, n, queryOpts...)
		if err != nil {
			return fmt.Errorf("degree %d: %w", n, err)
		}
		if err := db.AddMinimalTerm(exponents(f)); err != nil {
			return err
		}
		log.Infof("degree %d: %s in %v", n, f, time.Since(start))
	}

	conway, minimalTerm := db.Len()
	if *textDirFlag != "" {
		if err := writeText(db, *textDirFlag); err != nil {
			return err
		}
		fmt.Printf("wrote %d Conway and %d minimal-term entries to %s\n", conway, minimalTerm, *textDirFlag)
		return nil
	}
	data, err := db.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outputFlag, data, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %d Conway and %d minimal-term entries to %s\n", conway, minimalTerm, *outputFlag)
	return nil
}

func writeText(db *database.Database, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	conway, err := os.Create(filepath.Join(dir, "conway.txt"))
	if err != nil {
		return err
	}
	defer conway.Close()
	minimalTerm, err := os.Create(filepath.Join(dir, "irreducible_gf2.txt"))
	if err != nil {
		return err
	}
	defer minimalTerm.Close()

	fmt.Fprintln(conway, "# Conway polynomials C(p,m), one per line: p m c_0,c_1,...,c_m (ascending coefficients)")
	fmt.Fprintln(minimalTerm, "# Lexicographically first irreducible polynomials over GF(2) with the fewest")
	fmt.Fprintln(minimalTerm, "# non-zero terms, one per line as descending exponents.")
	if err := db.WriteText(conway, minimalTerm); err != nil {
		return err
	}
	if err := conway.Close(); err != nil {
		return err
	}
	return minimalTerm.Close()
}

func main() {
	flag.Parse()
	if *verboseFlag {
		logging.SetAllLoggers(logging.LevelDebug)
	} else {
		logging.SetAllLoggers(logging.LevelWarn)
		logging.SetLogLevel("gendb", "info")
	}

	ctx := context.Background()
	if *timeoutFlag > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutFlag)
		defer cancel()
	}
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
