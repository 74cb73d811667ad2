// bench-search compares the reference table lookup of fewest-terms irreducible
// polynomials over GF(2) with the manual search for the same polynomial.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	logging "github.com/ipfs/go-log/v2"

	"github.com/ppopth/gfpoly"
	"github.com/ppopth/gfpoly/field"
)

// BenchmarkResult stores the timings of one degree
type BenchmarkResult struct {
	Degree     int           `json:"degree"`
	Iterations int           `json:"iterations"`
	Polynomial string        `json:"polynomial"`
	Terms      int           `json:"terms"`
	Lookup     time.Duration `json:"lookup_ns"` // Average time of a table lookup
	Search     time.Duration `json:"search_ns"` // Average time of a manual search with a cold cache
	Match      bool          `json:"match"`     // Whether both methods agree
}

// Report is the JSON document written by the benchmark
type Report struct {
	Workers int               `json:"workers"`
	Results []BenchmarkResult `json:"results"`
}

func parseDegrees(s string) ([]int, error) {
	var degrees []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid degree %q", part)
		}
		degrees = append(degrees, n)
	}
	return degrees, nil
}

// writeChart renders the lookup and search times per degree as a bar chart
func writeChart(path string, report Report) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Fewest-terms irreducible polynomials over GF(2)",
			Subtitle: "table lookup vs manual search",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "degree"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms", Type: "log"}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true)},
			},
		}),
	)

	degrees := make([]string, len(report.Results))
	lookup := make([]opts.BarData, len(report.Results))
	search := make([]opts.BarData, len(report.Results))
	for i, r := range report.Results {
		degrees[i] = strconv.Itoa(r.Degree)
		lookup[i] = opts.BarData{Value: float64(r.Lookup) / float64(time.Millisecond)}
		search[i] = opts.BarData{Value: float64(r.Search) / float64(time.Millisecond)}
	}
	bar.SetXAxis(degrees).
		AddSeries("lookup", lookup).
		AddSeries("search", search)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := bar.Render(f); err != nil {
		return err
	}
	return f.Close()
}

func main() {
	degreesFlag := flag.String("degrees", "8,64,127,256,521,1001", "Comma-separated polynomial degrees")
	iterations := flag.Int("iterations", 3, "Number of iterations per degree")
	workers := flag.Int("workers", 0, "Parallel candidate tests, 0 for GOMAXPROCS")
	outputFile := flag.String("output", "search_benchmark.json", "Output file for benchmark results")
	chartFile := flag.String("chart", "", "Optional HTML file for a chart of the results")
	flag.Parse()
	logging.SetAllLoggers(logging.LevelWarn)

	degrees, err := parseDegrees(*degreesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *iterations < 1 {
		fmt.Fprintf(os.Stderr, "Error: iterations must be positive\n")
		os.Exit(1)
	}

	var opts []gfpoly.Option
	if *workers > 0 {
		opts = append(opts, gfpoly.WithWorkers(*workers))
	}
	s, err := gfpoly.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create the service: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	ctx := context.Background()
	gf2 := field.MustPrimeField(2)
	report := Report{Workers: *workers}

	for _, n := range degrees {
		result := BenchmarkResult{Degree: n, Iterations: *iterations}
		fmt.Printf("Degree %d: ", n)

		start := time.Now()
		for i := 0; i < *iterations; i++ {
			f, err := s.IrreduciblePoly(ctx, gf2, n, gfpoly.MinTerms())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Lookup of degree %d failed: %v\n", n, err)
				os.Exit(1)
			}
			result.Polynomial = f.String()
			result.Terms = f.Terms()
		}
		result.Lookup = time.Since(start) / time.Duration(*iterations)

		var searched string
		start = time.Now()
		for i := 0; i < *iterations; i++ {
			s.Cache().Clear()
			f, err := s.IrreduciblePoly(ctx, gf2, n, gfpoly.MinTerms(), gfpoly.WithoutDatabase())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Search of degree %d failed: %v\n", n, err)
				os.Exit(1)
			}
			searched = f.String()
		}
		result.Search = time.Since(start) / time.Duration(*iterations)
		result.Match = searched == result.Polynomial

		fmt.Printf("lookup %v, search %v, match %v\n", result.Lookup, result.Search, result.Match)
		report.Results = append(report.Results, result)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal results: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write results to file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nBenchmark results written to: %s\n", *outputFile)

	if *chartFile != "" {
		if err := writeChart(*chartFile, report); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write the chart: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Chart written to: %s\n", *chartFile)
	}
}
