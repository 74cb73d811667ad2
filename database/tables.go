package database

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gogo/protobuf/proto"

	"github.com/ppopth/gfpoly/pb"
)

//go:embed conway.txt
var conwayTable string

//go:embed irreducible_gf2.txt
var minimalTermTable string

type conwayKey struct {
	p uint64
	m int
}

// Database holds reference entries: Conway polynomials by (p, m) and minimal-term
// irreducible polynomials over GF(2) by degree. A Database handed to an Oracle is
// never mutated again.
type Database struct {
	conway      map[conwayKey][]uint64 // ascending coefficients
	minimalTerm map[int][]int          // descending exponents
}

func NewDatabase() *Database {
	return &Database{
		conway:      make(map[conwayKey][]uint64),
		minimalTerm: make(map[int][]int),
	}
}

func parseUints(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	out := make([]uint64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// lines calls fn with the fields of every non-empty, non-comment line
func lines(text string, fn func(fields []string) error) error {
	sc := bufio.NewScanner(strings.NewReader(text))
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(strings.Fields(line)); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

// parseConway reads lines "p m c_0,...,c_m"
func (d *Database) parseConway(text string) error {
	return lines(text, func(fields []string) error {
		if len(fields) != 3 {
			return fmt.Errorf("expected 3 fields, got %d", len(fields))
		}
		p, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return err
		}
		m, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		coeffs, err := parseUints(fields[2])
		if err != nil {
			return err
		}
		return d.AddConway(p, m, coeffs)
	})
}

// AddConway adds C(p, m) given by its ascending coefficients
func (d *Database) AddConway(p uint64, m int, coeffs []uint64) error {
	if p < 2 || m < 1 || len(coeffs) != m+1 || coeffs[m] != 1 {
		return fmt.Errorf("malformed Conway entry for (%d, %d)", p, m)
	}
	for _, c := range coeffs {
		if c >= p {
			return fmt.Errorf("coefficient %d of the Conway entry for (%d, %d) is not reduced", c, p, m)
		}
	}
	d.conway[conwayKey{p, m}] = coeffs
	return nil
}

// parseMinimalTerm reads lines of descending exponents "n,e_1,...,0"
func (d *Database) parseMinimalTerm(text string) error {
	return lines(text, func(fields []string) error {
		if len(fields) != 1 {
			return fmt.Errorf("expected 1 field, got %d", len(fields))
		}
		exps, err := parseUints(fields[0])
		if err != nil {
			return err
		}
		degrees := make([]int, len(exps))
		for i, e := range exps {
			degrees[i] = int(e)
		}
		return d.AddMinimalTerm(degrees)
	})
}

// AddMinimalTerm adds the GF(2) polynomial with the given descending exponents
func (d *Database) AddMinimalTerm(exps []int) error {
	if len(exps) == 0 || exps[0] < 1 {
		return fmt.Errorf("malformed minimal-term entry %v", exps)
	}
	for i := 1; i < len(exps); i++ {
		if exps[i] < 0 || exps[i] >= exps[i-1] {
			return fmt.Errorf("exponents %v are not strictly descending", exps)
		}
	}
	d.minimalTerm[exps[0]] = exps
	return nil
}

// mergeProto adds the entries of a database file, overriding existing ones
func (d *Database) mergeProto(db *pb.Database) error {
	for _, e := range db.GetConway() {
		if err := d.AddConway(e.GetCharacteristic(), int(e.GetDegree()), e.GetCoefficients()); err != nil {
			return err
		}
	}
	for _, e := range db.GetMinimalTerm() {
		exps := make([]int, len(e.GetExponents())+1)
		exps[0] = int(e.GetDegree())
		for i, x := range e.GetExponents() {
			exps[i+1] = int(x)
		}
		if err := d.AddMinimalTerm(exps); err != nil {
			return err
		}
	}
	return nil
}

// Encode serialises the entries into the protobuf database format
func (d *Database) Encode() ([]byte, error) {
	return proto.Marshal(d.proto())
}

// proto lists the entries sorted by key
func (d *Database) proto() *pb.Database {
	db := &pb.Database{}
	keys := make([]conwayKey, 0, len(d.conway))
	for k := range d.conway {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b conwayKey) int {
		if a.p != b.p {
			if a.p < b.p {
				return -1
			}
			return 1
		}
		return a.m - b.m
	})
	for _, k := range keys {
		db.Conway = append(db.Conway, &pb.Database_Conway{
			Characteristic: proto.Uint64(k.p),
			Degree:         proto.Uint32(uint32(k.m)),
			Coefficients:   d.conway[k],
		})
	}
	degrees := make([]int, 0, len(d.minimalTerm))
	for n := range d.minimalTerm {
		degrees = append(degrees, n)
	}
	slices.Sort(degrees)
	for _, n := range degrees {
		exps := d.minimalTerm[n]
		rest := make([]uint32, len(exps)-1)
		for i, e := range exps[1:] {
			rest[i] = uint32(e)
		}
		db.MinimalTerm = append(db.MinimalTerm, &pb.Database_MinimalTerm{
			Degree:    proto.Uint32(uint32(n)),
			Exponents: rest,
		})
	}
	return db
}

func (d *Database) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	other, err := Decode(data)
	if err != nil {
		return fmt.Errorf("database file %s: %w", path, err)
	}
	maps.Copy(d.conway, other.conway)
	maps.Copy(d.minimalTerm, other.minimalTerm)
	log.Infof("merged %d Conway and %d minimal-term entries from %s", len(other.conway), len(other.minimalTerm), path)
	return nil
}

// Decode reads a database file
func Decode(data []byte) (*Database, error) {
	var db pb.Database
	if err := proto.Unmarshal(data, &db); err != nil {
		return nil, err
	}
	d := NewDatabase()
	if err := d.mergeProto(&db); err != nil {
		return nil, err
	}
	return d, nil
}

// Len returns the number of Conway and minimal-term entries
func (d *Database) Len() (conway, minimalTerm int) {
	return len(d.conway), len(d.minimalTerm)
}

// WriteText writes the entries in the line formats of the embedded tables
func (d *Database) WriteText(conway, minimalTerm io.Writer) error {
	pdb := d.proto()
	for _, e := range pdb.Conway {
		cs := make([]string, len(e.Coefficients))
		for i, c := range e.Coefficients {
			cs[i] = strconv.FormatUint(c, 10)
		}
		if _, err := fmt.Fprintf(conway, "%d %d %s\n", e.GetCharacteristic(), e.GetDegree(), strings.Join(cs, ",")); err != nil {
			return err
		}
	}
	for _, e := range pdb.MinimalTerm {
		es := []string{strconv.FormatUint(uint64(e.GetDegree()), 10)}
		for _, x := range e.Exponents {
			es = append(es, strconv.FormatUint(uint64(x), 10))
		}
		if _, err := fmt.Fprintln(minimalTerm, strings.Join(es, ",")); err != nil {
			return err
		}
	}
	return nil
}

func loadTables(files []string) (*Database, error) {
	d := NewDatabase()
	if err := d.parseConway(conwayTable); err != nil {
		return nil, fmt.Errorf("embedded Conway table: %w", err)
	}
	if err := d.parseMinimalTerm(minimalTermTable); err != nil {
		return nil, fmt.Errorf("embedded minimal-term table: %w", err)
	}
	for _, path := range files {
		if err := d.mergeFile(path); err != nil {
			return nil, err
		}
	}
	log.Debugf("loaded %d Conway and %d minimal-term entries", len(d.conway), len(d.minimalTerm))
	return d, nil
}
