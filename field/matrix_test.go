package field

import (
	"errors"
	"testing"
)

func matrixOf(field Field, rows [][]uint64) [][]Element {
	A := make([][]Element, len(rows))
	for i, row := range rows {
		A[i] = make([]Element, len(row))
		for j, v := range row {
			A[i][j] = field.FromUint64(v)
		}
	}
	return A
}

func TestRank(t *testing.T) {
	field := MustPrimeField(17)
	tests := []struct {
		name string
		rows [][]uint64
		want int
	}{
		// determinant -51 = -3 * 17
		{"singular_mod_17", [][]uint64{{2, 3, 1}, {4, 1, 0}, {5, 6, 7}}, 2},
		// determinant -61, a unit mod 17
		{"full_rank", [][]uint64{{2, 3, 1}, {4, 1, 0}, {5, 6, 8}}, 3},
		{"multiple_rows", [][]uint64{{1, 2}, {2, 4}}, 1},
		{"wide", [][]uint64{{1, 0, 5, 3}, {0, 1, 2, 2}}, 2},
		{"zero", [][]uint64{{0, 0}, {0, 0}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			A := matrixOf(field, tt.rows)
			if got := Rank(A); got != tt.want {
				t.Errorf("Rank = %d, want %d", got, tt.want)
			}
			// Rank works on a copy
			if !A[0][0].Equal(field.FromUint64(tt.rows[0][0])) {
				t.Errorf("Rank modified its input")
			}
		})
	}
}

func TestSolve(t *testing.T) {
	field := MustPrimeField(17)

	// 3 equations, 2 unknowns, consistent: x = 3, y = 5
	A := matrixOf(field, [][]uint64{{1, 1}, {2, 1}, {1, 3}})
	b := []Element{field.FromUint64(8), field.FromUint64(11), field.FromUint64(18)}
	x, err := Solve(A, b, field)
	if err != nil {
		t.Fatal(err)
	}
	if x[0].Int().Int64() != 3 || x[1].Int().Int64() != 5 {
		t.Errorf("solution = (%s, %s), expected (3, 5)", x[0], x[1])
	}

	b[2] = field.FromUint64(2)
	if _, err := Solve(A, b, field); !errors.Is(err, ErrInconsistent) {
		t.Errorf("expected ErrInconsistent, got %v", err)
	}
}

func TestSolveOverExtensionField(t *testing.T) {
	field := setupGF9(t)
	A := [][]Element{{field.FromUint64(3), field.One()}, {field.One(), field.Zero()}}
	want := []Element{field.FromUint64(5), field.FromUint64(7)}
	b := make([]Element, 2)
	for i := range A {
		b[i] = A[i][0].Mul(want[0]).Add(A[i][1].Mul(want[1]))
	}
	x, err := Solve(A, b, field)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if !x[i].Equal(want[i]) {
			t.Errorf("x[%d] = %s, expected %s", i, x[i], want[i])
		}
	}
}

func TestIsLinearlyIndependent(t *testing.T) {
	field := MustPrimeField(101)
	tests := []struct {
		name    string
		vectors [][]uint64
		want    bool
	}{
		{"empty", nil, true},
		{"standard_basis", [][]uint64{{1, 0, 0}, {0, 1, 0}}, true},
		{"multiple", [][]uint64{{1, 2, 3}, {2, 4, 6}}, false},
		{"too_many", [][]uint64{{1, 0}, {0, 1}, {1, 1}}, false},
		{"zero_vector", [][]uint64{{0, 0, 0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLinearlyIndependent(matrixOf(field, tt.vectors)); got != tt.want {
				t.Errorf("IsLinearlyIndependent = %v, want %v", got, tt.want)
			}
		})
	}
}
