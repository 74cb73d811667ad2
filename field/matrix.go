package field

import (
	"errors"
	"fmt"
)

// ErrInconsistent is returned by Solve when the system has no solution.
var ErrInconsistent = errors.New("inconsistent linear system")

// Matrix operations over finite fields. Matrices are row-major.

func cloneMatrix(A [][]Element) [][]Element {
	B := make([][]Element, len(A))
	for i := range A {
		B[i] = make([]Element, len(A[i]))
		for j := range A[i] {
			B[i][j] = A[i][j].Clone()
		}
	}
	return B
}

// rowEchelon brings A into reduced row echelon form in place and returns the
// pivot column of every non-zero row. Only the first cols columns are used as
// pivots; the remaining columns are carried along.
func rowEchelon(A [][]Element, cols int) []int {
	var pivots []int
	rank := 0
	for col := 0; col < cols && rank < len(A); col++ {
		pivot := -1
		for i := rank; i < len(A); i++ {
			if !A[i][col].IsZero() {
				pivot = i
				break
			}
		}
		if pivot == -1 {
			continue
		}
		A[rank], A[pivot] = A[pivot], A[rank]

		inv := A[rank][col].Inv()
		for j := col; j < len(A[rank]); j++ {
			A[rank][j] = A[rank][j].Mul(inv)
		}
		for i := range A {
			if i == rank || A[i][col].IsZero() {
				continue
			}
			factor := A[i][col].Clone()
			for j := col; j < len(A[i]); j++ {
				A[i][j] = A[i][j].Sub(factor.Mul(A[rank][j]))
			}
		}
		pivots = append(pivots, col)
		rank++
	}
	return pivots
}

// Rank returns the rank of the matrix
func Rank(A [][]Element) int {
	if len(A) == 0 {
		return 0
	}
	return len(rowEchelon(cloneMatrix(A), len(A[0])))
}

// IsLinearlyIndependent checks if the list of field element vectors is linearly independent.
func IsLinearlyIndependent(vectors [][]Element) bool {
	if len(vectors) == 0 {
		return true
	}
	if len(vectors) > len(vectors[0]) {
		return false
	}
	return Rank(vectors) == len(vectors)
}

// Solve returns one solution x of A x = b, where A has len(b) rows. Free
// variables are set to zero. It returns ErrInconsistent when no solution
// exists.
func Solve(A [][]Element, b []Element, field Field) ([]Element, error) {
	if len(A) != len(b) {
		return nil, fmt.Errorf("matrix has %d rows but right-hand side has %d entries", len(A), len(b))
	}
	if len(A) == 0 {
		return nil, nil
	}
	cols := len(A[0])

	aug := make([][]Element, len(A))
	for i := range A {
		aug[i] = make([]Element, cols+1)
		for j := range A[i] {
			aug[i][j] = A[i][j].Clone()
		}
		aug[i][cols] = b[i].Clone()
	}

	pivots := rowEchelon(aug, cols)
	for i := len(pivots); i < len(aug); i++ {
		if !aug[i][cols].IsZero() {
			return nil, ErrInconsistent
		}
	}

	x := make([]Element, cols)
	for j := range x {
		x[j] = field.Zero()
	}
	for i, col := range pivots {
		x[col] = aug[i][cols]
	}
	return x, nil
}
