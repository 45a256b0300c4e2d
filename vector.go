package circus

import "sort"

// Vector is a sparse feature vector: column index → non-negative count.
type Vector map[int]int

// Dense expands the vector to a dense float64 slice of the given width.
func (v Vector) Dense(width int) []float64 {
	out := make([]float64, width)
	for col, n := range v {
		if col < width {
			out[col] = float64(n)
		}
	}
	return out
}

// Triple is one (row, column, count) entry of a sparse matrix stream.
type Triple struct {
	Row, Col, Count int
}

// Matrix is an ordered sequence of sparse feature vectors with a consistent
// width. Rows align 1:1 with the molecules that produced them.
type Matrix struct {
	width int
	rows  []Vector
}

// NewMatrix wraps rows at the given width.
func NewMatrix(width int, rows []Vector) *Matrix {
	return &Matrix{width: width, rows: rows}
}

// Rows reports the number of rows. Complexity: O(1).
func (m *Matrix) Rows() int { return len(m.rows) }

// Width reports the column count. Complexity: O(1).
func (m *Matrix) Width() int { return m.width }

// Row returns the sparse vector of row i. The returned map is shared; treat
// it as read-only.
func (m *Matrix) Row(i int) Vector { return m.rows[i] }

// Dense expands the matrix to dense [row][col] float64 form.
func (m *Matrix) Dense() [][]float64 {
	out := make([][]float64, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.Dense(m.width)
	}
	return out
}

// Triples streams the matrix as sorted (row, col, count) entries for
// interchange with ML frameworks.
func (m *Matrix) Triples() []Triple {
	out := make([]Triple, 0, len(m.rows))
	for i, r := range m.rows {
		cols := make([]int, 0, len(r))
		for col := range r {
			cols = append(cols, col)
		}
		sort.Ints(cols)
		for _, col := range cols {
			out = append(out, Triple{Row: i, Col: col, Count: r[col]})
		}
	}
	return out
}
