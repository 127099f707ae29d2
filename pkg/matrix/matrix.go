package matrix

import (
	"fmt"
	"io"

	"github.com/edp1096/sparse"
)

// Matrix is a real square system A·x = rhs backed by a sparse LU solver.
// Rows and columns are 1-based, as in the underlying package.
type Matrix struct {
	Size     int
	matrix   *sparse.Matrix
	rhs      []float64
	solution []float64
	config   *sparse.Configuration
}

func New(size int) (*Matrix, error) {
	if size <= 0 {
		return nil, fmt.Errorf("matrix size must be positive, got %d", size)
	}

	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           false,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	m := &Matrix{
		Size:     size,
		matrix:   mat,
		rhs:      make([]float64, size+1), // 1-based indexing
		solution: make([]float64, size+1),
		config:   config,
	}
	m.setupElements()
	return m, nil
}

// Systems here are small and dense, so every element is allocated up front.
func (m *Matrix) setupElements() {
	for i := 1; i <= m.Size; i++ {
		for j := 1; j <= m.Size; j++ {
			m.matrix.GetElement(int64(i), int64(j))
		}
	}
}

// FromDense loads a 0-based dense system into a new Matrix. a must be
// square and b must have one entry per row.
func FromDense(a [][]float64, b []float64) (*Matrix, error) {
	if len(b) != len(a) {
		return nil, fmt.Errorf("rhs length %d does not match %d rows", len(b), len(a))
	}
	for i, row := range a {
		if len(row) != len(a) {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i+1, len(row), len(a))
		}
	}

	m, err := New(len(a))
	if err != nil {
		return nil, err
	}
	for i, row := range a {
		for j, v := range row {
			if v == 0 {
				continue
			}
			if err := m.AddElement(i+1, j+1, v); err != nil {
				m.Destroy()
				return nil, err
			}
		}
		if err := m.AddRHS(i+1, b[i]); err != nil {
			m.Destroy()
			return nil, err
		}
	}
	return m, nil
}

func (m *Matrix) inBounds(i int) bool {
	return i > 0 && i <= m.Size
}

func (m *Matrix) AddElement(i, j int, value float64) error {
	if !m.inBounds(i) || !m.inBounds(j) {
		return fmt.Errorf("matrix index out of bounds (i=%d, j=%d, size=%d)", i, j, m.Size)
	}
	m.matrix.GetElement(int64(i), int64(j)).Real += value
	return nil
}

func (m *Matrix) AddRHS(i int, value float64) error {
	if !m.inBounds(i) {
		return fmt.Errorf("rhs index out of bounds (i=%d, size=%d)", i, m.Size)
	}
	m.rhs[i] += value
	return nil
}

func (m *Matrix) Clear() {
	m.matrix.Clear()
	for i := range m.rhs {
		m.rhs[i] = 0
	}
}

// Solve factors the matrix and solves for the current right-hand side.
func (m *Matrix) Solve() error {
	err := m.matrix.Factor()
	if err != nil {
		return fmt.Errorf("matrix factorization failed: %v", err)
	}

	m.solution, err = m.matrix.Solve(m.rhs)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %v", err)
	}
	return nil
}

func (m *Matrix) RHS() []float64 {
	return m.rhs
}

// Solution is 1-based; index 0 is unused.
func (m *Matrix) Solution() []float64 {
	return m.solution
}

// PrintSystem writes the equations currently loaded.
func (m *Matrix) PrintSystem(w io.Writer) {
	fmt.Fprintf(w, "System (%dx%d):\n", m.Size, m.Size)
	for i := 1; i <= m.Size; i++ {
		fmt.Fprintf(w, "Equation %d:", i)
		for j := 1; j <= m.Size; j++ {
			if v := m.matrix.GetElement(int64(i), int64(j)).Real; v != 0 {
				fmt.Fprintf(w, "  %+g*x%d", v, j)
			}
		}
		fmt.Fprintf(w, " = %g\n", m.rhs[i])
	}
}

func (m *Matrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}
