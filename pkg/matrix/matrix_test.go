package matrix

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsNonPositiveSize(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
}

func TestSolve_Dense(t *testing.T) {
	m, err := FromDense(
		[][]float64{{10, -1, 2}, {-1, 11, -1}, {2, -1, 10}},
		[]float64{6, 25, -11},
	)
	require.NoError(t, err)
	defer m.Destroy()

	require.NoError(t, m.Solve())
	sol := m.Solution()
	assert.InDelta(t, 1.0432692307692308, sol[1], 1e-9)
	assert.InDelta(t, 2.269230769230769, sol[2], 1e-9)
	assert.InDelta(t, -1.0817307692307692, sol[3], 1e-9)
}

func TestFromDense_RejectsBadShape(t *testing.T) {
	tests := []struct {
		name    string
		a       [][]float64
		b       []float64
		wantMsg string
	}{
		{name: "short rhs", a: [][]float64{{1, 0}, {0, 1}}, b: []float64{1}, wantMsg: "rhs length 1"},
		{name: "long rhs", a: [][]float64{{1, 0}, {0, 1}}, b: []float64{1, 2, 3}, wantMsg: "rhs length 3"},
		{name: "ragged row", a: [][]float64{{1, 0}, {0, 1, 5}}, b: []float64{1, 2}, wantMsg: "row 2 has 3 columns"},
		{name: "not square", a: [][]float64{{1}, {0}}, b: []float64{1, 2}, wantMsg: "row 1 has 1 columns"},
		{name: "empty", a: nil, b: nil, wantMsg: "size must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromDense(tt.a, tt.b)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestAddElement_Bounds(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	defer m.Destroy()

	assert.Error(t, m.AddElement(0, 1, 1))
	assert.Error(t, m.AddElement(1, 3, 1))
	assert.Error(t, m.AddRHS(3, 1))
	assert.NoError(t, m.AddElement(2, 2, 1))
}

func TestClear_Reuses(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	defer m.Destroy()

	require.NoError(t, m.AddElement(1, 1, 2))
	require.NoError(t, m.AddElement(2, 2, 4))
	require.NoError(t, m.AddRHS(1, 2))
	require.NoError(t, m.AddRHS(2, 8))
	require.NoError(t, m.Solve())
	assert.InDelta(t, 1, m.Solution()[1], 1e-12)
	assert.InDelta(t, 2, m.Solution()[2], 1e-12)

	m.Clear()
	assert.Equal(t, []float64{0, 0, 0}, m.RHS())
	require.NoError(t, m.AddElement(1, 1, 1))
	require.NoError(t, m.AddElement(2, 2, 1))
	require.NoError(t, m.AddRHS(1, 5))
	require.NoError(t, m.AddRHS(2, 6))
	require.NoError(t, m.Solve())
	assert.InDelta(t, 5, m.Solution()[1], 1e-12)
}

func TestPrintSystem(t *testing.T) {
	m, err := FromDense([][]float64{{4, 1}, {0, 3}}, []float64{1, 2})
	require.NoError(t, err)
	defer m.Destroy()

	var buf bytes.Buffer
	m.PrintSystem(&buf)
	out := buf.String()
	assert.Contains(t, out, "System (2x2):")
	assert.Contains(t, out, "Equation 1:  +4*x1  +1*x2 = 1")
	assert.Contains(t, out, "Equation 2:  +3*x2 = 2")
}
