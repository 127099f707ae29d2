package linear

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-numeric/pkg/numerr"
)

func sampleSystem(t *testing.T) *System {
	t.Helper()
	sys, err := NewSystem(
		[][]float64{{10, -1, 2}, {-1, 11, -1}, {2, -1, 10}},
		[]float64{6, 25, -11},
	)
	require.NoError(t, err)
	return sys
}

var sampleSolution = []float64{1.0432692307692308, 2.269230769230769, -1.0817307692307692}

func TestNewSystem_Validation(t *testing.T) {
	tests := []struct {
		name string
		a    [][]float64
		b    []float64
	}{
		{name: "too small", a: [][]float64{{1}}, b: []float64{1}},
		{name: "too large", a: make([][]float64, 6), b: make([]float64, 6)},
		{name: "short rhs", a: [][]float64{{1, 0}, {0, 1}}, b: []float64{1}},
		{name: "ragged row", a: [][]float64{{1, 0}, {0}}, b: []float64{1, 1}},
		{name: "zero diagonal", a: [][]float64{{0, 1}, {1, 1}}, b: []float64{1, 1}},
		{name: "nan coefficient", a: [][]float64{{1, math.NaN()}, {0, 1}}, b: []float64{1, 1}},
		{name: "infinite rhs", a: [][]float64{{1, 0}, {0, 1}}, b: []float64{1, math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSystem(tt.a, tt.b)
			require.Error(t, err)
			assert.ErrorIs(t, err, numerr.ErrConfiguration)
		})
	}
}

func TestNewSystem_CopiesInput(t *testing.T) {
	a := [][]float64{{4, 1}, {1, 3}}
	b := []float64{1, 2}
	sys, err := NewSystem(a, b)
	require.NoError(t, err)

	a[0][0] = 100
	b[1] = 100
	assert.Equal(t, [][]float64{{4, 1}, {1, 3}}, sys.A())
	assert.Equal(t, []float64{1, 2}, sys.B())

	got := sys.A()
	got[1][1] = -1
	assert.Equal(t, 3.0, sys.A()[1][1])
}

func TestFromAugmented(t *testing.T) {
	sys, err := FromAugmented([][]float64{{10, -1, 2, 6}, {-1, 11, -1, 25}, {2, -1, 10, -11}})
	require.NoError(t, err)
	assert.Equal(t, 3, sys.Size())
	assert.Equal(t, []float64{6, 25, -11}, sys.B())
	assert.Equal(t, []float64{2, -1, 10, -11}, sys.Augmented()[2])

	_, err = FromAugmented([][]float64{{1, 2}, {3, 4}})
	assert.ErrorIs(t, err, numerr.ErrConfiguration)
}

func TestCheckDominance(t *testing.T) {
	d := CheckDominance(sampleSystem(t))
	assert.True(t, d.OK)
	require.Len(t, d.Rows, 3)
	for i, row := range d.Rows {
		assert.Equal(t, i+1, row.Row)
		assert.True(t, row.OK)
	}
	assert.Equal(t, RowDominance{Row: 2, Diag: 11, Sum: 2, OK: true}, d.Rows[1])

	weak, err := NewSystem([][]float64{{1, 2}, {3, -1}}, []float64{3, 4})
	require.NoError(t, err)
	d = CheckDominance(weak)
	assert.False(t, d.OK)
	assert.Equal(t, RowDominance{Row: 1, Diag: 1, Sum: 2, OK: false}, d.Rows[0])
	assert.Equal(t, RowDominance{Row: 2, Diag: 1, Sum: 3, OK: false}, d.Rows[1])
}

func TestJacobiAndGaussSeidel_Converge(t *testing.T) {
	sys := sampleSystem(t)

	j, err := Jacobi(sys, 0.0001, 25)
	require.NoError(t, err)
	gs, err := GaussSeidel(sys, 0.0001, 25)
	require.NoError(t, err)

	assert.True(t, j.Converged)
	assert.True(t, gs.Converged)
	assert.Len(t, j.Iterations, 8)
	assert.Len(t, gs.Iterations, 5)
	assert.LessOrEqual(t, len(gs.Iterations), len(j.Iterations))

	for i, want := range sampleSolution {
		assert.InDelta(t, want, j.Final[i], 1e-3)
		assert.InDelta(t, want, gs.Final[i], 1e-3)
	}
	assert.Equal(t, gs.Iterations[len(gs.Iterations)-1].Values, gs.Final)
}

func TestIterative_HugeMaxIterConvergesEarly(t *testing.T) {
	sys := sampleSystem(t)

	for _, method := range []Method{MethodJacobi, MethodGaussSeidel} {
		t.Run(string(method), func(t *testing.T) {
			var res *Result
			var err error
			require.NotPanics(t, func() { res, err = Solve(method, sys, 0.0001, math.MaxInt/2) })
			require.NoError(t, err)
			assert.True(t, res.Converged)
			assert.Equal(t, math.MaxInt/2, res.MaxIter)
			assert.LessOrEqual(t, len(res.Iterations), 8)
		})
	}
}

func TestJacobi_FirstPassReadsOnlyPreviousPass(t *testing.T) {
	res, err := Jacobi(sampleSystem(t), 0.0001, 1)
	require.Error(t, err)
	require.Len(t, res.Iterations, 1)

	first := res.Iterations[0]
	assert.InDeltaSlice(t, []float64{0.6, 25.0 / 11, -1.1}, first.Values, 1e-12)
	for _, c := range first.Calcs {
		assert.False(t, c.UsesCurrentPass)
		for _, term := range c.Terms {
			assert.Zero(t, term.Value)
			assert.False(t, term.Current)
		}
	}
	assert.Equal(t, "(6 - -1(0.0000) - 2(0.0000)) / 10", first.Calcs[0].Expression())
}

func TestGaussSeidel_FirstPassSeesUpdatedValues(t *testing.T) {
	res, err := GaussSeidel(sampleSystem(t), 0.0001, 1)
	require.Error(t, err)
	require.Len(t, res.Iterations, 1)

	first := res.Iterations[0]
	y := (25 + 0.6) / 11
	z := (-11 - 2*0.6 + y) / 10
	assert.InDeltaSlice(t, []float64{0.6, y, z}, first.Values, 1e-12)

	assert.False(t, first.Calcs[0].UsesCurrentPass)
	require.True(t, first.Calcs[1].UsesCurrentPass)
	assert.Equal(t, Term{Col: 1, Variable: "x₁", Coeff: -1, Value: 0.6, Current: true}, first.Calcs[1].Terms[0])
	assert.Equal(t, Term{Col: 3, Variable: "z₃", Coeff: -1, Value: 0, Current: false}, first.Calcs[1].Terms[1])
	assert.Equal(t, "(25 - -1(0.6000) - -1(0.0000)) / 11", first.Calcs[1].Expression())
}

func TestGaussSeidel_SkipsToleranceOnFirstPass(t *testing.T) {
	// x = 1, y = 1 is reached on the first pass; the second pass confirms it.
	sys, err := NewSystem([][]float64{{1, 0}, {0, 1}}, []float64{1, 1})
	require.NoError(t, err)

	gs, err := GaussSeidel(sys, 10, 5)
	require.NoError(t, err)
	assert.Len(t, gs.Iterations, 2)

	j, err := Jacobi(sys, 10, 5)
	require.NoError(t, err)
	assert.Len(t, j.Iterations, 1)
}

func TestIterative_DoesNotConverge(t *testing.T) {
	sys, err := NewSystem([][]float64{{1, 2}, {3, 1}}, []float64{3, 4})
	require.NoError(t, err)

	for _, solve := range []func(*System, float64, int) (*Result, error){Jacobi, GaussSeidel} {
		res, err := solve(sys, 0.0001, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, numerr.ErrDidNotConverge)
		require.NotNil(t, res)
		assert.False(t, res.Converged)
		assert.Len(t, res.Iterations, 10)
		assert.Equal(t, 10, res.Iterations[9].Index)
	}
}

func TestIterative_StopsOnOverflow(t *testing.T) {
	sys, err := NewSystem([][]float64{{1e-300, 1e300}, {1e300, 1e-300}}, []float64{1, 1})
	require.NoError(t, err)

	res, err := Jacobi(sys, 0.0001, 25)
	require.Error(t, err)
	assert.ErrorIs(t, err, numerr.ErrDidNotConverge)
	assert.Less(t, len(res.Iterations), 25)
	for _, p := range res.Iterations {
		assert.True(t, allFinite(p.Values))
	}
	_, err = json.Marshal(res)
	assert.NoError(t, err)
}

func TestIterative_RejectsBadParams(t *testing.T) {
	sys := sampleSystem(t)

	_, err := Jacobi(sys, 0, 25)
	assert.ErrorIs(t, err, numerr.ErrConfiguration)
	_, err = GaussSeidel(sys, 0.001, 0)
	assert.ErrorIs(t, err, numerr.ErrConfiguration)
	_, err = Jacobi(nil, 0.001, 5)
	assert.ErrorIs(t, err, numerr.ErrConfiguration)
}

func TestSolveAndParseMethod(t *testing.T) {
	m, err := ParseMethod(" GS ")
	require.NoError(t, err)
	assert.Equal(t, MethodGaussSeidel, m)

	_, err = ParseMethod("sor")
	assert.ErrorIs(t, err, numerr.ErrConfiguration)

	res, err := Solve(MethodJacobi, sampleSystem(t), 0.0001, 25)
	require.NoError(t, err)
	assert.Equal(t, MethodJacobi, res.Method)
}

func TestFormulas(t *testing.T) {
	assert.Equal(t, []string{
		"x₁ = (6 + 1y₂ - 2z₃) / 10",
		"y₂ = (25 + 1x₁ + 1z₃) / 11",
		"z₃ = (-11 - 2x₁ + 1y₂) / 10",
	}, Formulas(sampleSystem(t)))

	sparse, err := NewSystem([][]float64{{2, 0}, {0.5, 4}}, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"x₁ = (1) / 2", "y₂ = (2 - 0.5x₁) / 4"}, Formulas(sparse))
}

func TestVariableName(t *testing.T) {
	assert.Equal(t, "x₁", VariableName(0))
	assert.Equal(t, "v₅", VariableName(4))
	assert.Equal(t, "x7", VariableName(6))
}

func TestDirect(t *testing.T) {
	sys := sampleSystem(t)
	x, err := Direct(sys)
	require.NoError(t, err)
	assert.InDeltaSlice(t, sampleSolution, x, 1e-9)
	assert.Less(t, sys.Residual(x), 1e-9)

	gs, err := GaussSeidel(sys, 0.0001, 25)
	require.NoError(t, err)
	assert.Less(t, sys.Residual(gs.Final), 1e-3)
}
