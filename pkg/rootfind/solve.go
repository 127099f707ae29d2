package rootfind

// Params carries the caller inputs of a root-finding run.
type Params struct {
	Decimals int
	X0, X1   float64 // secant seeds; ignored by the bracketing methods
}

// Solve dispatches to the requested method.
func Solve(method Method, f Function, p Params) (*SolveResult, error) {
	m, err := ParseMethod(string(method))
	if err != nil {
		return nil, err
	}
	switch m {
	case MethodRegulaFalsi:
		return RegulaFalsi(f, p.Decimals)
	case MethodSecant:
		return Secant(f, p.X0, p.X1, p.Decimals)
	default:
		return Bisection(f, p.Decimals)
	}
}
