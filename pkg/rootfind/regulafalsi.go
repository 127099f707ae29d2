package rootfind

// regulaFalsi interpolates through the two most recent points. It slides
// forward instead of re-bracketing, so after the first step the reference
// pair need not enclose the root.
type regulaFalsi struct{ slide }

func (regulaFalsi) Next(older, newer Point) (Step, error) {
	num := newer.X - older.X
	den := newer.FX - older.FX
	return quotientStep(MethodRegulaFalsi, num, den, func() float64 {
		return newer.X - num/den*newer.FX
	})
}

// RegulaFalsi starts from the first bracket found scanning from x = 0.
func RegulaFalsi(f Function, decimals int) (*SolveResult, error) {
	if err := ValidateDecimals(decimals); err != nil {
		return nil, err
	}
	iv, err := FindBracket(f, RegulaFalsiStart)
	if err != nil {
		return nil, err
	}
	return bracketed(MethodRegulaFalsi, f, regulaFalsi{}, iv, decimals)
}
