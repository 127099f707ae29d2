package consts

const (
	MinDecimals = 1  // Smallest accepted decimal-place tolerance
	MaxDecimals = 10 // Largest accepted decimal-place tolerance

	MaxExtraIterations = 100   // Root finders: iterations allowed after the first
	DegenerateEpsilon  = 1e-10 // |denominator| below this stops secant/regula-falsi

	BracketSpan = 100 // Integer steps scanned in each direction

	MinSystemSize = 2
	MaxSystemSize = 5
)
