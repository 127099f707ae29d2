package linear

import "math"

// RowDominance compares |a[i][i]| with the sum of the other magnitudes in
// row i. Row is 1-based.
type RowDominance struct {
	Row  int     `json:"row"`
	Diag float64 `json:"diag"`
	Sum  float64 `json:"sum"`
	OK   bool    `json:"ok"`
}

// Dominance is advisory. Neither solver consults it.
type Dominance struct {
	OK   bool           `json:"ok"`
	Rows []RowDominance `json:"rows"`
}

// CheckDominance reports strict diagonal dominance per row.
func CheckDominance(s *System) Dominance {
	d := Dominance{OK: true, Rows: make([]RowDominance, 0, s.n)}
	for i, row := range s.a {
		diag := math.Abs(row[i])
		sum := 0.0
		for j, v := range row {
			if j != i {
				sum += math.Abs(v)
			}
		}
		ok := diag > sum
		if !ok {
			d.OK = false
		}
		d.Rows = append(d.Rows, RowDominance{Row: i + 1, Diag: diag, Sum: sum, OK: ok})
	}
	return d
}
