package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     string
	}{
		{1.32470703125, 3, "1.325"},
		{-0.00001, 3, "0.000"},
		{-2.5, 1, "-2.5"},
		{7, 4, "7.0000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFixed(tt.value, tt.decimals))
	}
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "[1.043, 2.269, -1.082]", FormatVector([]float64{1.04327, 2.26923, -1.08173}, 3))
	assert.Equal(t, "[]", FormatVector(nil, 3))
}

func TestFormatValueFactor(t *testing.T) {
	assert.Equal(t, "100.000 u", FormatValueFactor(0.0001, ""))
	assert.Equal(t, "2.500 k", FormatValueFactor(2500, ""))
	assert.Equal(t, "1.500 mV", FormatValueFactor(0.0015, "V"))
	assert.Equal(t, "0.000", FormatValueFactor(0, ""))
}

func TestFormatMagnitude(t *testing.T) {
	assert.Equal(t, "1.00e+03", FormatMagnitude(1000))
	assert.Equal(t, "-5.43e-05", FormatMagnitude(-0.0000543))
	assert.Equal(t, "     0.5", FormatMagnitude(0.5))
}
