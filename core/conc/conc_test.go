package conc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"50mM", 0.05},
		{" 250nM ", 2.5e-7},
		{"3uM", 3e-6},
		{"3µM", 3e-6},
		{"1M", 1},
		{"0.05", 0.05},
		{"5e-8", 5e-8},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, tc.want*1e-12)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "mM", "fifty", "5xM"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "5.00e-02", Format(0.05))
}
