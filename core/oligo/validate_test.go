package oligo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ACGTT-", Normalize(" acg'u\"T -\n"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr string
	}{
		{"plain", "acgt", "ACGT", ""},
		{"uridine folded", "ACGU", "ACGT", ""},
		{"gap at both ends", "-ACG-", "-ACG-", ""},
		{"empty", "  ", "", "empty sequence"},
		{"illegal", "ACNNX", "", "3 non legal character(s)"},
		{"interior gap", "AC-GT", "", "only allowed at either end"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Validate(tc.in)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComplement(t *testing.T) {
	got, err := Complement("-ACGT")
	require.NoError(t, err)
	assert.Equal(t, "-TGCA", got)

	_, err = Complement("ACN")
	assert.ErrorContains(t, err, "cannot complement")
}

func TestIsWC(t *testing.T) {
	p, ok := IsWC('A', 'T')
	assert.True(t, p && ok)
	p, ok = IsWC('G', 'T')
	assert.True(t, ok)
	assert.False(t, p)
	_, ok = IsWC('-', '-')
	assert.False(t, ok)
	_, ok = IsWC('N', 'A')
	assert.False(t, ok)
}

func TestGCCount(t *testing.T) {
	assert.Equal(t, 3, GCCount("AGCTC"))
	assert.Equal(t, 0, GCCount(""))
}
