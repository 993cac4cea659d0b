package thermo

import (
	"fmt"
	"math"
)

// SaltCorrection is what a sodium model does to one calculation.
type SaltCorrection struct {
	Entropy  float64 // added to ΔS before the Tm formula, cal/(K·mol)
	TmOffset float64 // added to Tm afterwards, °C
}

// Correct evaluates the model for salt (mol/L) and a duplex of n positions.
func (m SaltModel) Correct(salt float64, n int) (SaltCorrection, error) {
	if !(salt > 0) {
		return SaltCorrection{}, fmt.Errorf("%w: salt concentration must be > 0, got %g", ErrValidation, salt)
	}
	switch m {
	case San98a:
		return SaltCorrection{Entropy: 0.368 * float64(n-1) * math.Log(salt)}, nil
	case Wet91a:
		return SaltCorrection{TmOffset: 16.6*math.Log10(salt/(1.0+0.7*salt)) + 3.85}, nil
	case San96a:
		return SaltCorrection{TmOffset: 12.5 * math.Log10(salt)}, nil
	case Nak99a:
		return SaltCorrection{}, fmt.Errorf("%w: salt correction %s", ErrNotImplemented, m)
	default:
		return SaltCorrection{}, fmt.Errorf("%w: unknown salt correction %q", ErrConfiguration, string(m))
	}
}
