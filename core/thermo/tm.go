// core/thermo/tm.go
// Melting temperature from the nearest-neighbor sums, or from %GC for long
// sequences.
//
//	exact:  Tm = ΔH / (ΔS + R ln(Ct/F)) − 273.15 (+ salt offset)   [°C]
//	approx: Tm = a + 16.6 log10([Na+]/(1+0.7[Na+])) + b·%GC − 500/N
//
// with a/b = 81.5/0.41 (DNA/DNA), 67/0.8 (DNA/RNA), 78/0.8 (RNA/RNA).
//
// This package has no app/output deps; the CLI layers import it cleanly.

package thermo

import (
	"fmt"
	"math"

	"melt-core/oligo"
)

const (
	// Gas constant in cal/(K·mol)
	Rcal = 1.987

	kelvin = 273.15
)

// Compute routes seq/comp to the approximate or the nearest-neighbor path
// and returns the Tm. Both strands are validated and must have equal length
// whichever path is taken.
func Compute(c Context, seq, comp string, t Tables) (Result, error) {
	s, _, err := pairUp(seq, comp)
	if err != nil {
		return Result{}, err
	}
	if c.UseApprox(len(s)) {
		tm, err := ApproxTm(c, s)
		if err != nil {
			return Result{}, err
		}
		res := newResult()
		res.TmC = tm
		res.Approximate = true
		return res, nil
	}
	if err := c.Validate(true); err != nil {
		return Result{}, err
	}
	res, err := Analyze(c, seq, comp, t)
	if err != nil {
		return Result{}, err
	}
	return ExactTm(c, res, len(s))
}

// ExactTm applies the salt model and the two-state formula to the sums in r.
// n is the full duplex length, dangling positions included.
func ExactTm(c Context, r Result, n int) (Result, error) {
	if err := c.Validate(true); err != nil {
		return Result{}, err
	}
	corr, err := c.SaltModel.Correct(c.Salt, n)
	if err != nil {
		return Result{}, err
	}
	r.Entropy = r.RawEntropy + corr.Entropy

	den := r.Entropy + Rcal*math.Log(c.Probe/c.Factor)
	tmK := r.Enthalpy / den
	if den == 0 || math.IsNaN(tmK) || math.IsInf(tmK, 0) {
		return Result{}, fmt.Errorf("tm: %w: degenerate entropy term (ΔH=%g, ΔS=%g)", ErrValidation, r.Enthalpy, r.Entropy)
	}
	r.TmC = tmK - kelvin + corr.TmOffset
	r.Approximate = false
	return r, nil
}

// ApproxTm is the %GC estimate. Gaps count toward N but not toward GC.
func ApproxTm(c Context, seq string) (float64, error) {
	s, err := oligo.Validate(seq)
	if err != nil {
		return 0, fmt.Errorf("approx: %w: %v", ErrValidation, err)
	}
	n := len(s)
	if err := c.Validate(false); err != nil {
		return 0, err
	}
	var base, slope float64
	switch c.Hybrid {
	case DNADNA:
		base, slope = 81.5, 0.41
	case DNARNA:
		base, slope = 67, 0.8
	case RNARNA:
		base, slope = 78, 0.8
	default:
		return 0, fmt.Errorf("approx: %w: no hybridization type selected", ErrConfiguration)
	}
	gc := float64(oligo.GCCount(s)) / float64(n) * 100
	return base + 16.6*math.Log10(c.Salt/(1.0+0.7*c.Salt)) + slope*gc - 500/float64(n), nil
}
