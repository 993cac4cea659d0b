// core/thermo/analyze.go
// Duplex classification for the nearest-neighbor model.
//
// The probe (5'→3') and its partner strand (given 3'→5', position by
// position) are walked once:
//  1) dangling ends ('-' at either terminus) consume one position each;
//  2) each remaining terminus adds an initiation term (IA for A/T, IG for G/C);
//  3) every interior step is either a Watson–Crick NN step or a mismatch.
//
// Units: ΔH in cal/mol, ΔS in cal/(K·mol).

package thermo

import (
	"fmt"

	"melt-core/nnparam"
	"melt-core/oligo"
)

// Tables holds the parameter sets used by one calculation.
type Tables struct {
	NN          *nnparam.Table
	Mismatch    *nnparam.Table
	DanglingEnd *nnparam.Table

	// The built-in mismatch and dangling-end sets are calibrated for
	// DNA/DNA only; set these when the caller supplied its own.
	CustomMismatch    bool
	CustomDanglingEnd bool
}

// Provider supplies parameter tables by kind and hybridization type.
type Provider interface {
	Lookup(kind nnparam.Kind, h Hybridization) (*nnparam.Table, error)
}

// LoadTables fetches the three default tables for h.
func LoadTables(p Provider, h Hybridization) (Tables, error) {
	var t Tables
	var err error
	if t.NN, err = p.Lookup(nnparam.KindNN, h); err != nil {
		return Tables{}, err
	}
	if t.Mismatch, err = p.Lookup(nnparam.KindMismatch, h); err != nil {
		return Tables{}, err
	}
	if t.DanglingEnd, err = p.Lookup(nnparam.KindDanglingEnd, h); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// Analyze sums ΔH/ΔS over the duplex and counts every table entry used.
// The returned Result has no Tm; see Compute and ExactTm.
func Analyze(c Context, seq, comp string, t Tables) (Result, error) {
	s, k, err := pairUp(seq, comp)
	if err != nil {
		return Result{}, err
	}
	if t.NN == nil {
		return Result{}, fmt.Errorf("analyze: %w: no NN parameter table", ErrConfiguration)
	}

	res := newResult()
	n := len(s)
	prox, dist := 0, 0

	if n < 2 && (s[0] == oligo.Gap || k[0] == oligo.Gap) {
		return Result{}, fmt.Errorf("analyze: %w: duplex too short for a dangling end", ErrValidation)
	}

	// 1) Dangling ends.
	if s[0] == oligo.Gap || k[0] == oligo.Gap {
		if err := res.addDangling(c, t, s[:2], k[:2]); err != nil {
			return Result{}, err
		}
		prox = 1
	}
	if s[n-1] == oligo.Gap || k[n-1] == oligo.Gap {
		if err := res.addDangling(c, t, s[n-2:], k[n-2:]); err != nil {
			return Result{}, err
		}
		dist = 1
	}
	if n-prox-dist <= 0 {
		return Result{}, fmt.Errorf("analyze: %w: usable duplex length is %d", ErrValidation, n-prox-dist)
	}
	if n-prox-dist == 1 {
		// A lone pair is both ends at once.
		if paired, ok := oligo.IsWC(s[prox], k[prox]); !ok || !paired {
			return Result{}, fmt.Errorf("analyze: %w: the only pair %c/%c is not Watson-Crick; "+
				"the effect of mismatches on the two extreme positions is unpredictable", ErrValidation, s[prox], k[prox])
		}
	}

	// 2) Initiation, once per terminus (identical ends count twice).
	for _, b := range [2]byte{s[prox], s[n-1-dist]} {
		if err := res.addInitiation(t.NN, b); err != nil {
			return Result{}, err
		}
	}

	// 3) Interior steps i..i+1 for i in [prox, end).
	end := n - 1 - dist
	for i := prox; i < end; i++ {
		mm, err := mismatchWindow(s, k, i)
		if err != nil {
			return Result{}, err
		}
		if !mm {
			// A step missing from the table contributes nothing.
			if e, ok := t.NN.FindByPrefix(s[i : i+2]); ok {
				res.add(e, res.NNCounts)
			}
			continue
		}
		if i == prox || i == end-1 {
			return Result{}, fmt.Errorf("analyze: %w: mismatch at step %d touches an end of the duplex; "+
				"the effect of mismatches on the two extreme positions is unpredictable", ErrValidation, i+1)
		}
		if t.Mismatch == nil {
			return Result{}, fmt.Errorf("analyze: %w: no mismatch parameter table", ErrConfiguration)
		}
		if c.Hybrid != DNADNA && !t.CustomMismatch {
			res.warn(WarnMismatchDNAOnly)
		}
		code := s[i:i+2] + "/" + k[i:i+2]
		e, ok := t.Mismatch.FindByPrefix(code)
		if !ok || !e.Defined() {
			return Result{}, fmt.Errorf("analyze: %w: NN parameters for %s not found in %s", ErrUnknownParameter, code, t.Mismatch.Source())
		}
		res.add(e, res.MismatchCounts)
	}
	return res, nil
}

// pairUp normalizes and validates both strands.
func pairUp(seq, comp string) (string, string, error) {
	s, err := oligo.Validate(seq)
	if err != nil {
		return "", "", fmt.Errorf("analyze: %w: sequence: %v", ErrValidation, err)
	}
	k, err := oligo.Validate(comp)
	if err != nil {
		return "", "", fmt.Errorf("analyze: %w: complement: %v", ErrValidation, err)
	}
	if len(s) != len(k) {
		return "", "", fmt.Errorf("analyze: %w: sequence and complement must be equal length (%d vs %d)", ErrValidation, len(s), len(k))
	}
	return s, k, nil
}

func (r *Result) addDangling(c Context, t Tables, top, bottom string) error {
	if t.DanglingEnd == nil {
		return fmt.Errorf("analyze: %w: no dangling-end parameter table", ErrConfiguration)
	}
	if c.Hybrid != DNADNA && !t.CustomDanglingEnd {
		r.warn(WarnDanglingDNAOnly)
	}
	code := top + "/" + bottom
	e, ok := t.DanglingEnd.FindByPrefix(code)
	if !ok || !e.Defined() {
		return fmt.Errorf("analyze: %w: NN parameters for %s not found in %s", ErrUnknownParameter, code, t.DanglingEnd.Source())
	}
	r.add(e, r.DanglingCounts)
	return nil
}

func (r *Result) addInitiation(nn *nnparam.Table, b byte) error {
	var code string
	switch b {
	case 'A', 'T':
		code = nnparam.CodeInitAT
	case 'G', 'C':
		code = nnparam.CodeInitGC
	default:
		return nil
	}
	e, ok := nn.FindByPrefix(code)
	if !ok {
		return fmt.Errorf("analyze: %w: initiation term %s missing from %s", ErrUnknownParameter, code, nn.Source())
	}
	r.add(e, r.NNCounts)
	return nil
}

func (r *Result) add(e nnparam.Entry, counts map[string]int) {
	r.Enthalpy += e.DH
	r.Entropy += e.DS
	r.RawEntropy += e.DS
	counts[e.Code]++
}

// mismatchWindow reports whether step i..i+1 contains a non Watson–Crick pair.
func mismatchWindow(s, k string, i int) (bool, error) {
	for _, j := range [2]int{i, i + 1} {
		paired, ok := oligo.IsWC(s[j], k[j])
		if !ok {
			return false, fmt.Errorf("analyze: %w: unrecognized top base %q at position %d", ErrValidation, s[j], j+1)
		}
		if !paired {
			return true, nil
		}
	}
	return false, nil
}
