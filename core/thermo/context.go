package thermo

import (
	"fmt"
	"strings"
)

// Hybridization is the duplex type. The zero value means "not selected".
type Hybridization int

const (
	HybridUnset Hybridization = iota
	DNADNA
	DNARNA
	RNARNA
)

func (h Hybridization) String() string {
	switch h {
	case DNADNA:
		return "DNA/DNA"
	case DNARNA:
		return "DNA/RNA"
	case RNARNA:
		return "RNA/RNA"
	default:
		return "unset"
	}
}

// Key is the short name used on the command line and in config files.
func (h Hybridization) Key() string {
	switch h {
	case DNADNA:
		return "dnadna"
	case DNARNA:
		return "dnarna"
	case RNARNA:
		return "rnarna"
	default:
		return ""
	}
}

// ParseHybridization accepts dnadna, dnarna/rnadna, rnarna and the legacy
// single-letter forms A, B and C.
func ParseHybridization(s string) (Hybridization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dnadna", "a":
		return DNADNA, nil
	case "dnarna", "rnadna", "b":
		return DNARNA, nil
	case "rnarna", "c":
		return RNARNA, nil
	default:
		return HybridUnset, fmt.Errorf("%w: unknown hybridization type %q (want dnadna, dnarna or rnarna)", ErrConfiguration, s)
	}
}

// SaltModel identifies a sodium correction.
type SaltModel string

const (
	San98a SaltModel = "san98a" // SantaLucia (1998), entropy term
	Wet91a SaltModel = "wet91a" // Wetmur (1991), Tm offset
	San96a SaltModel = "san96a" // SantaLucia et al. (1996), Tm offset
	Nak99a SaltModel = "nak99a" // Nakano et al. (1999), not implemented
)

// ParseSaltModel matches on the first six characters, as model ids are
// fixed-width.
func ParseSaltModel(s string) (SaltModel, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	if len(k) > 6 {
		k = k[:6]
	}
	switch m := SaltModel(k); m {
	case San98a, Wet91a, San96a, Nak99a:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown salt correction %q (want san98a, wet91a, san96a or nak99a)", ErrConfiguration, s)
}

// Limits on solution conditions (open intervals).
const (
	MinSalt  = 0.0
	MaxSalt  = 10.0
	MinProbe = 0.0
	MaxProbe = 0.1
)

// Defaults.
const (
	DefaultSalt      = 0.05
	DefaultProbe     = 50e-9
	DefaultFactor    = 4
	DefaultThreshold = 50
)

// Context bundles everything a calculation needs besides sequences and
// tables. It is passed by value and never modified by this package.
type Context struct {
	Hybrid      Hybridization
	Salt        float64   // [Na+], mol/L
	Probe       float64   // strand in excess, mol/L
	Factor      float64   // concentration correction divisor
	SaltModel   SaltModel // sodium correction
	Threshold   int       // longest sequence computed with the NN model
	ForceApprox bool
}

// DefaultContext returns the standard conditions for h.
func DefaultContext(h Hybridization) Context {
	return Context{
		Hybrid:    h,
		Salt:      DefaultSalt,
		Probe:     DefaultProbe,
		Factor:    DefaultFactor,
		SaltModel: San98a,
		Threshold: DefaultThreshold,
	}
}

// UseApprox reports whether a sequence of length n takes the %GC path.
func (c Context) UseApprox(n int) bool {
	return c.ForceApprox || n > c.Threshold
}

// Validate checks the conditions used by both paths; the probe concentration
// and factor are only required by the exact path.
func (c Context) Validate(exact bool) error {
	if c.Hybrid == HybridUnset {
		return fmt.Errorf("%w: no hybridization type selected", ErrConfiguration)
	}
	if !(c.Salt > MinSalt && c.Salt < MaxSalt) {
		return fmt.Errorf("%w: salt concentration %g M outside ]%g,%g[", ErrValidation, c.Salt, MinSalt, MaxSalt)
	}
	if !exact {
		return nil
	}
	if !(c.Probe > MinProbe && c.Probe < MaxProbe) {
		return fmt.Errorf("%w: probe concentration %g M outside ]%g,%g[", ErrValidation, c.Probe, MinProbe, MaxProbe)
	}
	if !(c.Factor > 0) {
		return fmt.Errorf("%w: concentration factor must be > 0, got %g", ErrValidation, c.Factor)
	}
	if _, err := ParseSaltModel(string(c.SaltModel)); err != nil {
		return err
	}
	return nil
}
