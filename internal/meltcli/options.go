// internal/meltcli/options.go
package meltcli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"melt-core/conc"
	"melt-core/thermo"

	"melt/internal/writers"
)

// AutoOutFile asks for a generated output file name.
const AutoOutFile = "auto"

// Options is the merged view of flags, MELT_* variables and the config file.
type Options struct {
	// Duplex
	Hybridization string `mapstructure:"hybridization"`
	Sequence      string `mapstructure:"sequence"`
	Complement    string `mapstructure:"complement"`

	// Conditions
	Salt           string  `mapstructure:"salt"`
	ProbeConc      string  `mapstructure:"probe-conc"`
	Factor         float64 `mapstructure:"factor"`
	SaltCorrection string  `mapstructure:"salt-correction"`
	Threshold      int     `mapstructure:"threshold"`
	Approx         bool    `mapstructure:"approx"`

	// Alternate parameter tables (built-in name or file)
	NNFile       string `mapstructure:"nn-file"`
	MismatchFile string `mapstructure:"mismatch-file"`
	DanglingFile string `mapstructure:"dangling-file"`

	// Output
	Verbose bool   `mapstructure:"verbose"`
	Output  string `mapstructure:"output"`
	OutFile string `mapstructure:"out-file"`

	// Batch
	Batch   bool `mapstructure:"batch"`
	Threads int  `mapstructure:"threads"`

	// Misc
	Quiet  bool   `mapstructure:"quiet"`
	Config string `mapstructure:"config"`

	// Positional FASTA inputs, globs expanded.
	Inputs []string `mapstructure:"-"`
}

// Defaults for the flag set.
const (
	DefaultSalt      = "0.05"
	DefaultProbeConc = "50nM"
	DefaultOutput    = "text"
)

// IsBatch reports whether sequences come from stdin lines or FASTA files.
func (o Options) IsBatch() bool { return o.Batch || len(o.Inputs) > 0 }

// Validate checks option combinations. It does not look at sequences or
// concentrations; Context does that.
func Validate(o Options) error {
	known := false
	for _, f := range writers.Formats() {
		if o.Output == f {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("--output must be one of %s", strings.Join(writers.Formats(), " | "))
	}
	if o.Threads < 0 {
		return errors.New("--threads must be >= 0")
	}
	if o.Threshold < 0 {
		return errors.New("--threshold must be >= 0")
	}
	if o.Sequence == "" && !o.IsBatch() {
		return errors.New("provide --sequence, --batch or FASTA input files")
	}
	if o.Sequence != "" && o.IsBatch() {
		return errors.New("--sequence cannot be combined with --batch or FASTA inputs")
	}
	if o.Complement != "" && o.Sequence == "" {
		return errors.New("--complement requires --sequence")
	}
	if o.Batch && len(o.Inputs) > 0 {
		return errors.New("--batch reads stdin; pass '-' as an input instead of mixing both")
	}
	return nil
}

// Context builds the calculation context. Without --hybridization an
// alternate NN table implies DNA/DNA.
func (o Options) Context() (thermo.Context, error) {
	h := thermo.DNADNA
	switch {
	case o.Hybridization != "":
		var err error
		if h, err = thermo.ParseHybridization(o.Hybridization); err != nil {
			return thermo.Context{}, err
		}
	case o.NNFile == "":
		return thermo.Context{}, fmt.Errorf("%w: no hybridization type selected (--hybridization)", thermo.ErrConfiguration)
	}
	c := thermo.DefaultContext(h)

	var err error
	if c.Salt, err = conc.Parse(o.Salt); err != nil {
		return thermo.Context{}, fmt.Errorf("%w: --salt: %v", thermo.ErrValidation, err)
	}
	if c.Probe, err = conc.Parse(o.ProbeConc); err != nil {
		return thermo.Context{}, fmt.Errorf("%w: --probe-conc: %v", thermo.ErrValidation, err)
	}
	if o.SaltCorrection != "" {
		if c.SaltModel, err = thermo.ParseSaltModel(o.SaltCorrection); err != nil {
			return thermo.Context{}, err
		}
	}
	c.Factor = o.Factor
	c.Threshold = o.Threshold
	c.ForceApprox = o.Approx
	return c, nil
}

var months = [...]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// OutFileName resolves --out-file; "auto" becomes meltingYYYYMONDD_HHhMMm.out.
func (o Options) OutFileName(now time.Time) string {
	if o.OutFile != AutoOutFile {
		return o.OutFile
	}
	return fmt.Sprintf("melting%d%s%02d_%02dh%02dm.out",
		now.Year(), months[now.Month()-1], now.Day(), now.Hour(), now.Minute())
}
