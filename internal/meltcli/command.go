// internal/meltcli/command.go
package meltcli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"melt-core/thermo"

	"melt/internal/cliutil"
	"melt/internal/paramstore"
	"melt/internal/version"
)

// RunFunc receives the decoded options of the root command.
type RunFunc func(cmd *cobra.Command, o Options) error

// NewRootCommand builds the melt command tree. Settings are merged into v
// from flags, MELT_* environment variables and --config, in that order of
// precedence.
func NewRootCommand(v *viper.Viper, run RunFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "melt [flags] [FASTA...]",
		Short: "Melting temperature of nucleic acid duplexes (nearest-neighbor model)",
		Long: `melt computes the enthalpy, entropy and melting temperature of a DNA/DNA,
DNA/RNA or RNA/RNA duplex with the nearest-neighbor model, including single
mismatches and dangling ends. Sequences longer than --threshold get the
approximate %GC formula instead.

Sequences come from --sequence, from stdin lines with --batch, or from FASTA
files given as arguments ('-' for stdin, .gz and .zst accepted).`,
		Example: `  melt -H dnadna -S CAAAAAG -N 1M -P 0.0004
  melt -H dnarna -S GAAGGA --salt 50mM --probe-conc 250nM -o json
  melt -H dnadna -t 4 probes.fa.gz
  cut -f2 oligos.tsv | melt -H dnadna --batch -o jsonl`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := Load(v, args)
			if err != nil {
				return err
			}
			return run(cmd, o)
		},
	}
	root.SetVersionTemplate("melt version {{.Version}}\n")

	fl := root.Flags()
	addFlags(fl)
	_ = v.BindPFlags(fl)
	v.SetEnvPrefix("MELT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(newTablesCommand())
	return root
}

// addFlags registers the calculation flags; the names double as viper
// keys and config file keys.
func addFlags(fl *pflag.FlagSet) {
	fl.SortFlags = false
	fl.StringP("hybridization", "H", "", "duplex type: dnadna | dnarna | rnarna")
	fl.StringP("sequence", "S", "", "sequence (5'→3'), '-' allowed at either end for a dangling end")
	fl.StringP("complement", "C", "", "complementary strand (3'→5'); built from --sequence when empty")
	fl.StringP("salt", "N", DefaultSalt, "sodium concentration, e.g. 0.05, 50mM")
	fl.StringP("probe-conc", "P", DefaultProbeConc, "concentration of the strand in excess, e.g. 50nM")
	fl.Float64P("factor", "F", thermo.DefaultFactor, "correction factor dividing the probe concentration")
	fl.StringP("salt-correction", "K", string(thermo.San98a), "sodium correction: san98a | wet91a | san96a | nak99a")
	fl.IntP("threshold", "T", thermo.DefaultThreshold, "longest sequence computed with the nearest-neighbor model")
	fl.BoolP("approx", "x", false, "always use the approximate %GC formula")
	fl.StringP("nn-file", "A", "", "alternate nearest-neighbor table (built-in name or file)")
	fl.StringP("mismatch-file", "M", "", "alternate mismatch table (built-in name or file)")
	fl.StringP("dangling-file", "D", "", "alternate dangling-end table (built-in name or file)")
	fl.BoolP("verbose", "v", false, "long report: tables, references, corrections and counts")
	fl.StringP("output", "o", DefaultOutput, "output: text | json | jsonl")
	fl.StringP("out-file", "O", "", "write results to a file ('auto' for meltingYYYYMONDD_HHhMMm.out)")
	fl.BoolP("batch", "B", false, "read one sequence per line from stdin")
	fl.IntP("threads", "t", 0, "worker threads in batch mode (0=all CPUs)")
	fl.BoolP("quiet", "q", false, "suppress warnings")
	fl.String("config", "", "config file (yaml, toml or json)")
}

// Load reads the optional config file and decodes the merged settings.
func Load(v *viper.Viper, args []string) (Options, error) {
	var o Options
	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		if err := v.ReadInConfig(); err != nil {
			return o, fmt.Errorf("config %s: %w", cfg, err)
		}
	}
	if err := v.Unmarshal(&o); err != nil {
		return o, fmt.Errorf("decoding options: %w", err)
	}
	if len(args) > 0 {
		exp, err := cliutil.ExpandPositionals(args)
		if err != nil {
			return o, err
		}
		o.Inputs = exp
	}
	return o, Validate(o)
}

func newTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables [name]",
		Short: "List the built-in parameter tables, or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				raw, err := paramstore.Raw(args[0])
				if err != nil {
					return err
				}
				_, err = out.Write(raw)
				return err
			}
			return ListTables(out)
		},
	}
}

// ListTables prints one line per built-in table with the duplex types that
// use it by default.
func ListTables(w io.Writer) error {
	for _, name := range paramstore.Names() {
		kind, _ := paramstore.KindOf(name)
		var uses []string
		for _, h := range []thermo.Hybridization{thermo.DNADNA, thermo.DNARNA, thermo.RNARNA} {
			if n, err := paramstore.DefaultName(kind, h); err == nil && n == name {
				uses = append(uses, h.Key())
			}
		}
		if _, err := fmt.Fprintf(w, "%-12s %-12s %s\n", name, kind, strings.Join(uses, ",")); err != nil {
			return err
		}
	}
	return nil
}
