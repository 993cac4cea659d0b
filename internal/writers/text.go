// internal/writers/text.go
package writers

import (
	"bufio"
	"fmt"
	"io"

	"melt-core/conc"
	"melt-core/nnparam"
	"melt-core/thermo"

	"melt/internal/batch"
	"melt/internal/version"
)

func init() { Register("text", newTextSink) }

type textSink struct {
	w    *bufio.Writer
	opts Options
	n    int
}

func newTextSink(w io.Writer, o Options) Sink {
	return &textSink{w: bufio.NewWriter(w), opts: o}
}

func (s *textSink) Write(r Report) error {
	s.n++
	if s.opts.Batch {
		if s.n > 1 {
			fmt.Fprintln(s.w)
		}
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("#%d", s.n)
		}
		fmt.Fprintf(s.w, "> %s %s\n", id, r.Sequence)
	}
	if err := WriteText(s.w, r, s.opts.Verbose); err != nil {
		return err
	}
	if s.opts.Batch {
		// Keep streaming output visible to pipes.
		return s.w.Flush()
	}
	return nil
}

func (s *textSink) Close(sum *batch.Summary) error {
	if sum != nil {
		fmt.Fprintln(s.w)
		WriteSummary(s.w, *sum)
	}
	return s.w.Flush()
}

// WriteText prints the result lines, preceded by the long report when
// verbose is set.
func WriteText(w io.Writer, r Report, verbose bool) error {
	bw := bufio.NewWriter(w)
	if r.Err != nil {
		fmt.Fprintf(bw, "  Error: %v\n", r.Err)
		return bw.Flush()
	}
	if verbose {
		writeVerbose(bw, r)
	}
	res := r.Result
	if !res.Approximate {
		fmt.Fprintf(bw, "  Enthalpy: %.0f J.mol-1 (%.0f cal.mol-1)\n", res.Enthalpy*JoulesPerCal, res.Enthalpy)
		fmt.Fprintf(bw, "  Entropy: %.2f J.mol-1.K-1 (%.2f cal.mol-1.K-1)\n", res.Entropy*JoulesPerCal, res.Entropy)
	} else {
		fmt.Fprintln(bw, "  "+approxReason(r)+": approximative mode")
	}
	fmt.Fprintf(bw, "  Melting temperature: %5.2f °C\n", res.TmC)
	return bw.Flush()
}

func approxReason(r Report) string {
	if r.Context.ForceApprox && len(r.Sequence) <= r.Context.Threshold {
		return "Approximation requested"
	}
	return "Sequence length above threshold"
}

func writeVerbose(w io.Writer, r Report) {
	c := r.Context
	fmt.Fprintln(w)
	fmt.Fprintf(w, "melt %s: enthalpy, entropy and melting temperature of a probe bound to its template\n", version.Version)
	fmt.Fprintf(w, "hybridization: %s\n\n", c.Hybrid)
	fmt.Fprintf(w, "sequence  : %s\n", r.Sequence)
	fmt.Fprintf(w, "complement: %s\n\n", r.Complement)
	if c.Hybrid == thermo.DNARNA || c.Hybrid == thermo.RNARNA {
		fmt.Fprintln(w, "(Note that uridine is changed into thymidine for sake of simplification. The")
		fmt.Fprintln(w, "computation has been nevertheless performed with the specified hybridisation")
		fmt.Fprintln(w, "type.)")
	}
	fmt.Fprintf(w, "Sodium concentration: %s M\n", conc.Format(c.Salt))
	if r.Result.Approximate {
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "Nucleic acid concentration (strand in excess): %s M\n", conc.Format(c.Probe))

	writeTable(w, "File containing the nearest_neighbor parameters is %s.\n", r.Tables.NN)
	if len(r.Result.MismatchCounts) > 0 {
		writeTable(w, "File containing the nearest_neighbor parameters for mismatches is %s.\n", r.Tables.Mismatch)
	}
	if len(r.Result.DanglingCounts) > 0 {
		writeTable(w, "File containing the nearest_neighbor parameters for dangling ends is %s.\n", r.Tables.DanglingEnd)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, SaltFormula(c.SaltModel))
	fmt.Fprintf(w, "\nThe correction of the nucleic acid concentration is %3.1f,\n", c.Factor)
	fmt.Fprintf(w, "i.e. the Tm for [Na+]=1M is DeltaH / (DeltaS + R x ln c/%3.1f)\n", c.Factor)

	writeCounts(w, "Crick's pairs contained in your sequence:", r.Tables.NN, r.Result.NNCounts)
	writeCounts(w, "Mismatched pairs contained in your sequence:", r.Tables.Mismatch, r.Result.MismatchCounts)
	writeCounts(w, "Dangling ends contained in your sequence:", r.Tables.DanglingEnd, r.Result.DanglingCounts)
	fmt.Fprintln(w)
}

func writeTable(w io.Writer, title string, t *nnparam.Table) {
	if t == nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, title, t.Source())
	fmt.Fprintln(w)
	for _, ref := range t.References() {
		fmt.Fprintln(w, ref)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "NN\tenthalpy\tentropy\n\t(J.mol-1)\t(J.mol-1.K-1)\n--------------------------------\n")
	for _, e := range t.Entries() {
		if !e.Defined() {
			fmt.Fprintf(w, "%s\t%8s\t%6s\n", e.Code, "-", "-")
			continue
		}
		fmt.Fprintf(w, "%s\t%8.1f\t%6.2f\n", e.Code, e.DH*JoulesPerCal, e.DS*JoulesPerCal)
	}
}

// writeCounts lists the used entries of t in table order.
func writeCounts(w io.Writer, title string, t *nnparam.Table, counts map[string]int) {
	fmt.Fprintf(w, "\n%s\n", title)
	if t == nil {
		return
	}
	seen := map[string]bool{}
	for _, e := range t.Entries() {
		if n := counts[e.Code]; n > 0 && !seen[e.Code] {
			seen[e.Code] = true
			fmt.Fprintf(w, "%s\t%d\n", e.Code, n)
		}
	}
}

// SaltFormula describes a sodium correction in words.
func SaltFormula(m thermo.SaltModel) string {
	switch m {
	case thermo.Wet91a:
		return "The salt correction is from Wetmur (1991), i.e,\n16.6 x log([Na+] / (1 + 0.7 x [Na+])) + 3.85"
	case thermo.San96a:
		return "The salt correction is from SantaLucia et al. (1996), i.e,\n12.5 x log[Na+]"
	case thermo.San98a:
		return "The salt correction is from SantaLucia (1998), i.e,\nDeltaS = DeltaS([Na+]=1M) + 0.368 x (N-1) x ln[Na+]"
	default:
		return fmt.Sprintf("The salt correction is %s.", m)
	}
}

// WriteSummary prints batch statistics.
func WriteSummary(w io.Writer, s batch.Summary) {
	fmt.Fprintf(w, "Summary: %d computed, %d failed, %d approximate\n", s.Count, s.Failed, s.Approximate)
	if s.Count == 0 {
		return
	}
	fmt.Fprintf(w, "  Tm mean: %5.2f °C  sd: %5.2f  min: %5.2f  max: %5.2f\n", s.MeanTm, s.StdDevTm, s.MinTm, s.MaxTm)
}
