// internal/writers/report.go
package writers

import (
	"melt-core/thermo"

	"melt/pkg/api"
)

// JoulesPerCal converts calorie-based values for display.
const JoulesPerCal = 4.184

// Report is one calculation as handed to a Sink.
type Report struct {
	ID         string
	Sequence   string
	Complement string
	Context    thermo.Context
	Tables     thermo.Tables
	Result     thermo.Result
	Err        error
}

// ToAPI converts a report to the v1 wire schema.
func ToAPI(r Report) api.ResultV1 {
	out := api.ResultV1{
		ID:            r.ID,
		Sequence:      r.Sequence,
		Complement:    r.Complement,
		Hybridization: r.Context.Hybrid.Key(),
		SaltM:         r.Context.Salt,
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
		return out
	}
	res := r.Result
	out.Approximate = res.Approximate
	out.TmC = res.TmC
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, string(w))
	}
	if res.Approximate {
		return out
	}
	out.ProbeM = r.Context.Probe
	out.Factor = r.Context.Factor
	out.SaltCorrection = string(r.Context.SaltModel)
	out.EnthalpyCal = res.Enthalpy
	out.EntropyCal = res.Entropy
	out.RawEntropyCal = res.RawEntropy
	out.EnthalpyJ = res.Enthalpy * JoulesPerCal
	out.EntropyJ = res.Entropy * JoulesPerCal
	out.DeltaG37Cal = res.DeltaG(37)
	out.NNCounts = nonEmpty(res.NNCounts)
	out.MismatchCounts = nonEmpty(res.MismatchCounts)
	out.DanglingCounts = nonEmpty(res.DanglingCounts)
	return out
}

func nonEmpty(m map[string]int) map[string]int {
	if len(m) == 0 {
		return nil
	}
	return m
}

