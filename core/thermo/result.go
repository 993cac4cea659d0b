package thermo

// Result is the outcome of one calculation. On the approximate path only
// TmC and Approximate are meaningful.
type Result struct {
	Enthalpy   float64 // ΔH, cal/mol
	Entropy    float64 // ΔS, cal/(K·mol), salt-corrected when the model acts on entropy
	RawEntropy float64 // ΔS before any salt correction
	TmC        float64 // melting temperature, °C

	Approximate bool

	// Table entries used, by code. Initiation is counted under IA/IG.
	NNCounts       map[string]int
	MismatchCounts map[string]int
	DanglingCounts map[string]int

	Warnings []Warning
}

func newResult() Result {
	return Result{
		NNCounts:       map[string]int{},
		MismatchCounts: map[string]int{},
		DanglingCounts: map[string]int{},
	}
}

// DeltaG is the free energy of the duplex at tempC, in cal/mol.
func (r Result) DeltaG(tempC float64) float64 {
	return r.Enthalpy - (tempC+273.15)*r.Entropy
}

func (r *Result) warn(w Warning) {
	for _, have := range r.Warnings {
		if have == w {
			return
		}
	}
	r.Warnings = append(r.Warnings, w)
}
