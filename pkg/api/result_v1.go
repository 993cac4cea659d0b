// pkg/api/result_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for one melting calculation.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	ID            string `json:"id,omitempty"`
	Sequence      string `json:"sequence"`
	Complement    string `json:"complement,omitempty"`
	Hybridization string `json:"hybridization"`

	SaltM          float64 `json:"salt_m"`
	ProbeM         float64 `json:"probe_m,omitempty"`
	Factor         float64 `json:"factor,omitempty"`
	SaltCorrection string  `json:"salt_correction,omitempty"`

	Approximate bool    `json:"approximate"`
	TmC         float64 `json:"tm_c"`

	// Exact mode only.
	EnthalpyCal    float64        `json:"enthalpy_cal,omitempty"`
	EntropyCal     float64        `json:"entropy_cal,omitempty"`
	RawEntropyCal  float64        `json:"raw_entropy_cal,omitempty"`
	EnthalpyJ      float64        `json:"enthalpy_j,omitempty"`
	EntropyJ       float64        `json:"entropy_j,omitempty"`
	DeltaG37Cal    float64        `json:"delta_g37_cal,omitempty"`
	NNCounts       map[string]int `json:"nn_counts,omitempty"`
	MismatchCounts map[string]int `json:"mismatch_counts,omitempty"`
	DanglingCounts map[string]int `json:"dangling_counts,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// SummaryV1 is the batch trailer emitted in JSON mode.
type SummaryV1 struct {
	Count       int     `json:"count"`
	Failed      int     `json:"failed"`
	Approximate int     `json:"approximate"`
	MeanTmC     float64 `json:"mean_tm_c"`
	StdDevTmC   float64 `json:"stddev_tm_c"`
	MinTmC      float64 `json:"min_tm_c"`
	MaxTmC      float64 `json:"max_tm_c"`
}

// BatchV1 wraps batch results in JSON (non-streaming) mode.
type BatchV1 struct {
	Results []ResultV1 `json:"results"`
	Summary SummaryV1  `json:"summary"`
}
