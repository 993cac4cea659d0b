package batch

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the melting temperatures of a batch.
type Summary struct {
	Count       int // successful calculations
	Failed      int
	Approximate int
	MeanTm      float64
	StdDevTm    float64 // sample standard deviation; 0 for fewer than two values
	MinTm       float64
	MaxTm       float64
}

// Summarize computes statistics over tms (°C).
func Summarize(tms []float64, failed, approximate int) Summary {
	s := Summary{Count: len(tms), Failed: failed, Approximate: approximate}
	if len(tms) == 0 {
		return s
	}
	s.MinTm = floats.Min(tms)
	s.MaxTm = floats.Max(tms)
	if len(tms) == 1 {
		s.MeanTm = tms[0]
		return s
	}
	s.MeanTm, s.StdDevTm = stat.MeanStdDev(tms, nil)
	return s
}
