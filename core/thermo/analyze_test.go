package thermo

import (
	"errors"
	"testing"

	"melt-core/nnparam"
)

func TestAnalyze_InteriorMismatch(t *testing.T) {
	res, err := Analyze(DefaultContext(DNADNA), "AAGAA", "TTTTT", fixtureTables())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.MismatchCounts["AG/TT"] != 1 || res.MismatchCounts["GA/TT"] != 1 {
		t.Fatalf("mismatch counts: %v", res.MismatchCounts)
	}
	if res.NNCounts["AA"] != 2 || res.NNCounts["IA"] != 2 {
		t.Fatalf("NN counts: %v", res.NNCounts)
	}
	wantDH := 2*-7900.0 + 2*2300.0 + 1000 + 3000
	if res.Enthalpy != wantDH {
		t.Fatalf("ΔH = %g, want %g", res.Enthalpy, wantDH)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("DNA/DNA must not warn: %v", res.Warnings)
	}
}

func TestAnalyze_EdgeMismatch(t *testing.T) {
	for _, tc := range []struct{ seq, comp string }{
		{"AGAA", "TTTT"}, // second position
		{"GAAA", "TTTT"}, // first position
		{"AAGA", "TTTT"}, // second to last
	} {
		_, err := Analyze(DefaultContext(DNADNA), tc.seq, tc.comp, fixtureTables())
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s/%s: want ErrValidation, got %v", tc.seq, tc.comp, err)
		}
	}
}

func TestAnalyze_UnknownMismatch(t *testing.T) {
	// AC/TT is absent, AC/TC carries the sentinel.
	for _, seq := range []string{"AACCAA", "AAACAA"} {
		cmp := "TTTTTT"
		if seq == "AAACAA" {
			cmp = "TTTCTT"
		}
		_, err := Analyze(DefaultContext(DNADNA), seq, cmp, fixtureTables())
		if !errors.Is(err, ErrUnknownParameter) {
			t.Fatalf("%s/%s: want ErrUnknownParameter, got %v", seq, cmp, err)
		}
	}
}

func TestAnalyze_DanglingEnds(t *testing.T) {
	res, err := Analyze(DefaultContext(DNADNA), "-AAA", "TTTT", fixtureTables())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.DanglingCounts["-A/TT"] != 1 {
		t.Fatalf("dangling counts: %v", res.DanglingCounts)
	}
	wantDH := -500 + 2*2300.0 + 2*-7900.0
	if res.Enthalpy != wantDH {
		t.Fatalf("ΔH = %g, want %g", res.Enthalpy, wantDH)
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := Analyze(DefaultContext(DNADNA), "AAA-", "TTTT", fixtureTables())
		if !errors.Is(err, ErrUnknownParameter) {
			t.Fatalf("want ErrUnknownParameter, got %v", err)
		}
	})
	t.Run("nothing left to pair", func(t *testing.T) {
		tb := fixtureTables()
		tb.DanglingEnd = nnparam.MustNew(nnparam.KindDanglingEnd, "de.nn", nil, []nnparam.Entry{
			{Code: "-A/T-", DH: -100, DS: -0.1},
		})
		_, err := Analyze(DefaultContext(DNADNA), "-A", "T-", tb)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})
}

func TestAnalyze_WarningsDeduplicated(t *testing.T) {
	c := DefaultContext(DNARNA)
	res, err := Analyze(c, "-AAGAA", "TTTTTT", fixtureTables())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("want one dangling and one mismatch warning, got %v", res.Warnings)
	}

	tb := fixtureTables()
	tb.CustomMismatch, tb.CustomDanglingEnd = true, true
	res, _ = Analyze(c, "-AAGAA", "TTTTTT", tb)
	if len(res.Warnings) != 0 {
		t.Fatalf("custom tables must not warn: %v", res.Warnings)
	}
}

func TestAnalyze_NNMissContributesNothing(t *testing.T) {
	// AC is not in the fixture NN table.
	res, err := Analyze(DefaultContext(DNADNA), "AAC", "TTG", fixtureTables())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	wantDH := -7900 + 2300 + 100.0
	if res.Enthalpy != wantDH {
		t.Fatalf("ΔH = %g, want %g", res.Enthalpy, wantDH)
	}
	if res.NNCounts["IA"] != 1 || res.NNCounts["IG"] != 1 {
		t.Fatalf("initiation counts: %v", res.NNCounts)
	}
}

func TestAnalyze_Configuration(t *testing.T) {
	_, err := Analyze(DefaultContext(DNADNA), "AAA", "TTT", Tables{})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("want ErrConfiguration, got %v", err)
	}

	tb := fixtureTables()
	tb.NN = nnparam.MustNew(nnparam.KindNN, "noinit.nn", nil, []nnparam.Entry{{Code: "AA", DH: -7900, DS: -22.2}})
	if _, err := Analyze(DefaultContext(DNADNA), "AAA", "TTT", tb); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("missing IA: want ErrUnknownParameter, got %v", err)
	}
}

func TestAnalyze_Validation(t *testing.T) {
	for _, tc := range []struct{ seq, comp string }{
		{"", ""},
		{"AAN", "TTT"},
		{"A-A", "TTT"},
		{"AAA", "TT"},
	} {
		if _, err := Analyze(DefaultContext(DNADNA), tc.seq, tc.comp, fixtureTables()); !errors.Is(err, ErrValidation) {
			t.Fatalf("%q/%q: want ErrValidation, got %v", tc.seq, tc.comp, err)
		}
	}
}

type mapProvider map[nnparam.Kind]*nnparam.Table

func (m mapProvider) Lookup(k nnparam.Kind, _ Hybridization) (*nnparam.Table, error) {
	if t, ok := m[k]; ok {
		return t, nil
	}
	return nil, nnparam.ErrNotFound
}

func TestLoadTables(t *testing.T) {
	fx := fixtureTables()
	p := mapProvider{nnparam.KindNN: fx.NN, nnparam.KindMismatch: fx.Mismatch, nnparam.KindDanglingEnd: fx.DanglingEnd}
	got, err := LoadTables(p, DNADNA)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if got.NN != fx.NN || got.Mismatch != fx.Mismatch || got.DanglingEnd != fx.DanglingEnd {
		t.Fatalf("tables not wired through")
	}
	delete(p, nnparam.KindMismatch)
	if _, err := LoadTables(p, DNADNA); !errors.Is(err, nnparam.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAnalyze_ShortDuplex(t *testing.T) {
	for _, tc := range []struct{ seq, comp string }{
		{"-", "-"},
		{"A", "-"},
		{"-", "T"},
		{"A", "C"}, // lone mismatch
	} {
		_, err := Compute(DefaultContext(DNADNA), tc.seq, tc.comp, fixtureTables())
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%q/%q: want ErrValidation, got %v", tc.seq, tc.comp, err)
		}
	}

	res, err := Analyze(DefaultContext(DNADNA), "A", "T", fixtureTables())
	if err != nil {
		t.Fatalf("A/T: %v", err)
	}
	if res.NNCounts["IA"] != 2 {
		t.Fatalf("A/T: NN counts %v", res.NNCounts)
	}

	t.Run("lone pair between dangling ends", func(t *testing.T) {
		tb := fixtureTables()
		tb.DanglingEnd = nnparam.MustNew(nnparam.KindDanglingEnd, "de.nn", nil, []nnparam.Entry{
			{Code: "-G/TT", DH: -100, DS: -0.1},
			{Code: "G-/TT", DH: -100, DS: -0.1},
		})
		if _, err := Analyze(DefaultContext(DNADNA), "-G-", "TTT", tb); !errors.Is(err, ErrValidation) {
			t.Fatalf("want ErrValidation, got %v", err)
		}
	})
}
