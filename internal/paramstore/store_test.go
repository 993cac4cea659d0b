package paramstore

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melt-core/nnparam"
	"melt-core/thermo"
)

const sample = `/ a comment
R Someone (2024) J Test 1:1

aa   -7900  -22.2
ia    2300    4.1
# not an entry line
`

func TestParse(t *testing.T) {
	tbl, err := Parse(strings.NewReader(sample), nnparam.KindNN, "sample.nn")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"R Someone (2024) J Test 1:1"}, tbl.References())
	e, ok := tbl.FindByPrefix("AA")
	require.True(t, ok)
	assert.Equal(t, -7900.0, e.DH)
	_, ok = tbl.FindByPrefix(nnparam.CodeInitAT)
	assert.True(t, ok)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"short line":   "AA -7900\n",
		"bad enthalpy": "AA x -22\n",
		"bad entropy":  "AA -7900 y\n",
		"empty":        "/ nothing here\n",
		"bad code":     "AX -1 -1\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(in), nnparam.KindNN, "x.nn")
			assert.Error(t, err)
		})
	}

	var b strings.Builder
	for i := 0; i < 19; i++ {
		b.WriteString("AA -1 -1\n")
	}
	_, err := Parse(strings.NewReader(b.String()), nnparam.KindNN, "big.nn")
	assert.ErrorContains(t, err, "big.nn:19")
}

func TestParse_ReferenceCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxReferences+4; i++ {
		b.WriteString("R ref\n")
	}
	b.WriteString("AA -1 -1\n")
	tbl, err := Parse(strings.NewReader(b.String()), nnparam.KindNN, "refs.nn")
	require.NoError(t, err)
	assert.Len(t, tbl.References(), MaxReferences)
}

func TestBuiltins_Parse(t *testing.T) {
	s := New()
	for _, name := range Names() {
		tbl, err := s.Builtin(name)
		require.NoError(t, err, name)
		k, _ := KindOf(name)
		assert.Equal(t, k, tbl.Kind(), name)
		assert.NotEmpty(t, tbl.References(), name)
	}
	nn, err := s.Builtin(NameAll97a)
	require.NoError(t, err)
	assert.Equal(t, 18, nn.Len())
	e, ok := nn.FindByPrefix("AA")
	require.True(t, ok)
	assert.Equal(t, nnparam.Entry{Code: "AA", DH: -7900, DS: -22.2}, e)

	de, err := s.Builtin(NameDNADNADE)
	require.NoError(t, err)
	assert.Equal(t, 64, de.Len())
}

func TestStore_Lookup(t *testing.T) {
	s := New()
	for h, want := range map[thermo.Hybridization]string{
		thermo.DNADNA: NameAll97a,
		thermo.DNARNA: NameSug95a,
		thermo.RNARNA: NameXia98a,
	} {
		tbl, err := s.Lookup(nnparam.KindNN, h)
		require.NoError(t, err)
		assert.Equal(t, want, tbl.Source())
	}
	_, err := s.Lookup(nnparam.KindNN, thermo.HybridUnset)
	assert.True(t, errors.Is(err, nnparam.ErrNotFound))

	_, err = s.Builtin("nope.nn")
	assert.ErrorIs(t, err, nnparam.ErrNotFound)
}

func TestStore_ConcurrentBuiltinIsShared(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	got := make([]*nnparam.Table, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = s.Builtin(NameDNADNAMM)
		}(i)
	}
	wg.Wait()
	for _, tbl := range got {
		assert.Same(t, got[0], tbl)
	}
}

func TestBuiltins_FixtureTm(t *testing.T) {
	tb, err := thermo.LoadTables(New(), thermo.DNADNA)
	require.NoError(t, err)
	res, err := thermo.Compute(thermo.DefaultContext(thermo.DNADNA), "AAA", "TTT", tb)
	require.NoError(t, err)
	assert.InDelta(t, -122.94, res.TmC, 0.01)
}

func TestBuiltins_DanglingAndMismatch(t *testing.T) {
	tb, err := thermo.LoadTables(New(), thermo.DNADNA)
	require.NoError(t, err)
	c := thermo.DefaultContext(thermo.DNADNA)

	res, err := thermo.Compute(c, "-GCATGC", "ACGTACG", tb)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DanglingCounts["-G/AC"])

	res, err = thermo.Compute(c, "GCAGGCA", "CGTTCGT", tb)
	require.NoError(t, err)
	assert.Equal(t, 1, res.MismatchCounts["AG/TT"])
	assert.Equal(t, 1, res.MismatchCounts["GG/TC"])
}

func TestLoadFile_GzipAndResolve(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "custom.nn.gz")
	fh, err := os.Create(fn)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())

	s := New()
	tbl, err := s.Resolve(fn, nnparam.KindNN)
	require.NoError(t, err)
	assert.Equal(t, fn, tbl.Source())

	tbl, err = s.Resolve(NameXia98a, nnparam.KindNN)
	require.NoError(t, err)
	assert.Equal(t, NameXia98a, tbl.Source())

	_, err = s.Resolve(NameDNADNAMM, nnparam.KindNN)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.nn"), nnparam.KindNN)
	assert.Error(t, err)
}

func TestRaw(t *testing.T) {
	b, err := Raw(NameAll97a)
	require.NoError(t, err)
	assert.Contains(t, string(b), "IA")
	_, err = Raw("nope")
	assert.Error(t, err)
}
