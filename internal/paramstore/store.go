// internal/paramstore/store.go
// Built-in and user-supplied nearest-neighbor parameter tables.
package paramstore

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"melt-core/fasta"
	"melt-core/nnparam"
	"melt-core/thermo"
)

//go:embed data/*.nn
var builtinFS embed.FS

// Built-in table names.
const (
	NameAll97a   = "all97a.nn"   // DNA/DNA
	NameSug95a   = "sug95a.nn"   // DNA/RNA
	NameXia98a   = "xia98a.nn"   // RNA/RNA
	NameDNADNAMM = "dnadnamm.nn" // mismatches
	NameDNADNADE = "dnadnade.nn" // dangling ends
)

var builtinKinds = map[string]nnparam.Kind{
	NameAll97a:   nnparam.KindNN,
	NameSug95a:   nnparam.KindNN,
	NameXia98a:   nnparam.KindNN,
	NameDNADNAMM: nnparam.KindMismatch,
	NameDNADNADE: nnparam.KindDanglingEnd,
}

// DefaultName returns the built-in table used for kind and h.
func DefaultName(kind nnparam.Kind, h thermo.Hybridization) (string, error) {
	switch kind {
	case nnparam.KindMismatch:
		return NameDNADNAMM, nil
	case nnparam.KindDanglingEnd:
		return NameDNADNADE, nil
	case nnparam.KindNN:
		switch h {
		case thermo.DNADNA:
			return NameAll97a, nil
		case thermo.DNARNA:
			return NameSug95a, nil
		case thermo.RNARNA:
			return NameXia98a, nil
		}
	}
	return "", fmt.Errorf("paramstore: %w: no built-in %s table for %s", nnparam.ErrNotFound, kind, h)
}

type cached struct {
	once sync.Once
	t    *nnparam.Table
	err  error
}

// Store hands out built-in tables, parsing each at most once. The tables
// are immutable, so a Store is safe for concurrent use.
type Store struct {
	tables map[string]*cached
}

// New returns a Store over the embedded tables.
func New() *Store {
	s := &Store{tables: make(map[string]*cached, len(builtinKinds))}
	for name := range builtinKinds {
		s.tables[name] = &cached{}
	}
	return s
}

// Lookup implements thermo.Provider.
func (s *Store) Lookup(kind nnparam.Kind, h thermo.Hybridization) (*nnparam.Table, error) {
	name, err := DefaultName(kind, h)
	if err != nil {
		return nil, err
	}
	return s.Builtin(name)
}

// Builtin returns the named embedded table.
func (s *Store) Builtin(name string) (*nnparam.Table, error) {
	c, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("paramstore: %w: %q (have %s)", nnparam.ErrNotFound, name, strings.Join(Names(), ", "))
	}
	c.once.Do(func() {
		fh, err := builtinFS.Open(path.Join("data", name))
		if err != nil {
			c.err = err
			return
		}
		defer fh.Close()
		c.t, c.err = Parse(fh, builtinKinds[name], name)
	})
	return c.t, c.err
}

// Raw returns the text of an embedded table.
func Raw(name string) ([]byte, error) {
	if _, ok := builtinKinds[name]; !ok {
		return nil, fmt.Errorf("paramstore: %w: %q", nnparam.ErrNotFound, name)
	}
	return builtinFS.ReadFile(path.Join("data", name))
}

// KindOf reports the kind of a built-in table.
func KindOf(name string) (nnparam.Kind, bool) {
	k, ok := builtinKinds[name]
	return k, ok
}

// Names lists the built-in tables in sorted order.
func Names() []string {
	out := make([]string, 0, len(builtinKinds))
	for n := range builtinKinds {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// LoadFile parses a user-supplied table. gzip and zstd files are accepted.
func LoadFile(p string, kind nnparam.Kind) (*nnparam.Table, error) {
	rc, err := fasta.Open(p)
	if err != nil {
		return nil, fmt.Errorf("paramstore: cannot open %s table %s: %w", kind, p, err)
	}
	defer rc.Close()
	return Parse(rc, kind, p)
}

// Resolve returns the built-in table called name, or parses name as a file
// when no built-in matches.
func (s *Store) Resolve(name string, kind nnparam.Kind) (*nnparam.Table, error) {
	if k, ok := builtinKinds[name]; ok {
		if k != kind {
			return nil, fmt.Errorf("paramstore: %s is a %s table, not %s", name, k, kind)
		}
		return s.Builtin(name)
	}
	return LoadFile(name, kind)
}
