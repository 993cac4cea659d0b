// core/nnparam/table.go
// Nearest-neighbor parameter tables (NN steps, mismatches, dangling ends).
// Units: enthalpy in cal/mol, entropy in cal/(K·mol).
//
// A Table is built once with New and never changes afterwards, so any number
// of calculations may read it concurrently without locking.

package nnparam

import (
	"errors"
	"fmt"
	"strings"
)

// Undefined is the enthalpy sentinel for a recognized pair with no parameters.
const Undefined = 99999

// ErrNotFound is returned by table providers when no table is available.
var ErrNotFound = errors.New("parameter table not found")

// Kind selects one of the three parameter families.
type Kind int

const (
	KindNN Kind = iota
	KindMismatch
	KindDanglingEnd
)

func (k Kind) String() string {
	switch k {
	case KindNN:
		return "nn"
	case KindMismatch:
		return "mismatch"
	case KindDanglingEnd:
		return "dangling-end"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Capacity is the maximum number of entries a table of this kind may hold.
func (k Kind) Capacity() int {
	switch k {
	case KindNN:
		return 18 // 16 steps + IA/IG initiation
	case KindMismatch:
		return 240
	case KindDanglingEnd:
		return 64
	default:
		return 0
	}
}

// Initiation pseudo-codes stored in NN tables.
const (
	CodeInitAT = "IA"
	CodeInitGC = "IG"
)

// Entry is one Crick pair code and its parameters.
type Entry struct {
	Code string  // "AC" for NN steps, "AG/TT" for mismatches and dangling ends
	DH   float64 // cal/mol
	DS   float64 // cal/(K·mol)
}

// Defined reports whether the entry carries usable parameters.
func (e Entry) Defined() bool { return e.DH != Undefined }

// Table is an immutable, ordered parameter set.
type Table struct {
	kind    Kind
	source  string
	refs    []string
	entries []Entry
}

// New validates and copies entries into a fresh Table. Codes are upper-cased
// and U is folded to T so lookups match normalized sequences.
func New(kind Kind, source string, refs []string, entries []Entry) (*Table, error) {
	if c := kind.Capacity(); c == 0 {
		return nil, fmt.Errorf("nnparam: unknown table kind %d", int(kind))
	} else if len(entries) > c {
		return nil, fmt.Errorf("nnparam: %s: %d entries exceed the %s limit of %d", source, len(entries), kind, c)
	}
	t := &Table{
		kind:    kind,
		source:  source,
		refs:    append([]string(nil), refs...),
		entries: make([]Entry, 0, len(entries)),
	}
	for i, e := range entries {
		code := foldCode(e.Code)
		if err := checkCode(kind, code); err != nil {
			return nil, fmt.Errorf("nnparam: %s: entry %d: %w", source, i+1, err)
		}
		t.entries = append(t.entries, Entry{Code: code, DH: e.DH, DS: e.DS})
	}
	return t, nil
}

// MustNew is New for static tables; it panics on error.
func MustNew(kind Kind, source string, refs []string, entries []Entry) *Table {
	t, err := New(kind, source, refs, entries)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Kind() Kind     { return t.kind }
func (t *Table) Source() string { return t.source }
func (t *Table) Len() int       { return len(t.entries) }

// References returns a copy of the citation lines.
func (t *Table) References() []string { return append([]string(nil), t.refs...) }

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []Entry { return append([]Entry(nil), t.entries...) }

// FindByPrefix returns the first entry (in table order) whose code starts
// with prefix. Callers pass "XY" for NN steps and "XY/ZW" for four-base codes.
func (t *Table) FindByPrefix(prefix string) (Entry, bool) {
	if t == nil || prefix == "" {
		return Entry{}, false
	}
	for _, e := range t.entries {
		if strings.HasPrefix(e.Code, prefix) {
			return e, true
		}
	}
	return Entry{}, false
}

func foldCode(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'u', 'U':
			return 'T'
		}
		if r >= 'a' && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, strings.TrimSpace(s))
}

func checkCode(kind Kind, code string) error {
	switch kind {
	case KindNN:
		if code == CodeInitAT || code == CodeInitGC {
			return nil
		}
		if len(code) < 2 || !isBase(code[0]) || !isBase(code[1]) {
			return fmt.Errorf("bad NN code %q", code)
		}
	case KindMismatch, KindDanglingEnd:
		gapOK := kind == KindDanglingEnd
		if len(code) < 5 || code[2] != '/' {
			return fmt.Errorf("bad %s code %q (want XX/YY)", kind, code)
		}
		for _, i := range []int{0, 1, 3, 4} {
			if !isBase(code[i]) && !(gapOK && code[i] == '-') {
				return fmt.Errorf("bad %s code %q", kind, code)
			}
		}
	}
	return nil
}

func isBase(b byte) bool { return b == 'A' || b == 'C' || b == 'G' || b == 'T' }
