// internal/paramstore/parse.go
package paramstore

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"melt-core/nnparam"
)

// MaxReferences caps the citation lines kept per file; extra ones are ignored.
const MaxReferences = 16

// Parse reads a parameter file:
//
//	/ comment            (blank lines too)
//	R citation line
//	CODE  enthalpy  entropy
//
// Entry lines start with a base letter (A C G T U, any case), I for the
// NN initiation codes, or '-' for dangling ends. Values are cal/mol and
// cal/(K·mol). Other lines are ignored.
func Parse(r io.Reader, kind nnparam.Kind, source string) (*nnparam.Table, error) {
	var (
		refs    []string
		entries []nnparam.Entry
		ln      int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch c := line[0]; {
		case c == '/':
			continue
		case c == 'R':
			if len(refs) < MaxReferences {
				refs = append(refs, line)
			}
		case isEntryStart(c):
			f := strings.Fields(line)
			if len(f) < 3 {
				return nil, fmt.Errorf("%s:%d: want \"code enthalpy entropy\", got %q", source, ln, line)
			}
			dh, err := strconv.ParseFloat(f[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad enthalpy %q", source, ln, f[1])
			}
			ds, err := strconv.ParseFloat(f[2], 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad entropy %q", source, ln, f[2])
			}
			if len(entries) == kind.Capacity() {
				return nil, fmt.Errorf("%s:%d: too many entries, a %s table holds at most %d", source, ln, kind, kind.Capacity())
			}
			entries = append(entries, nnparam.Entry{Code: f[0], DH: dh, DS: ds})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: no parameter entries", source)
	}
	return nnparam.New(kind, source, refs, entries)
}

func isEntryStart(c byte) bool {
	switch c {
	case 'A', 'C', 'G', 'T', 'U', 'I', 'a', 'c', 'g', 't', 'u', 'i', '-':
		return true
	}
	return false
}
