// core/oligo/validate.go
package oligo

import (
	"fmt"
	"unicode"
)

// Gap marks an unpaired (dangling) position; legal only at either terminus.
const Gap = '-'

// Normalize removes spaces/quotes, uppercases bases and folds U to T.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		r = unicode.ToUpper(r)
		if r == 'U' {
			r = 'T'
		}
		out = append(out, r)
	}
	return string(out)
}

// Validate returns a normalized sequence or an error if any char is outside
// {A,C,G,T,U,-} or a gap sits anywhere but the first or last position.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("empty sequence")
	}
	bad := 0
	first := -1
	for i := 0; i < len(s); i++ {
		if !isLegal(s[i]) {
			bad++
			if first < 0 {
				first = i
			}
		}
	}
	if bad > 0 {
		return "", fmt.Errorf("sequence contains %d non legal character(s), first %q at %d; allowed: A C G T U -", bad, s[first], first+1)
	}
	for i := 1; i < len(s)-1; i++ {
		if s[i] == Gap {
			return "", fmt.Errorf("gap at %d: '-' is only allowed at either end", i+1)
		}
	}
	return s, nil
}

// Complement returns the base-by-base Watson–Crick complement (no reverse);
// gaps are kept in place. The input must already be normalized.
func Complement(seq string) (string, error) {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c, ok := complement(seq[i])
		if !ok {
			return "", fmt.Errorf("cannot complement base %q at %d", seq[i], i+1)
		}
		out[i] = c
	}
	return string(out), nil
}

// IsWC reports strict Watson–Crick pairing of a top base with its partner.
// ok is false when the top base is not A/C/G/T.
func IsWC(top, bottom byte) (paired, ok bool) {
	c, ok := complement(top)
	if !ok || top == Gap {
		return false, false
	}
	return c == bottom, true
}

// GCCount returns the number of G or C bases.
func GCCount(seq string) int {
	n := 0
	for i := 0; i < len(seq); i++ {
		if seq[i] == 'G' || seq[i] == 'C' {
			n++
		}
	}
	return n
}

func complement(b byte) (byte, bool) {
	switch b {
	case 'A':
		return 'T', true
	case 'C':
		return 'G', true
	case 'G':
		return 'C', true
	case 'T':
		return 'A', true
	case Gap:
		return Gap, true
	default:
		return 0, false
	}
}

func isLegal(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', Gap:
		return true
	}
	return false
}
