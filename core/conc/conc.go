// Package conc parses concentrations written with optional molar units.
package conc

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses "50mM", "250nM", "3uM", "0.05" or "1e-7M" → mol/L.
func Parse(spec string) (float64, error) {
	s := strings.TrimSpace(strings.ToLower(spec))
	unit := ""
	num := s
	for _, u := range []string{"nm", "um", "µm", "μm", "mm", "m"} {
		if strings.HasSuffix(s, u) {
			unit = u
			num = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}
	if num == "" {
		return 0, fmt.Errorf("empty concentration %q", spec)
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("bad concentration %q", spec)
	}
	switch unit {
	case "nm":
		return f * 1e-9, nil
	case "um", "µm", "μm":
		return f * 1e-6, nil
	case "mm":
		return f * 1e-3, nil
	default:
		return f, nil
	}
}

// Format renders mol/L the way the reports print it (e.g. "5.00e-02").
func Format(m float64) string { return fmt.Sprintf("%5.2e", m) }
