// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	front := []string{"melt/internal/meltapp", "melt/internal/meltcli", "melt/internal/appshell", "melt/cmd/"}
	bans := map[string][]string{
		"melt/internal/paramstore": append([]string{"melt/internal/writers", "melt/internal/batch"}, front...),
		"melt/internal/batch":      append([]string{"melt/internal/writers", "melt/internal/paramstore"}, front...),
		"melt/internal/writers":    append([]string{"melt/internal/paramstore"}, front...),
		"melt/internal/jsonutil":   front,
		"melt/internal/jsonlutil":  front,
		"melt/internal/cliutil":    front,
		"melt/pkg/api":             append([]string{"melt/internal/"}, front...),
		"melt/internal/meltcli":    {"melt/internal/meltapp", "melt/internal/appshell", "melt/cmd/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "melt/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if imp != prefix && !strings.HasPrefix(imp, prefix+"/") {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "melt/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
