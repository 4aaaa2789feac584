// Package manifest discovers and parses the package manifest governing a
// compilation unit: in the Go domain, the nearest enclosing go.mod plus the
// dependency versions reported by `go list -m -json all`.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/arrowcode/symgraph/log"
)

// Dependency is one resolved entry of a manifest's dependency map: the
// module's canonical name and the version string used for moniker
// PackageInformation.
type Dependency struct {
	Name    string
	Version string
}

// Manifest is a single discovered go.mod together with its entry point
// module name and resolved dependency versions.
type Manifest struct {
	// Path is the directory containing the go.mod.
	Path string
	// ModuleName is the module directive's path, the entry point used to
	// decide which symbols are export-eligible.
	ModuleName string
	// ModuleVersion is the version this module's own symbols are exported
	// under. Callers typically fill this from source-control (the nearest
	// tag, or a short revision) since go.mod carries no version for the
	// module it defines. Empty if unknown.
	ModuleVersion string
	// Dependencies maps an import path to the declared module providing it.
	Dependencies map[string]Dependency
}

// stdlibName is the synthetic module name used for the Go standard
// library, which has no go.mod of its own.
const stdlibName = "std"

var moduleDirectiveRE = regexp.MustCompile(`(?m)^module\s+(\S+)`)

// Discover walks upward from path looking for the nearest go.mod, then
// resolves its dependency versions via `go list -m -json all`. It returns
// (nil, nil) if no go.mod is found between path and the filesystem root
// rather than treating that as fatal; callers warn and continue without
// moniker package information in that case.
func Discover(path string) (*Manifest, error) {
	dir, err := findGoMod(path)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		log.Infoln("WARNING: no go.mod found; symbols will be indexed without export monikers")
		return nil, nil
	}

	log.Debugf("resolving manifest for %s", dir)

	moduleName, err := readModuleName(filepath.Join(dir, "go.mod"))
	if err != nil {
		return nil, errors.Wrap(err, "read module name")
	}

	if err := download(dir); err != nil {
		return nil, errors.Wrap(err, "download dependencies")
	}

	deps, err := listDependencies(dir)
	if err != nil {
		return nil, errors.Wrap(err, "list dependencies")
	}

	log.Debugf("resolved %d dependencies for module %s", len(deps), moduleName)

	return &Manifest{Path: dir, ModuleName: moduleName, Dependencies: deps}, nil
}

func findGoMod(path string) (string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func readModuleName(goModPath string) (string, error) {
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return "", err
	}

	m := moduleDirectiveRE.FindSubmatch(data)
	if m == nil {
		return "", errors.Errorf("%s: no module directive found", goModPath)
	}

	return string(m[1]), nil
}

// download ensures every dependency declared by the go.mod in dir is
// present in the local module cache, so the subsequent `go list` never
// fails on a missing module.
func download(dir string) error {
	cmd := exec.Command("go", "mod", "download")
	cmd.Dir = dir

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("go mod download: %w\n%s", err, out)
	}
	return nil
}

// jsonModule mirrors the shape of one `go list -m -json` record.
type jsonModule struct {
	Path    string
	Version string
	Replace *jsonModule
}

func listDependencies(dir string) (map[string]Dependency, error) {
	cmd := exec.Command("go", "list", "-mod=readonly", "-m", "-json", "all")
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("go list -m: %w", err)
	}

	deps := map[string]Dependency{}
	decoder := json.NewDecoder(bytes.NewReader(out))

	for {
		var m jsonModule
		if err := decoder.Decode(&m); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		path := m.Path
		if m.Replace != nil {
			m = *m.Replace
		}

		deps[path] = Dependency{Name: m.Path, Version: cleanVersion(m.Version)}
	}

	deps[stdlibName] = Dependency{Name: stdlibName, Version: ""}

	return deps, nil
}

var pseudoVersionRE = regexp.MustCompile(`^.*-([a-f0-9]{12})$`)

// cleanVersion strips the "// indirect" / "+incompatible" decorations `go
// list` emits and collapses a pseudo-version to its trailing commit SHA.
func cleanVersion(version string) string {
	version = strings.TrimSpace(strings.TrimSuffix(version, "// indirect"))
	version = strings.TrimSpace(strings.TrimSuffix(version, "+incompatible"))

	if m := pseudoVersionRE.FindStringSubmatch(version); len(m) > 0 {
		return m[1]
	}

	return version
}

// IsStandardLibrary reports whether pkg is part of the Go standard
// library: standard library import paths never contain a dot (no host
// component).
func IsStandardLibrary(pkg string) bool {
	return !strings.Contains(pkg, ".")
}
