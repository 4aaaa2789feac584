// Package moniker assigns stable, cross-project symbol identities
// ("monikers") to exported and imported symbols, and deduplicates the
// PackageInformation vertices those monikers link to.
package moniker

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/vcs"

	"github.com/arrowcode/symgraph/emit"
	"github.com/arrowcode/symgraph/facade"
	"github.com/arrowcode/symgraph/manifest"
	"github.com/arrowcode/symgraph/protocol"
)

// Scheme is the default moniker scheme for this domain, naming the Go
// module system as the package manager monikers are resolved against.
const Scheme = "gomod"

// Resolver assigns import and export monikers to symbols, deduplicating
// PackageInformation vertices by (name, version, manager) across the
// entire pipeline's lifetime.
type Resolver struct {
	emitter *emit.Emitter
	// packageInformationIDs is keyed on name+"\x00"+version+"\x00"+manager,
	// per the (name, version, manager) dedup rule.
	packageInformationIDs map[string]protocol.ID
}

// New returns a Resolver that emits through e.
func New(e *emit.Emitter) *Resolver {
	return &Resolver{
		emitter:               e,
		packageInformationIDs: map[string]protocol.ID{},
	}
}

// ExportMoniker emits an export moniker for sym, linked to sourceID (a
// Range or ResultSet identifier), when the owning manifest has a module
// name. A symbol with no bound manifest gets no export moniker and is
// left as a local symbol.
func (r *Resolver) ExportMoniker(sourceID protocol.ID, sym facade.Symbol, m *manifest.Manifest) (protocol.ID, error) {
	if m == nil || m.ModuleName == "" {
		return "", nil
	}

	packageInformationID, err := r.ensurePackageInformation(m.ModuleName, m.ModuleVersion, Scheme)
	if err != nil {
		return "", errors.Wrap(err, "ensurePackageInformation")
	}

	identifier := Identifier(sym)
	return r.addMoniker(protocol.MonikerExport, identifier, sourceID, packageInformationID)
}

// ImportMoniker emits an import moniker for sym, linked to sourceID, if
// sym's package path matches (a prefix of) a dependency declared in m. It
// returns an empty ID and no error if no matching dependency is found,
// e.g. because the symbol belongs to the current module rather than an
// external one.
func (r *Resolver) ImportMoniker(sourceID protocol.ID, sym facade.Symbol, m *manifest.Manifest) (protocol.ID, error) {
	if m == nil {
		return "", nil
	}

	pkg := sym.PackagePath()
	if manifest.IsStandardLibrary(pkg) {
		pkg = "std/" + pkg
	}

	for _, prefix := range packagePrefixes(pkg) {
		if prefix == m.ModuleName {
			return "", nil
		}

		dep, ok := m.Dependencies[prefix]
		if !ok {
			continue
		}

		packageInformationID, err := r.ensurePackageInformation(dep.Name, dep.Version, Scheme)
		if err != nil {
			return "", errors.Wrap(err, "ensurePackageInformation")
		}

		identifier := strings.TrimPrefix(fmt.Sprintf("%s:%s", pkg, SymbolPath(sym)), ":")
		return r.addMoniker(protocol.MonikerImport, identifier, sourceID, packageInformationID)
	}

	return "", nil
}

// LocalMoniker emits a local moniker for sym with no PackageInformation
// link. The Data Manager uses it, in both moniker modes, for a symbol with
// neither an export nor an import moniker that is referenced outside its
// declaring document. The identifier is sym.ID().
func (r *Resolver) LocalMoniker(sourceID protocol.ID, sym facade.Symbol) (protocol.ID, error) {
	monikerVertex := r.emitter.EmitMoniker(protocol.MonikerLocal, Scheme, sym.ID())
	if _, err := r.emitLink(sourceID, monikerVertex.ID); err != nil {
		return "", err
	}
	return monikerVertex.ID, nil
}

func (r *Resolver) addMoniker(kind protocol.MonikerKind, identifier string, sourceID, packageInformationID protocol.ID) (protocol.ID, error) {
	monikerVertex := r.emitter.EmitMoniker(kind, Scheme, identifier)
	r.emitter.EmitPackageInformationEdge(monikerVertex.ID, packageInformationID)

	if _, err := r.emitLink(sourceID, monikerVertex.ID); err != nil {
		return "", err
	}

	return monikerVertex.ID, nil
}

func (r *Resolver) emitLink(sourceID, monikerID protocol.ID) (protocol.ID, error) {
	edge := r.emitter.EmitMonikerEdge(sourceID, monikerID)
	return edge.ID, nil
}

// ensurePackageInformation returns the identifier of a PackageInformation
// vertex for (name, version, manager), emitting one only the first time
// that triple is seen (Open Question (b)).
func (r *Resolver) ensurePackageInformation(name, version, manager string) (protocol.ID, error) {
	key := name + "\x00" + version + "\x00" + manager

	if id, ok := r.packageInformationIDs[key]; ok {
		return id, nil
	}

	v := r.emitter.EmitPackageInformation(name, manager, version)
	r.packageInformationIDs[key] = v.ID
	return v.ID, nil
}

// packagePrefixes returns every prefix of a slash-separated package path,
// longest first, so dependency lookups match the narrowest enclosing
// module ("foo/bar/baz", then "foo/bar", then "foo").
func packagePrefixes(pkg string) []string {
	parts := strings.Split(pkg, "/")
	prefixes := make([]string, len(parts))
	for i := 1; i <= len(parts); i++ {
		prefixes[len(parts)-i] = strings.Join(parts[:i], "/")
	}
	return prefixes
}

// SymbolPath renders a symbol's moniker symbol-path segment: its
// container-qualifier chain joined with its display name by ".". Unlike
// Identifier, this performs no VCS lookup, so it is cheap enough to use
// as a per-occurrence cross-unit key component.
func SymbolPath(sym facade.Symbol) string {
	return strings.Join(append(append([]string{}, sym.Qualifiers()...), sym.DisplayName()), ".")
}

// Identifier renders the `<package-path>:<symbol-path>` moniker identifier
// for an exported symbol, canonicalizing the module name via
// golang.org/x/tools/go/vcs when possible so that identifiers remain
// stable across forks/mirrors of the same repository. The package path
// carries both the module and the path within it; there is no separate
// path segment, and no `[N]` anonymous-scope segments are produced.
func Identifier(sym facade.Symbol) string {
	pkg := sym.PackagePath()

	if root, err := vcs.RepoRootForImportPath(pkg, false); err == nil {
		suffix := strings.TrimPrefix(pkg, root.Root)
		pkg = root.Repo + suffix
	}

	return strings.Trim(fmt.Sprintf("%s:%s", pkg, SymbolPath(sym)), ":")
}
