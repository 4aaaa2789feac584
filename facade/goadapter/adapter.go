// Package goadapter is the concrete facade.Loader backed by
// golang.org/x/tools/go/packages: it loads a Go module's packages with
// full type information and syntax, then exposes each loaded
// *packages.Package as a facade.CompilationUnit.
package goadapter

import (
	"fmt"
	"go/ast"
	"go/types"
	"os"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/arrowcode/symgraph/facade"
	"github.com/arrowcode/symgraph/protocol"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// Loader loads Go packages under a module root via go/packages.
type Loader struct{}

func New() *Loader { return &Loader{} }

func (l *Loader) Load(workspaceRoot string) ([]facade.CompilationUnit, error) {
	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  workspaceRoot,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, &facade.LoadError{WorkspaceRoot: workspaceRoot, Err: err}
	}

	if packages.PrintErrors(pkgs) > 0 {
		return nil, &facade.LoadError{WorkspaceRoot: workspaceRoot, Err: fmt.Errorf("one or more packages failed to type-check")}
	}

	units := make([]facade.CompilationUnit, 0, len(pkgs))
	for _, pkg := range pkgs {
		units = append(units, &unit{pkg: pkg})
	}

	return units, nil
}

// unit adapts a single *packages.Package to facade.CompilationUnit.
type unit struct {
	pkg *packages.Package
}

func (u *unit) Name() string { return u.pkg.PkgPath }

func (u *unit) Dependencies() []string {
	deps := make([]string, 0, len(u.pkg.Imports))
	for path := range u.pkg.Imports {
		deps = append(deps, path)
	}
	return deps
}

func (u *unit) Documents() []facade.Document {
	docs := make([]facade.Document, 0, len(u.pkg.CompiledGoFiles))
	for _, path := range u.pkg.CompiledGoFiles {
		contents, _ := os.ReadFile(path)
		docs = append(docs, facade.Document{URI: "file://" + path, Contents: contents})
	}
	return docs
}

func (u *unit) file(uri string) *ast.File {
	path := strings.TrimPrefix(uri, "file://")
	for i, f := range u.pkg.CompiledGoFiles {
		if f == path {
			return u.pkg.Syntax[i]
		}
	}
	return nil
}

func (u *unit) Occurrences(doc facade.Document) []facade.Occurrence {
	file := u.file(doc.URI)
	if file == nil {
		return nil
	}

	var occs []facade.Occurrence
	ast.Inspect(file, func(n ast.Node) bool {
		ident, ok := n.(*ast.Ident)
		if !ok {
			return true
		}

		obj := u.pkg.TypesInfo.ObjectOf(ident)
		if obj == nil {
			return true
		}

		kind := facade.Reference
		if def := u.pkg.TypesInfo.Defs[ident]; def != nil && def == obj {
			kind = facade.Declaration
		} else if _, isTypeName := obj.(*types.TypeName); isTypeName {
			kind = facade.TypeReference
		}

		start := u.pkg.Fset.Position(ident.Pos())
		end := u.pkg.Fset.Position(ident.End())

		occs = append(occs, &occurrence{
			kind:   kind,
			start:  protocol.Pos{Line: start.Line - 1, Character: start.Column - 1},
			end:    protocol.Pos{Line: end.Line - 1, Character: end.Column - 1},
			symbol: u.symbolFor(obj, file, ident),
		})

		return true
	})

	return occs
}

func (u *unit) ExportedSymbols() []facade.Symbol {
	var out []facade.Symbol
	scope := u.pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if obj.Exported() {
			out = append(out, u.symbolFor(obj, nil, nil))
		}
	}
	return out
}

// Aliases reports every package-level `type X = Y` declaration as an
// alias from X to Y's underlying named type. Go's other alias-like forms
// (dot imports, re-assigned package vars) don't carry the same identity
// guarantee a type alias does, so they are left as ordinary references.
func (u *unit) Aliases() []facade.Alias {
	var aliases []facade.Alias

	scope := u.pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)

		tn, ok := obj.(*types.TypeName)
		if !ok || !tn.IsAlias() {
			continue
		}

		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}

		target := named.Obj()
		if target == nil || target == tn {
			continue
		}

		aliases = append(aliases, facade.Alias{
			FromUnit: u,
			From:     u.symbolFor(tn, nil, nil),
			ToUnit:   u,
			To:       u.symbolFor(target, nil, nil),
		})
	}

	return aliases
}

func (u *unit) symbolFor(obj types.Object, file *ast.File, ident *ast.Ident) facade.Symbol {
	return &symbol{unit: u, obj: obj, file: file, ident: ident}
}

// symbol adapts a types.Object to facade.Symbol.
type symbol struct {
	unit  *unit
	obj   types.Object
	file  *ast.File
	ident *ast.Ident
}

func (s *symbol) ID() string {
	return fmt.Sprintf("%s:%d", s.PackagePath(), s.obj.Pos())
}

func (s *symbol) DisplayName() string { return s.obj.Name() }
func (s *symbol) Exported() bool      { return s.obj.Exported() }

func (s *symbol) PackagePath() string {
	if pkg := s.obj.Pkg(); pkg != nil {
		return pkg.Path()
	}
	return ""
}

// Qualifiers walks the AST path enclosing the declaring identifier to
// collect struct/interface/receiver container names for field and method
// symbols.
func (s *symbol) Qualifiers() []string {
	var qualifiers []string

	if v, ok := s.obj.(*types.Var); ok && v.IsField() && s.file != nil && s.ident != nil {
		path, _ := astutil.PathEnclosingInterval(s.file, s.ident.Pos(), s.ident.Pos())
		for i := len(path) - 1; i >= 0; i-- {
			switch q := path[i].(type) {
			case *ast.Field:
				if q.Pos() != v.Pos() && len(q.Names) > 0 {
					qualifiers = append(qualifiers, q.Names[0].String())
				}
			case *ast.TypeSpec:
				qualifiers = append(qualifiers, q.Name.String())
			}
		}
	}

	if sig, ok := s.obj.Type().(*types.Signature); ok {
		if recv := sig.Recv(); recv != nil {
			name := strings.TrimPrefix(recv.Type().String(), "*")
			name = strings.TrimPrefix(name, s.PackagePath()+".")
			qualifiers = append(qualifiers, name)
		}
	}

	return qualifiers
}

func (s *symbol) Doc() string {
	// Always empty: no doc comments are extracted, so symbols loaded
	// through this adapter get no hoverResult.
	return ""
}

func (s *symbol) Implements() []facade.Symbol {
	named, ok := s.obj.Type().(*types.Named)
	if !ok {
		return nil
	}

	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return nil
	}

	var impls []facade.Symbol
	scope := s.unit.pkg.Types.Scope()
	for _, name := range scope.Names() {
		other := scope.Lookup(name)
		if other == s.obj {
			continue
		}
		if types.Implements(other.Type(), iface) || types.Implements(types.NewPointer(other.Type()), iface) {
			impls = append(impls, s.unit.symbolFor(other, nil, nil))
		}
	}
	return impls
}

// occurrence adapts a resolved identifier to facade.Occurrence.
type occurrence struct {
	kind   facade.OccurrenceKind
	start  protocol.Pos
	end    protocol.Pos
	symbol facade.Symbol
}

func (o *occurrence) Kind() facade.OccurrenceKind { return o.kind }
func (o *occurrence) Start() protocol.Pos         { return o.start }
func (o *occurrence) End() protocol.Pos           { return o.end }
func (o *occurrence) Symbol() facade.Symbol       { return o.symbol }
