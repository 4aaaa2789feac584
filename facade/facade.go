// Package facade narrows a language's type-checker down to the handful of
// operations the project indexer needs: enumerate compilation units in
// dependency order, walk each unit's documents, and classify identifier
// occurrences against resolved symbols. Concrete type-checker integration
// lives in sibling packages (goadapter); this package only declares the
// contract and a fake used by tests.
package facade

import "github.com/arrowcode/symgraph/protocol"

// OccurrenceKind classifies how an identifier occurrence relates to the
// symbol it resolves to.
type OccurrenceKind int

const (
	// Declaration is a symbol's own declaring identifier (e.g. a func name
	// in its signature, a struct field's name).
	Declaration OccurrenceKind = iota
	// Definition is an occurrence that should be treated as a go-to-
	// definition target distinct from Declaration (e.g. an assignment
	// target that defines a new local binding).
	Definition
	// Reference is a read or call-site use of a previously declared symbol.
	Reference
	// TypeReference is a use of a symbol in type position (e.g. a struct
	// field's type, a function parameter type), feeding typeDefinitionResult.
	TypeReference
)

// Document is one source file belonging to a compilation unit.
type Document struct {
	// URI is the document's canonical location, e.g. "file:///abs/path.go".
	URI string
	// Contents is the document's source text. May be nil when the pipeline
	// is configured not to embed contents.
	Contents []byte
}

// Symbol is a single named entity a type-checker can resolve occurrences
// to: a function, type, field, method, package-level variable, or package
// itself (for import occurrences).
type Symbol interface {
	// ID is stable and unique within the owning CompilationUnit. Together
	// with the unit's name it is the Data Manager's record key for an
	// unexported symbol; exported symbols are keyed by PackagePath and
	// their symbol path instead.
	ID() string
	// DisplayName is the symbol's short name, as it appears at its
	// declaration site.
	DisplayName() string
	// Exported reports whether the symbol is visible outside its declaring
	// package, relevant to export-moniker eligibility.
	Exported() bool
	// PackagePath is the import path of the package the symbol belongs to.
	PackagePath() string
	// Qualifiers returns the chain of enclosing container names (struct,
	// interface, or receiver type) used to build a moniker identifier's
	// symbol-path segment, outermost first.
	Qualifiers() []string
	// Doc returns the symbol's associated doc comment, or "" if none.
	Doc() string
	// Implements returns the symbols (interfaces) this symbol implements,
	// or that implement this symbol if it is itself an interface. No
	// component in this module calls it, and no implementationResult is
	// emitted.
	Implements() []Symbol
}

// Occurrence is a single identifier appearance in a document.
type Occurrence interface {
	Kind() OccurrenceKind
	Start() protocol.Pos
	End() protocol.Pos
	Symbol() Symbol
}

// Alias reports that one symbol's identity is an alias for another's — a
// re-export, a type-alias declaration, or an assignment that makes one
// declared name denote another's declaration. The Indexer forwards every
// reported Alias to the Data Manager for next-edge emission.
type Alias struct {
	FromUnit CompilationUnit
	From     Symbol
	ToUnit   CompilationUnit
	To       Symbol
}

// CompilationUnit is one independently type-checked unit of source (a Go
// package, in the concrete adapter).
type CompilationUnit interface {
	// Name identifies the unit for diagnostics and for the pipeline's
	// dependency graph; for Go this is the import path.
	Name() string
	// Dependencies lists the Name()s of other compilation units this one's
	// declarations reference, used to compute the pipeline's processing
	// order.
	Dependencies() []string
	// Documents returns every source document belonging to this unit.
	Documents() []Document
	// Occurrences returns every identifier occurrence in doc.
	Occurrences(doc Document) []Occurrence
	// ExportedSymbols returns every symbol this unit exposes outside
	// itself, used both for export-moniker assignment and as the
	// candidate pool for unresolved-reference suggestions.
	ExportedSymbols() []Symbol
	// Aliases returns every aliasing relationship declared in this unit.
	Aliases() []Alias
}

// Loader produces the full set of compilation units making up a workspace.
type Loader interface {
	Load(workspaceRoot string) ([]CompilationUnit, error)
}

// LoadError wraps a fatal failure to construct a type-checked program.
type LoadError struct {
	WorkspaceRoot string
	Err           error
}

func (e *LoadError) Error() string {
	return "load " + e.WorkspaceRoot + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }
