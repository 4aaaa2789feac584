package facade

import "github.com/arrowcode/symgraph/protocol"

// Fake is an in-memory Loader used by package tests throughout this
// module so that pipeline-level behavior can be exercised without a real
// type-checker or filesystem access.
type Fake struct {
	Units []CompilationUnit
}

func (f *Fake) Load(string) ([]CompilationUnit, error) {
	return f.Units, nil
}

// FakeSymbol is a Symbol literal for use in tests.
type FakeSymbol struct {
	IDValue          string
	DisplayNameValue string
	ExportedValue    bool
	PackagePathValue string
	QualifiersValue  []string
	DocValue         string
	ImplementsValue  []Symbol
}

func (s *FakeSymbol) ID() string             { return s.IDValue }
func (s *FakeSymbol) DisplayName() string    { return s.DisplayNameValue }
func (s *FakeSymbol) Exported() bool         { return s.ExportedValue }
func (s *FakeSymbol) PackagePath() string    { return s.PackagePathValue }
func (s *FakeSymbol) Qualifiers() []string   { return s.QualifiersValue }
func (s *FakeSymbol) Doc() string            { return s.DocValue }
func (s *FakeSymbol) Implements() []Symbol   { return s.ImplementsValue }

// FakeOccurrence is an Occurrence literal for use in tests.
type FakeOccurrence struct {
	KindValue   OccurrenceKind
	StartValue  protocol.Pos
	EndValue    protocol.Pos
	SymbolValue Symbol
}

func (o *FakeOccurrence) Kind() OccurrenceKind  { return o.KindValue }
func (o *FakeOccurrence) Start() protocol.Pos   { return o.StartValue }
func (o *FakeOccurrence) End() protocol.Pos     { return o.EndValue }
func (o *FakeOccurrence) Symbol() Symbol        { return o.SymbolValue }

// FakeUnit is a CompilationUnit literal for use in tests.
type FakeUnit struct {
	NameValue         string
	DependenciesValue []string
	DocumentsValue    []Document
	OccurrencesByURI  map[string][]Occurrence
	ExportedValue     []Symbol
	AliasesValue      []Alias
}

func (u *FakeUnit) Name() string              { return u.NameValue }
func (u *FakeUnit) Dependencies() []string    { return u.DependenciesValue }
func (u *FakeUnit) Documents() []Document     { return u.DocumentsValue }
func (u *FakeUnit) ExportedSymbols() []Symbol { return u.ExportedValue }
func (u *FakeUnit) Aliases() []Alias          { return u.AliasesValue }

func (u *FakeUnit) Occurrences(doc Document) []Occurrence {
	return u.OccurrencesByURI[doc.URI]
}
