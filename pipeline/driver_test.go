package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowcode/symgraph/datamanager"
	"github.com/arrowcode/symgraph/facade"
	"github.com/arrowcode/symgraph/manifest"
	"github.com/arrowcode/symgraph/protocol"
)

func unitWithSymbol(name string, deps []string, symID, symName string) facade.CompilationUnit {
	sym := &facade.FakeSymbol{IDValue: symID, DisplayNameValue: symName, ExportedValue: true, PackagePathValue: name}
	doc := facade.Document{URI: "file:///" + name + ".go", Contents: []byte("package " + name)}
	return &facade.FakeUnit{
		NameValue:         name,
		DependenciesValue: deps,
		DocumentsValue:    []facade.Document{doc},
		ExportedValue:     []facade.Symbol{sym},
		OccurrencesByURI: map[string][]facade.Occurrence{
			doc.URI: {
				&facade.FakeOccurrence{
					KindValue:   facade.Declaration,
					SymbolValue: sym,
					StartValue:  protocol.Pos{Line: 0, Character: 0},
					EndValue:    protocol.Pos{Line: 0, Character: len(symName)},
				},
			},
		},
	}
}

func TestRunOrdersUnitsAndEmitsPreamble(t *testing.T) {
	loader := &facade.Fake{Units: []facade.CompilationUnit{
		unitWithSymbol("b", []string{"a"}, "b.Sym", "Sym"),
		unitWithSymbol("a", nil, "a.Sym", "Sym"),
	}}

	var buf bytes.Buffer
	d := New(loader, Config{WorkspaceRoot: "/workspace", MonikerMode: datamanager.Lenient}, &buf, nil, "test")

	err := d.Run(context.Background())
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.Contains(out, `"metaData"`))
	require.True(t, strings.Contains(out, `"project"`))
	assert.Less(t, strings.Index(out, `"file:///a.go"`), strings.Index(out, `"file:///b.go"`), "a is indexed before b, which depends on it")

	firstA := strings.Index(out, `"a.Sym"`)
	assert.Equal(t, -1, firstA, "fake symbols are not emitted verbatim, only their IDs are referenced")
}

func TestRunRejectsEmptyWorkspaceRoot(t *testing.T) {
	loader := &facade.Fake{}
	d := New(loader, Config{}, &bytes.Buffer{}, nil, "test")

	err := d.Run(context.Background())
	require.Error(t, err)
	assert.IsType(t, &ConfigError{}, err)
}

func TestRunRejectsConflictingManifestOptions(t *testing.T) {
	loader := &facade.Fake{}
	cfg := Config{WorkspaceRoot: "/workspace", ManifestPath: "/workspace", PublishedPackages: []string{"foo"}}
	d := New(loader, cfg, &bytes.Buffer{}, nil, "test")

	err := d.Run(context.Background())
	require.Error(t, err)
	assert.IsType(t, &ConfigError{}, err)
}

// element is one decoded dump line, used by the scenario tests below to
// assert on emitted graph shape rather than raw substring presence.
type element map[string]interface{}

func decodeDump(t *testing.T, out string) []element {
	t.Helper()

	var elements []element
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var el element
		require.NoError(t, json.Unmarshal([]byte(line), &el))
		elements = append(elements, el)
	}
	return elements
}

func withLabel(elements []element, label string) []element {
	var matches []element
	for _, el := range elements {
		if el["label"] == label {
			matches = append(matches, el)
		}
	}
	return matches
}

func withProperty(elements []element, property string) []element {
	var matches []element
	for _, el := range elements {
		if el["property"] == property {
			matches = append(matches, el)
		}
	}
	return matches
}

// recordingReporter captures every ReportInternalSymbol call along with a
// progress log, used to assert both diagnostic content and that progress
// reporting completes before the dump is written (scenario 6).
type recordingReporter struct {
	symbolIDs []string
	events    []string
}

func (r *recordingReporter) Begin(totalProjects int) { r.events = append(r.events, "begin") }
func (r *recordingReporter) End()                    { r.events = append(r.events, "end") }
func (r *recordingReporter) ReportProgress(count int) {
	r.events = append(r.events, "progress")
}
func (r *recordingReporter) ReportStatus(project string, symbols, documents int, elapsed time.Duration) {
	r.events = append(r.events, "status:"+project)
}
func (r *recordingReporter) ReportInternalSymbol(symbolID, displayName, suggestion string) {
	r.symbolIDs = append(r.symbolIDs, symbolID)
}

func singleOccurrenceUnit(unitName, uri string, sym facade.Symbol, kind facade.OccurrenceKind) *facade.FakeUnit {
	doc := facade.Document{URI: uri, Contents: []byte("package " + unitName)}
	return &facade.FakeUnit{
		NameValue:      unitName,
		DocumentsValue: []facade.Document{doc},
		ExportedValue:  []facade.Symbol{sym},
		OccurrencesByURI: map[string][]facade.Occurrence{
			doc.URI: {
				&facade.FakeOccurrence{KindValue: kind, SymbolValue: sym, StartValue: protocol.Pos{}, EndValue: protocol.Pos{Character: 3}},
			},
		},
	}
}

// Scenario 1: a single file containing a single local symbol produces
// exactly one ResultSet with one definitionResult, and nothing else tries
// to reference it.
func TestScenarioSingleLocalSymbol(t *testing.T) {
	sym := &facade.FakeSymbol{IDValue: "sym-1", DisplayNameValue: "Foo", ExportedValue: false}
	unit := singleOccurrenceUnit("pkgA", "file:///a.go", sym, facade.Declaration)

	var buf bytes.Buffer
	d := New(&facade.Fake{Units: []facade.CompilationUnit{unit}}, Config{WorkspaceRoot: "/workspace", MonikerMode: datamanager.Lenient}, &buf, nil, "test")
	require.NoError(t, d.Run(context.Background()))

	elements := decodeDump(t, buf.String())
	assert.Len(t, withLabel(elements, "resultSet"), 1)
	assert.Len(t, withLabel(elements, "definitionResult"), 1)
	assert.Len(t, withLabel(elements, "referenceResult"), 0)
	assert.Len(t, withProperty(elements, "definitions"), 1)
}

// Scenario 2: a re-export alias emits exactly one next edge between the
// two symbols' ResultSets and suppresses a separate definitionResult for
// the aliasing symbol's own declaration range.
func TestScenarioReExportAlias(t *testing.T) {
	a := &facade.FakeSymbol{IDValue: "a", DisplayNameValue: "A", ExportedValue: false}
	b := &facade.FakeSymbol{IDValue: "b", DisplayNameValue: "B", ExportedValue: false}
	doc := facade.Document{URI: "file:///a.go", Contents: []byte("package pkgA")}
	unit := &facade.FakeUnit{
		NameValue:      "pkgA",
		DocumentsValue: []facade.Document{doc},
		ExportedValue:  []facade.Symbol{a, b},
		OccurrencesByURI: map[string][]facade.Occurrence{
			doc.URI: {
				&facade.FakeOccurrence{KindValue: facade.Declaration, SymbolValue: a, StartValue: protocol.Pos{}, EndValue: protocol.Pos{Character: 1}},
				&facade.FakeOccurrence{KindValue: facade.Declaration, SymbolValue: b, StartValue: protocol.Pos{Character: 2}, EndValue: protocol.Pos{Character: 3}},
			},
		},
	}
	unit.AliasesValue = []facade.Alias{{FromUnit: unit, From: a, ToUnit: unit, To: b}}

	var buf bytes.Buffer
	d := New(&facade.Fake{Units: []facade.CompilationUnit{unit}}, Config{WorkspaceRoot: "/workspace", MonikerMode: datamanager.Lenient}, &buf, nil, "test")
	require.NoError(t, d.Run(context.Background()))

	elements := decodeDump(t, buf.String())
	assert.Len(t, withLabel(elements, "resultSet"), 2, "a and b each still get their own ResultSet")
	assert.Len(t, withLabel(elements, "definitionResult"), 1, "only b's declaration surfaces a definitionResult")
	assert.Equal(t, 1, countResultSetToResultSetEdges(elements), "exactly one alias next edge, a -> b")
}

// countResultSetToResultSetEdges counts "next" edges whose endpoints are
// both ResultSet vertices, excluding the per-occurrence range -> ResultSet
// next edges every Record call also emits.
func countResultSetToResultSetEdges(elements []element) int {
	resultSets := map[interface{}]bool{}
	for _, rs := range withLabel(elements, "resultSet") {
		resultSets[rs["id"]] = true
	}

	count := 0
	for _, n := range withLabel(elements, "next") {
		if resultSets[n["inV"]] && resultSets[n["outV"]] {
			count++
		}
	}
	return count
}

// Scenario 3: a symbol exported by one unit and imported by another lands
// on one record, so both units' ranges land under one referenceResult,
// finalized only once the pipeline closes (Testable Property "moniker
// round-trip").
func TestScenarioCrossProjectMonikerRoundTrip(t *testing.T) {
	sym := &facade.FakeSymbol{
		IDValue: "libA.Foo", DisplayNameValue: "Foo",
		ExportedValue: true, PackagePathValue: "github.com/acme/liba",
	}
	libA := singleOccurrenceUnit("github.com/acme/liba", "file:///liba/a.go", sym, facade.Declaration)

	importSym := &facade.FakeSymbol{
		IDValue: "appB.useFoo.Foo", DisplayNameValue: "Foo",
		ExportedValue: true, PackagePathValue: "github.com/acme/liba",
	}
	appB := singleOccurrenceUnit("github.com/acme/appb", "file:///appb/b.go", importSym, facade.Reference)
	appB.DependenciesValue = []string{"github.com/acme/liba"}

	m := &manifest.Manifest{
		ModuleName: "github.com/acme/appb",
		Dependencies: map[string]manifest.Dependency{
			"github.com/acme/liba": {Name: "github.com/acme/liba", Version: "v1.0.0"},
		},
	}

	var buf bytes.Buffer
	cfg := Config{WorkspaceRoot: "/workspace", MonikerMode: datamanager.Lenient, Manifest: m}
	d := New(&facade.Fake{Units: []facade.CompilationUnit{appB, libA}}, cfg, &buf, nil, "test")
	require.NoError(t, d.Run(context.Background()))

	elements := decodeDump(t, buf.String())
	assert.Len(t, withLabel(elements, "resultSet"), 1, "the exported symbol shares one ResultSet across both units")
	assert.Len(t, withLabel(elements, "referenceResult"), 1)
	assert.Len(t, withProperty(elements, "references"), 1, "appB's reference lands as one item edge under libA's referenceResult")

	monikers := withLabel(elements, "moniker")
	var kinds []string
	for _, mk := range monikers {
		kinds = append(kinds, fmt.Sprintf("%v", mk["kind"]))
	}
	assert.Contains(t, kinds, "export")
	assert.Contains(t, kinds, "import")
}

// Scenario 4: an aliasing cycle is refused rather than emitted, and is
// reported as a diagnostic instead of aborting the run.
func TestScenarioAliasingCycleIsRefused(t *testing.T) {
	a := &facade.FakeSymbol{IDValue: "a", DisplayNameValue: "A", ExportedValue: false}
	b := &facade.FakeSymbol{IDValue: "b", DisplayNameValue: "B", ExportedValue: false}
	doc := facade.Document{URI: "file:///a.go", Contents: []byte("package pkgA")}
	unit := &facade.FakeUnit{
		NameValue:      "pkgA",
		DocumentsValue: []facade.Document{doc},
		ExportedValue:  []facade.Symbol{a, b},
		OccurrencesByURI: map[string][]facade.Occurrence{
			doc.URI: {
				&facade.FakeOccurrence{KindValue: facade.Declaration, SymbolValue: a, StartValue: protocol.Pos{}, EndValue: protocol.Pos{Character: 1}},
				&facade.FakeOccurrence{KindValue: facade.Declaration, SymbolValue: b, StartValue: protocol.Pos{Character: 2}, EndValue: protocol.Pos{Character: 3}},
			},
		},
	}
	unit.AliasesValue = []facade.Alias{
		{FromUnit: unit, From: a, ToUnit: unit, To: b},
		{FromUnit: unit, From: b, ToUnit: unit, To: a},
	}

	rep := &recordingReporter{}
	var buf bytes.Buffer
	d := New(&facade.Fake{Units: []facade.CompilationUnit{unit}}, Config{WorkspaceRoot: "/workspace", MonikerMode: datamanager.Lenient}, &buf, rep, "test")
	require.NoError(t, d.Run(context.Background()))

	elements := decodeDump(t, buf.String())
	assert.Equal(t, 1, countResultSetToResultSetEdges(elements), "only the first alias edge is emitted; the back edge that would close the cycle is refused")
	assert.Contains(t, rep.symbolIDs, "b", "the refused cycle edge is reported as a diagnostic")
}

// Scenario 5: a document-local symbol referenced from outside its
// declaring document falls back to a local moniker, and strict mode
// reports it as a diagnostic.
func TestScenarioInternalSymbolReferencedExternallyStrict(t *testing.T) {
	sym := &facade.FakeSymbol{IDValue: "sym-1", DisplayNameValue: "helper", ExportedValue: false}
	docA := facade.Document{URI: "file:///a.go", Contents: []byte("package pkgA")}
	docB := facade.Document{URI: "file:///b.go", Contents: []byte("package pkgA")}
	unit := &facade.FakeUnit{
		NameValue:      "pkgA",
		DocumentsValue: []facade.Document{docA, docB},
		OccurrencesByURI: map[string][]facade.Occurrence{
			docA.URI: {&facade.FakeOccurrence{KindValue: facade.Declaration, SymbolValue: sym, StartValue: protocol.Pos{}, EndValue: protocol.Pos{Character: 1}}},
			docB.URI: {&facade.FakeOccurrence{KindValue: facade.Reference, SymbolValue: sym, StartValue: protocol.Pos{}, EndValue: protocol.Pos{Character: 1}}},
		},
	}

	rep := &recordingReporter{}
	var buf bytes.Buffer
	cfg := Config{WorkspaceRoot: "/workspace", MonikerMode: datamanager.Strict}
	d := New(&facade.Fake{Units: []facade.CompilationUnit{unit}}, cfg, &buf, rep, "test")
	require.NoError(t, d.Run(context.Background()))

	elements := decodeDump(t, buf.String())
	localMonikers := 0
	for _, mk := range withLabel(elements, "moniker") {
		if mk["kind"] == "local" {
			localMonikers++
		}
	}
	assert.Equal(t, 1, localMonikers, "the cross-document reference falls back to a local moniker")
	assert.Contains(t, rep.symbolIDs, "sym-1", "strict mode reports the cross-document reference as a diagnostic")
}

// Scenario 6: stdout carries the dump and progress reporting happens
// entirely through the Reporter, never interleaved into the dump stream.
func TestScenarioStdoutAndProgressDoNotInterleave(t *testing.T) {
	symA := &facade.FakeSymbol{IDValue: "a.Sym", DisplayNameValue: "Sym", ExportedValue: false}
	symB := &facade.FakeSymbol{IDValue: "b.Sym", DisplayNameValue: "Sym", ExportedValue: false}
	unitA := singleOccurrenceUnit("a", "file:///a.go", symA, facade.Declaration)
	unitB := singleOccurrenceUnit("b", "file:///b.go", symB, facade.Declaration)

	rep := &recordingReporter{}
	var buf bytes.Buffer
	cfg := Config{WorkspaceRoot: "/workspace", MonikerMode: datamanager.Lenient}
	d := New(&facade.Fake{Units: []facade.CompilationUnit{unitA, unitB}}, cfg, &buf, rep, "test")
	require.NoError(t, d.Run(context.Background()))

	elements := decodeDump(t, buf.String())
	for _, el := range elements {
		_, hasLabel := el["label"]
		assert.True(t, hasLabel, "every line written to the dump stream decodes as a dump element, never a progress message")
	}

	require.GreaterOrEqual(t, len(rep.events), 4)
	assert.Equal(t, "begin", rep.events[0])
	assert.Equal(t, "end", rep.events[len(rep.events)-1], "End is reported only after every project has been indexed")
}

// Testable Property: moniker round-trip — a symbol exported as moniker M
// and imported with the same M produces exactly one shared reference
// result reachable from both projects' ResultSets, never two.
func TestPropertyMonikerRoundTrip(t *testing.T) {
	sym := &facade.FakeSymbol{IDValue: "libA.Foo", DisplayNameValue: "Foo", ExportedValue: true, PackagePathValue: "github.com/acme/liba"}
	libA := singleOccurrenceUnit("github.com/acme/liba", "file:///liba/a.go", sym, facade.Declaration)

	importSym1 := &facade.FakeSymbol{IDValue: "appB.Foo", DisplayNameValue: "Foo", ExportedValue: true, PackagePathValue: "github.com/acme/liba"}
	appB := singleOccurrenceUnit("github.com/acme/appb", "file:///appb/b.go", importSym1, facade.Reference)
	appB.DependenciesValue = []string{"github.com/acme/liba"}

	importSym2 := &facade.FakeSymbol{IDValue: "appC.Foo", DisplayNameValue: "Foo", ExportedValue: true, PackagePathValue: "github.com/acme/liba"}
	appC := singleOccurrenceUnit("github.com/acme/appc", "file:///appc/c.go", importSym2, facade.Reference)
	appC.DependenciesValue = []string{"github.com/acme/liba"}

	m := &manifest.Manifest{
		ModuleName: "github.com/acme/root",
		Dependencies: map[string]manifest.Dependency{
			"github.com/acme/liba": {Name: "github.com/acme/liba", Version: "v1.0.0"},
		},
	}

	var buf bytes.Buffer
	cfg := Config{WorkspaceRoot: "/workspace", MonikerMode: datamanager.Lenient, Manifest: m}
	d := New(&facade.Fake{Units: []facade.CompilationUnit{appB, appC, libA}}, cfg, &buf, nil, "test")
	require.NoError(t, d.Run(context.Background()))

	elements := decodeDump(t, buf.String())
	assert.Len(t, withLabel(elements, "resultSet"), 1, "two importers of the same export share one ResultSet")
	assert.Len(t, withLabel(elements, "referenceResult"), 1, "both importers' references land under exactly one referenceResult")
	assert.Len(t, withProperty(elements, "references"), 2, "one references item edge per importing document, both hanging off the same referenceResult")
}

// Testable Property: document closure — closing a document never
// finalizes a global record's results; only project close (definitions)
// and pipeline close (references) do.
func TestPropertyDocumentClosureDefersGlobalFinalization(t *testing.T) {
	sym := &facade.FakeSymbol{IDValue: "libA.Foo", DisplayNameValue: "Foo", ExportedValue: true, PackagePathValue: "github.com/acme/liba"}
	doc := facade.Document{URI: "file:///liba/a.go", Contents: []byte("package liba")}
	unit := &facade.FakeUnit{
		NameValue:      "github.com/acme/liba",
		DocumentsValue: []facade.Document{doc},
		ExportedValue:  []facade.Symbol{sym},
		OccurrencesByURI: map[string][]facade.Occurrence{
			doc.URI: {&facade.FakeOccurrence{KindValue: facade.Declaration, SymbolValue: sym, StartValue: protocol.Pos{}, EndValue: protocol.Pos{Character: 3}}},
		},
	}

	var buf bytes.Buffer
	cfg := Config{WorkspaceRoot: "/workspace", MonikerMode: datamanager.Strict}
	d := New(&facade.Fake{Units: []facade.CompilationUnit{unit}}, cfg, &buf, nil, "test")
	require.NoError(t, d.Run(context.Background()))

	elements := decodeDump(t, buf.String())
	assert.Len(t, withLabel(elements, "definitionResult"), 1, "the exported symbol's definitionResult is still emitted once its sole project closes")
}
