// Package datamanager owns the lifetime of every symbol record produced
// while indexing a workspace: the per-symbol ResultSet and its deferred
// definition/reference/type-definition/hover results (no
// implementationResult is ever emitted), the
// next-edge alias graph between ResultSets, and the document/project/
// pipeline close events that decide when a record's accumulated ranges are
// finally linked and when the record itself can be released.
package datamanager

import (
	"fmt"

	"github.com/arrowcode/symgraph/emit"
	"github.com/arrowcode/symgraph/facade"
	"github.com/arrowcode/symgraph/manifest"
	"github.com/arrowcode/symgraph/moniker"
	"github.com/arrowcode/symgraph/protocol"
	"github.com/arrowcode/symgraph/reporter"
)

// Mode selects how aggressively document-local records are evicted once
// their defining document or project closes.
type Mode int

const (
	// Lenient retains every document-local record until its project
	// closes. No suspicious-locality diagnostics are reported.
	Lenient Mode = iota
	// Strict evicts a document-local record as soon as every document that
	// touched it has closed, and reports a diagnostic if a later reference
	// to an evicted symbol is seen.
	Strict
)

// record is the accumulated state for one symbol: its ResultSet, the
// lazily-allocated result vertices hanging off it, and the ranges that
// have referenced it, bucketed by document so that item edges can be
// emitted per document as required by the one-item-edge-per-document-and-
// property rule.
type record struct {
	resultSetID protocol.ID

	definitionResultID     protocol.ID
	referenceResultID      protocol.ID
	typeDefinitionResultID protocol.ID
	implementationResultID protocol.ID
	hoverResultID          protocol.ID

	definitionsByDoc    map[protocol.ID][]protocol.ID
	referencesByDoc     map[protocol.ID][]protocol.ID
	typeReferencesByDoc map[protocol.ID][]protocol.ID

	openDocs map[protocol.ID]bool

	displayName string
	// global marks a record as partitioned globally: its definition and
	// type-definition results finalize at project close, and its
	// reference result finalizes at pipeline close, instead of at
	// document close.
	global bool

	// declaringDoc is the document the record was first observed in, used
	// to detect a document-local symbol referenced from outside its
	// declaring document.
	declaringDoc protocol.ID

	hasExportMoniker bool
	hasImportMoniker bool
	hasLocalMoniker  bool
	// crossDocumentChecked gates the local-moniker fallback so it is
	// attempted at most once per record, regardless of how many further
	// documents go on to reference the symbol.
	crossDocumentChecked bool

	// aliased marks a record that has an outgoing alias next-edge to
	// another record. Its own definition/reference/type-definition
	// results are never emitted: navigation over its ranges is expected
	// to follow the next edge to the aliased record's results instead.
	aliased bool
}

// Manager tracks every symbol record for the lifetime of a pipeline run.
type Manager struct {
	emitter  *emit.Emitter
	monikers *moniker.Resolver
	reporter reporter.Reporter
	mode     Mode

	records map[string]*record
	// aliasEdges records outgoing next-edges already emitted between
	// symbol keys, so that re-recording the same alias is a no-op
	// (idempotent alias) and so cycles can be detected before emission.
	aliasEdges map[string]map[string]bool

	// openDocuments is the set of document URIs already opened by an
	// earlier project in this pipeline run, so a shared document is never
	// re-emitted.
	openDocuments map[string]protocol.ID

	// evicted remembers the display name of every Strict-mode record
	// evicted after its last open document closed, so a later Record call
	// against the same key can report a suspicious document-locality
	// diagnostic instead of silently starting a disconnected new record.
	evicted map[string]string

	// renderHover converts a symbol's raw doc comment into the markup
	// stored in its hoverResult. Defaults to the identity function; the
	// pipeline wires in project.RenderHover for Markdown rendering.
	renderHover func(string) string
}

// SetHoverRenderer overrides how a symbol's raw doc comment is rendered
// before being stored in a hoverResult vertex.
func (m *Manager) SetHoverRenderer(fn func(string) string) {
	m.renderHover = fn
}

// New returns a Manager that emits through e and resolves monikers
// through m.
func New(e *emit.Emitter, m *moniker.Resolver, rep reporter.Reporter, mode Mode) *Manager {
	return &Manager{
		emitter:       e,
		monikers:      m,
		reporter:      rep,
		mode:          mode,
		records:       map[string]*record{},
		aliasEdges:    map[string]map[string]bool{},
		openDocuments: map[string]protocol.ID{},
		evicted:       map[string]string{},
		renderHover:   func(s string) string { return s },
	}
}

// key returns the canonical record key for sym as observed from unit.
// A symbol eligible for an export or import moniker is partitioned
// globally and keyed by its cross-unit canonical identity — package path
// plus container-qualified symbol path — independent of which
// compilation unit is asking, so that a symbol exported from one project
// and imported by another land on exactly one record, and in turn
// exactly one ResultSet and referenceResult (Testable Property "Moniker
// round-trip"). Every other symbol is document-local and keyed per
// compilation unit, since facade.Symbol.ID is only unique within its
// owning unit.
func key(unit facade.CompilationUnit, sym facade.Symbol) string {
	if sym.Exported() {
		return "global\x00" + sym.PackagePath() + "\x00" + moniker.SymbolPath(sym)
	}
	return "local\x00" + unit.Name() + "\x00" + sym.ID()
}

// OpenDocument returns the Document vertex ID for uri, emitting a new
// Document vertex only the first time uri is seen across the whole
// pipeline run.
func (m *Manager) OpenDocument(uri string, languageID string, contents []byte) protocol.ID {
	if id, ok := m.openDocuments[uri]; ok {
		return id
	}

	doc := m.emitter.EmitDocument(languageID, uri, contents)
	m.openDocuments[uri] = doc.ID
	return doc.ID
}

// CloseDocument flushes every document-local record touched by
// documentID: it emits the item edges grouping that document's
// accumulated definition/reference/type-reference ranges, links the
// corresponding result vertices to the record's ResultSet on first use,
// and — under Strict mode — evicts a record once no open document still
// references it. Global records are left untouched here: their result
// vertices finalize at project close (definitions, type-definitions) or
// pipeline close (references) instead, since an exported symbol may
// still be referenced by a project this pipeline hasn't walked yet.
func (m *Manager) CloseDocument(documentID protocol.ID) {
	for k, rec := range m.records {
		if !rec.openDocs[documentID] {
			continue
		}

		if !rec.global {
			m.flushDoc(rec, documentID)
		}
		delete(rec.openDocs, documentID)

		if m.mode == Strict && !rec.global && len(rec.openDocs) == 0 {
			m.evicted[k] = rec.displayName
			delete(m.records, k)
		}
	}
}

// CloseProject finalizes every global record's project-scoped result
// vertices: definitions and type-definitions. Topological ordering
// guarantees a symbol's declaring project is fully walked, and so has
// already accumulated every definition and type-reference range it will
// ever see, before any importing project runs — so flushing these
// buckets unconditionally at the triggering project's close is safe
// regardless of which project that is, and a no-op on every later call
// since the buckets are drained. The referenceResult bucket is
// pipeline-scoped (an importer processed after this project closes may
// still append to it) and is left for ClosePipeline. Every document-local
// record with no open document left is released here in both modes; under
// Strict mode CloseDocument will ordinarily have already evicted it.
func (m *Manager) CloseProject() {
	for k, rec := range m.records {
		if rec.global {
			for doc := range rec.definitionsByDoc {
				m.flushDefinitions(rec, doc)
			}
			for doc := range rec.typeReferencesByDoc {
				m.flushTypeReferences(rec, doc)
			}
			continue
		}

		if len(rec.openDocs) == 0 {
			if m.mode == Strict {
				m.evicted[k] = rec.displayName
			}
			delete(m.records, k)
		}
	}
}

// ClosePipeline finalizes the pipeline-scoped referenceResult bucket of
// every remaining global record, flushes whatever definitions or
// type-references somehow remain (a safety net; CloseProject ordinarily
// already drained these), and releases every remaining record regardless
// of mode. Called once, after the last project has been indexed.
func (m *Manager) ClosePipeline() {
	for _, rec := range m.records {
		for doc := range rec.referencesByDoc {
			m.flushReferences(rec, doc)
		}
		for doc := range rec.definitionsByDoc {
			m.flushDefinitions(rec, doc)
		}
		for doc := range rec.typeReferencesByDoc {
			m.flushTypeReferences(rec, doc)
		}
	}
	m.records = map[string]*record{}
}

// Record deposits an occurrence of sym at rangeID in documentID, allocating
// the symbol's record and ResultSet on first use. manifestForUnit is the
// manifest governing unit, consulted for both export- and import-moniker
// eligibility on every call (not just the first) so that a symbol's
// record picks up an export moniker from its declaring unit and an
// import moniker from an importing unit regardless of which one is
// processed first.
func (m *Manager) Record(kind facade.OccurrenceKind, unit facade.CompilationUnit, sym facade.Symbol, rangeID, documentID protocol.ID, manifestForUnit *manifest.Manifest) error {
	k := key(unit, sym)

	rec, ok := m.records[k]
	if !ok {
		if _, wasEvicted := m.evicted[k]; wasEvicted {
			m.reporter.ReportInternalSymbol(sym.ID(), sym.DisplayName(), "")
			delete(m.evicted, k)
		}
		rec = m.newRecord(sym, documentID)
		m.records[k] = rec
	}

	m.ensureMonikers(rec, sym, manifestForUnit)

	// A symbol with no export, import, or local moniker yet, seen from
	// outside its declaring document, falls back to a local moniker (the
	// spec's fallback for symbols that never got a real moniker but are
	// nonetheless referenced across document boundaries).
	if !rec.crossDocumentChecked && !rec.hasExportMoniker && !rec.hasImportMoniker && documentID != rec.declaringDoc {
		rec.crossDocumentChecked = true

		if _, err := m.monikers.LocalMoniker(rec.resultSetID, sym); err == nil {
			rec.hasLocalMoniker = true
		}

		if m.mode == Strict {
			m.reporter.ReportInternalSymbol(sym.ID(), sym.DisplayName(), "")
		}
	}

	rec.openDocs[documentID] = true

	m.emitter.EmitNext(rangeID, rec.resultSetID)

	switch kind {
	case facade.Declaration, facade.Definition:
		rec.definitionsByDoc[documentID] = append(rec.definitionsByDoc[documentID], rangeID)
	case facade.Reference:
		rec.referencesByDoc[documentID] = append(rec.referencesByDoc[documentID], rangeID)
	case facade.TypeReference:
		rec.typeReferencesByDoc[documentID] = append(rec.typeReferencesByDoc[documentID], rangeID)
	}

	return nil
}

// ensureMonikers attaches whichever of sym's export/import monikers rec
// is still missing, given manifestForUnit. Safe to call on every Record
// invocation: each half is a no-op once its flag is set, so a symbol
// visited from N compilation units still ends up with at most one export
// moniker and one import moniker, regardless of N.
func (m *Manager) ensureMonikers(rec *record, sym facade.Symbol, manifestForUnit *manifest.Manifest) {
	if manifestForUnit == nil {
		return
	}

	if !rec.hasExportMoniker && sym.Exported() {
		if id, err := m.monikers.ExportMoniker(rec.resultSetID, sym, manifestForUnit); err != nil {
			m.reporter.ReportInternalSymbol(sym.ID(), sym.DisplayName(), "")
		} else if id != "" {
			rec.hasExportMoniker = true
		}
	}

	if !rec.hasImportMoniker {
		if id, err := m.monikers.ImportMoniker(rec.resultSetID, sym, manifestForUnit); err != nil {
			m.reporter.ReportInternalSymbol(sym.ID(), sym.DisplayName(), "")
		} else if id != "" {
			rec.hasImportMoniker = true
		}
	}
}

func (m *Manager) newRecord(sym facade.Symbol, documentID protocol.ID) *record {
	resultSet := m.emitter.EmitResultSet()

	rec := &record{
		resultSetID:         resultSet.ID,
		definitionsByDoc:    map[protocol.ID][]protocol.ID{},
		referencesByDoc:     map[protocol.ID][]protocol.ID{},
		typeReferencesByDoc: map[protocol.ID][]protocol.ID{},
		openDocs:            map[protocol.ID]bool{},
		displayName:         sym.DisplayName(),
		global:              sym.Exported(),
		declaringDoc:        documentID,
	}

	if doc := m.renderHover(sym.Doc()); doc != "" {
		hover := m.emitter.EmitHoverResult([]protocol.MarkedString{protocol.NewMarkedString(doc, protocol.LanguageID)})
		rec.hoverResultID = hover.ID
		m.emitter.EmitTextDocumentHover(resultSet.ID, hover.ID)
	}

	return rec
}

// flushDoc emits the item edges for whatever ranges accumulated against
// documentID across all three of rec's buckets, used for document-local
// records at document close.
func (m *Manager) flushDoc(rec *record, documentID protocol.ID) {
	m.flushDefinitions(rec, documentID)
	m.flushReferences(rec, documentID)
	m.flushTypeReferences(rec, documentID)
}

// flushDefinitions emits the item edge for whatever ranges accumulated
// against documentID in rec's definition bucket, linking the
// definitionResult to rec's ResultSet the first time any document
// contributes to it.
func (m *Manager) flushDefinitions(rec *record, documentID protocol.ID) {
	if rec.aliased {
		delete(rec.definitionsByDoc, documentID)
		return
	}

	defs := rec.definitionsByDoc[documentID]
	if len(defs) == 0 {
		return
	}

	if rec.definitionResultID == "" {
		dr := m.emitter.EmitDefinitionResult()
		rec.definitionResultID = dr.ID
		m.emitter.EmitTextDocumentDefinition(rec.resultSetID, dr.ID)
	}
	m.emitter.EmitItemOfDefinitions(rec.definitionResultID, defs, documentID)
	delete(rec.definitionsByDoc, documentID)
}

// flushReferences emits the item edge for whatever ranges accumulated
// against documentID in rec's reference bucket, linking the
// referenceResult to rec's ResultSet the first time any document
// contributes to it.
func (m *Manager) flushReferences(rec *record, documentID protocol.ID) {
	if rec.aliased {
		delete(rec.referencesByDoc, documentID)
		return
	}

	refs := rec.referencesByDoc[documentID]
	if len(refs) == 0 {
		return
	}

	if rec.referenceResultID == "" {
		rr := m.emitter.EmitReferenceResult()
		rec.referenceResultID = rr.ID
		m.emitter.EmitTextDocumentReferences(rec.resultSetID, rr.ID)
	}
	m.emitter.EmitItemOfReferences(rec.referenceResultID, refs, documentID)
	delete(rec.referencesByDoc, documentID)
}

// flushTypeReferences emits the item edge for whatever ranges accumulated
// against documentID in rec's type-reference bucket, linking the
// typeDefinitionResult to rec's ResultSet the first time any document
// contributes to it.
func (m *Manager) flushTypeReferences(rec *record, documentID protocol.ID) {
	if rec.aliased {
		delete(rec.typeReferencesByDoc, documentID)
		return
	}

	typeRefs := rec.typeReferencesByDoc[documentID]
	if len(typeRefs) == 0 {
		return
	}

	if rec.typeDefinitionResultID == "" {
		tr := m.emitter.EmitTypeDefinitionResult()
		rec.typeDefinitionResultID = tr.ID
		m.emitter.EmitTextDocumentTypeDefinition(rec.resultSetID, tr.ID)
	}
	m.emitter.EmitItemOfDefinitions(rec.typeDefinitionResultID, typeRefs, documentID)
	delete(rec.typeReferencesByDoc, documentID)
}

// Alias links a's ResultSet to b's ResultSet with a next edge, used for
// re-exports, renames, and assignment-introduced aliases. From this point
// on, a's own definition/reference/type-definition results are never
// emitted; navigation over a's ranges is expected to follow the next
// edge to b's results instead. Re-recording the same (unitA, symA) ->
// (unitB, symB) pair is a no-op. A next edge that would close a cycle is
// suppressed and reported instead of emitted.
func (m *Manager) Alias(unitA facade.CompilationUnit, symA facade.Symbol, unitB facade.CompilationUnit, symB facade.Symbol) error {
	ka, kb := key(unitA, symA), key(unitB, symB)

	if m.aliasEdges[ka][kb] {
		return nil
	}

	if m.reachableFrom(kb, ka) {
		m.reporter.ReportInternalSymbol(symA.ID(), symA.DisplayName(), "")
		return fmt.Errorf("alias %s -> %s would close a cycle", ka, kb)
	}

	recA, ok := m.records[ka]
	if !ok {
		return fmt.Errorf("unknown symbol %s", ka)
	}
	recB, ok := m.records[kb]
	if !ok {
		return fmt.Errorf("unknown symbol %s", kb)
	}

	m.emitter.EmitNext(recA.resultSetID, recB.resultSetID)

	if m.aliasEdges[ka] == nil {
		m.aliasEdges[ka] = map[string]bool{}
	}
	m.aliasEdges[ka][kb] = true
	recA.aliased = true

	return nil
}

// reachableFrom performs a depth-first search over already-recorded alias
// edges to determine whether target is reachable from start, used to
// refuse a next edge that would close a cycle before it is ever emitted.
func (m *Manager) reachableFrom(start, target string) bool {
	if start == target {
		return true
	}

	visited := map[string]bool{}
	var visit func(string) bool
	visit = func(k string) bool {
		if visited[k] {
			return false
		}
		visited[k] = true

		if k == target {
			return true
		}

		for next := range m.aliasEdges[k] {
			if visit(next) {
				return true
			}
		}
		return false
	}

	return visit(start)
}
