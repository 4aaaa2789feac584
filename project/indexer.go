// Package project walks a single compilation unit: it emits the unit's
// Document vertices, classifies every identifier occurrence, and deposits
// each one into the Data Manager against its resolved symbol.
package project

import (
	"github.com/arrowcode/symgraph/datamanager"
	"github.com/arrowcode/symgraph/emit"
	"github.com/arrowcode/symgraph/facade"
	"github.com/arrowcode/symgraph/manifest"
	"github.com/arrowcode/symgraph/protocol"
	"github.com/arrowcode/symgraph/reporter"
)

// Stats summarizes one unit's indexing pass, surfaced through
// reporter.Reporter.ReportStatus.
type Stats struct {
	Symbols   int
	Documents int
}

// Indexer walks one facade.CompilationUnit, depositing every occurrence
// into a shared Data Manager.
type Indexer struct {
	emitter  *emit.Emitter
	data     *datamanager.Manager
	reporter reporter.Reporter
	noContents bool
}

// New returns an Indexer emitting through e and recording into data.
func New(e *emit.Emitter, data *datamanager.Manager, rep reporter.Reporter, noContents bool) *Indexer {
	return &Indexer{emitter: e, data: data, reporter: rep, noContents: noContents}
}

// Index walks unit's documents in order, emitting contains/occurrence
// structure and depositing every occurrence into the Data Manager. m is
// the manifest governing unit, or nil if unit has no bound manifest.
func (ix *Indexer) Index(projectID protocol.ID, unit facade.CompilationUnit, m *manifest.Manifest) (Stats, error) {
	var stats Stats

	var documentIDs []protocol.ID
	seenSymbols := map[string]bool{}

	for _, doc := range unit.Documents() {
		contents := doc.Contents
		if ix.noContents {
			contents = nil
		}

		documentID := ix.data.OpenDocument(doc.URI, protocol.LanguageID, contents)
		documentIDs = append(documentIDs, documentID)
		stats.Documents++

		var rangeIDs []protocol.ID

		for _, occ := range unit.Occurrences(doc) {
			sym := occ.Symbol()
			if sym == nil {
				continue
			}

			rangeV := ix.emitter.EmitRange(occ.Start(), occ.End())
			rangeIDs = append(rangeIDs, rangeV.ID)

			if err := ix.data.Record(occ.Kind(), unit, sym, rangeV.ID, documentID, m); err != nil {
				ix.reportUnresolved(unit, sym)
				continue
			}

			if k := unit.Name() + "\x00" + sym.ID(); !seenSymbols[k] {
				seenSymbols[k] = true
				stats.Symbols++
			}
		}

		ix.emitter.EmitContains(documentID, rangeIDs)
		ix.reporter.ReportProgress(stats.Documents)
	}

	// Aliases are wired after every document's occurrences are recorded
	// (so both ends of an alias already have a record) but before any
	// document closes (so a document-local alias target isn't evicted out
	// from under it under Strict mode).
	for _, alias := range unit.Aliases() {
		if err := ix.data.Alias(alias.FromUnit, alias.From, alias.ToUnit, alias.To); err != nil {
			ix.reportUnresolved(alias.FromUnit, alias.From)
		}
	}

	for _, documentID := range documentIDs {
		ix.data.CloseDocument(documentID)
	}

	ix.emitter.EmitContains(projectID, documentIDs)
	ix.data.CloseProject()

	return stats, nil
}

// reportUnresolved reports a best-effort "did you mean" suggestion for a
// symbol the Data Manager could not record, ranking unit's exported
// symbols by edit distance against the unresolved display name.
func (ix *Indexer) reportUnresolved(unit facade.CompilationUnit, sym facade.Symbol) {
	var names []string
	for _, exported := range unit.ExportedSymbols() {
		names = append(names, exported.DisplayName())
	}

	ix.reporter.ReportInternalSymbol(sym.ID(), sym.DisplayName(), reporter.Suggest(sym.DisplayName(), names))
}
