// Package reporter defines the pipeline's progress and diagnostic
// capability set and ships three implementations: a no-op, a plain
// line-oriented stream, and an animated terminal spinner.
package reporter

import "time"

// Reporter is the narrow capability set the pipeline reports through. It
// intentionally has no method for retracting a previously reported event:
// reporting is append-only, mirroring the dump's own append-only emission.
type Reporter interface {
	// Begin is called once, before the first project is indexed.
	Begin(totalProjects int)
	// End is called once, after the last project has finished (or the
	// pipeline aborted).
	End()
	// ReportProgress is called as documents within a project are indexed,
	// with a running count of documents processed so far.
	ReportProgress(count int)
	// ReportStatus is called once per project, after that project
	// finishes, with summary counts.
	ReportStatus(project string, symbols, documents int, elapsed time.Duration)
	// ReportInternalSymbol is called for a diagnostic tied to a specific
	// symbol: an unresolved reference, a suppressed alias cycle, or a
	// suspicious document-locality classification. suggestion is a
	// best-effort "did you mean" guess and may be empty.
	ReportInternalSymbol(symbolID, displayName, suggestion string)
}

// Null discards every event. It is the default Reporter for library use.
type Null struct{}

func (Null) Begin(int)                                    {}
func (Null) End()                                          {}
func (Null) ReportProgress(int)                            {}
func (Null) ReportStatus(string, int, int, time.Duration)  {}
func (Null) ReportInternalSymbol(string, string, string)   {}
