package reporter

import (
	"fmt"
	"io"
	"time"
)

// Stream is a plain, non-animated Reporter that writes one line per event.
// cmd/symgraph uses it when --noAnimation is set.
type Stream struct {
	w     io.Writer
	total int
	done  int
}

// NewStream returns a Reporter writing line-oriented progress to w.
func NewStream(w io.Writer) *Stream {
	return &Stream{w: w}
}

func (s *Stream) Begin(totalProjects int) {
	s.total = totalProjects
	fmt.Fprintf(s.w, "indexing %d project(s)\n", totalProjects)
}

func (s *Stream) End() {
	fmt.Fprintf(s.w, "done\n")
}

func (s *Stream) ReportProgress(count int) {
	fmt.Fprintf(s.w, "  %d document(s) processed\n", count)
}

func (s *Stream) ReportStatus(project string, symbols, documents int, elapsed time.Duration) {
	s.done++
	fmt.Fprintf(s.w, "[%d/%d] %s: %d symbol(s), %d document(s) in %s\n", s.done, s.total, project, symbols, documents, elapsed)
}

func (s *Stream) ReportInternalSymbol(symbolID, displayName, suggestion string) {
	if suggestion != "" {
		fmt.Fprintf(s.w, "WARNING: unresolved reference %q (did you mean %q?)\n", displayName, suggestion)
		return
	}
	fmt.Fprintf(s.w, "WARNING: unresolved reference %q (%s)\n", displayName, symbolID)
}
