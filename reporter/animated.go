package reporter

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/efritz/pentimento"
)

// updateInterval is the duration between spinner frame redraws.
var updateInterval = time.Second / 4

var ticker = pentimento.NewAnimatedString([]string{
	"⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏", "⠋", "⠙", "⠹",
}, updateInterval)

// Animated is a Reporter that renders an animated spinner for the
// currently-indexing project and prints a line per finished project.
type Animated struct {
	w io.Writer
	// total, done, and count are written from the calling goroutine
	// (ReportStatus et al.) and read from the spinner's redraw goroutine;
	// all access goes through sync/atomic rather than a mutex to keep the
	// redraw loop lock-free.
	total   uint64
	done    uint64
	count   uint64
	printer *pentimento.Printer
	stop    chan struct{}
	stopped chan struct{}
}

// NewAnimated returns a Reporter that renders progress with an animated
// spinner. Intended for interactive terminal use only.
func NewAnimated(w io.Writer) *Animated {
	return &Animated{w: w}
}

func (a *Animated) Begin(totalProjects int) {
	atomic.StoreUint64(&a.total, uint64(totalProjects))
	fmt.Fprintf(a.w, "%s indexing %d project(s)... ", ticker, totalProjects)

	a.stop = make(chan struct{})
	a.stopped = make(chan struct{})

	go func() {
		defer close(a.stopped)

		_ = pentimento.PrintProgress(func(printer *pentimento.Printer) error {
			a.printer = printer
			defer func() { _ = printer.Reset() }()

			for {
				select {
				case <-a.stop:
					return nil
				case <-time.After(updateInterval):
				}

				content := pentimento.NewContent()
				content.AddLine("%s indexing... %d/%d project(s)", ticker, atomic.LoadUint64(&a.done), atomic.LoadUint64(&a.total))
				printer.WriteContent(content)
			}
		})
	}()
}

func (a *Animated) End() {
	if a.stop != nil {
		close(a.stop)
		<-a.stopped
	}
	fmt.Fprintf(a.w, "done (%d project(s))\n", atomic.LoadUint64(&a.done))
}

func (a *Animated) ReportProgress(count int) {
	atomic.StoreUint64(&a.count, uint64(count))
}

func (a *Animated) ReportStatus(project string, symbols, documents int, elapsed time.Duration) {
	atomic.AddUint64(&a.done, 1)
	fmt.Fprintf(a.w, "\n✔ %s: %d symbol(s), %d document(s) in %s", project, symbols, documents, elapsed)
}

func (a *Animated) ReportInternalSymbol(symbolID, displayName, suggestion string) {
	if suggestion != "" {
		fmt.Fprintf(a.w, "\n✗ unresolved reference %q (did you mean %q?)", displayName, suggestion)
		return
	}
	fmt.Fprintf(a.w, "\n✗ unresolved reference %q (%s)", displayName, symbolID)
}
