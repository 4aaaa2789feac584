// Package emit serializes a stream of protocol vertices and edges to one of
// several on-disk dump formats.
package emit

import (
	"bufio"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var marshaller = jsoniter.ConfigFastest

// Sink accepts a stream of vertex/edge values and writes them to an
// underlying destination in some serialized form.
type Sink interface {
	// Open is called once, before the first Write, with the tool-level
	// wrapper (array open bracket, vis.js dataset header, ...) a format may
	// need to emit before any elements.
	Open() error

	// Write emits a single vertex or edge value. Must not be called
	// concurrently with Close.
	Write(v interface{})

	// Close flushes any buffered elements and writes the format's trailing
	// wrapper, if any. No further calls to Write are valid afterward.
	Close() error
}

// channelBufferSize bounds how many pending elements a Sink may queue
// before Write blocks.
const channelBufferSize = 512

// writerBufferSize is the size of the buffered writer wrapping the
// destination io.Writer.
const writerBufferSize = 4096

// lineSink writes newline-delimited JSON, one element per line, draining a
// buffered channel on a background goroutine so that Write blocks only
// once channelBufferSize elements are waiting to be written.
type lineSink struct {
	wg  sync.WaitGroup
	ch  chan interface{}
	buf *bufio.Writer
	err error
}

// NewLineSink returns a Sink that writes newline-delimited JSON to w. This
// is the default dump format.
func NewLineSink(w io.Writer) Sink {
	return &lineSink{
		ch:  make(chan interface{}, channelBufferSize),
		buf: bufio.NewWriterSize(w, writerBufferSize),
	}
}

func (s *lineSink) Open() error {
	encoder := marshaller.NewEncoder(s.buf)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for v := range s.ch {
			if s.err != nil {
				continue
			}
			if err := encoder.Encode(v); err != nil {
				s.err = err
			}
		}
	}()

	return nil
}

func (s *lineSink) Write(v interface{}) {
	s.ch <- v
}

func (s *lineSink) Close() error {
	close(s.ch)
	s.wg.Wait()

	if s.err != nil {
		return s.err
	}

	return s.buf.Flush()
}

// arraySink writes a single top-level JSON array containing every element,
// the "json" dump format.
type arraySink struct {
	w   *bufio.Writer
	n   int
	err error
}

// NewJSONArraySink returns a Sink that writes a single JSON array to w.
func NewJSONArraySink(w io.Writer) Sink {
	return &arraySink{w: bufio.NewWriterSize(w, writerBufferSize)}
}

func (s *arraySink) Open() error {
	_, s.err = s.w.WriteString("[")
	return s.err
}

func (s *arraySink) Write(v interface{}) {
	if s.err != nil {
		return
	}

	if s.n > 0 {
		if _, s.err = s.w.WriteString(","); s.err != nil {
			return
		}
	}
	s.n++

	data, err := marshaller.Marshal(v)
	if err != nil {
		s.err = err
		return
	}

	_, s.err = s.w.Write(data)
}

func (s *arraySink) Close() error {
	if s.err != nil {
		return s.err
	}

	if _, s.err = s.w.WriteString("]"); s.err != nil {
		return s.err
	}

	return s.w.Flush()
}
