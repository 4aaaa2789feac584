package emit

import (
	"bufio"
	"io"

	"github.com/arrowcode/symgraph/protocol"
)

// visSink builds the vis.js network dataset shape: a flat node list and a
// flat edge list, built up incrementally as elements stream through.
type visSink struct {
	w     *bufio.Writer
	nodes []interface{}
	edges []interface{}
	err   error
}

// NewVisSink returns a Sink that collects the stream into a vis.js
// {nodes, edges} dataset and writes it as a single JSON document on Close.
// Because vis.js wants the whole dataset at once, this sink buffers the
// full graph in memory; it is meant for small graph-database ingestion
// previews, not for large dumps.
func NewVisSink(w io.Writer) Sink {
	return &visSink{w: bufio.NewWriterSize(w, writerBufferSize)}
}

func (s *visSink) Open() error { return nil }

func (s *visSink) Write(v interface{}) {
	if e, ok := v.(interface{ Kind() protocol.ElementType }); ok && e.Kind() == protocol.ElementEdge {
		s.edges = append(s.edges, v)
		return
	}
	s.nodes = append(s.nodes, v)
}

func (s *visSink) Close() error {
	data, err := marshaller.Marshal(struct {
		Nodes []interface{} `json:"nodes"`
		Edges []interface{} `json:"edges"`
	}{s.nodes, s.edges})
	if err != nil {
		return err
	}

	if _, err := s.w.Write(data); err != nil {
		return err
	}

	return s.w.Flush()
}

// graphSONSink emits a minimal GraphSON-like vertex/edge envelope: each
// line is either {"vertex": <vertex>} or {"edge": <edge>}, suitable for
// streaming into a GraphSON-speaking bulk loader.
type graphSONSink struct {
	w   *bufio.Writer
	err error
}

// NewGraphSONSink returns a Sink that writes a GraphSON-style envelope per
// element, one JSON object per line.
func NewGraphSONSink(w io.Writer) Sink {
	return &graphSONSink{w: bufio.NewWriterSize(w, writerBufferSize)}
}

func (s *graphSONSink) Open() error { return nil }

func (s *graphSONSink) Write(v interface{}) {
	if s.err != nil {
		return
	}

	envelope := map[string]interface{}{"vertex": v}
	if e, ok := v.(interface{ Kind() protocol.ElementType }); ok && e.Kind() == protocol.ElementEdge {
		envelope = map[string]interface{}{"edge": v}
	}

	data, err := marshaller.Marshal(envelope)
	if err != nil {
		s.err = err
		return
	}

	if _, s.err = s.w.Write(data); s.err != nil {
		return
	}
	_, s.err = s.w.WriteString("\n")
}

func (s *graphSONSink) Close() error {
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}
