package protocol

// ImplementationResult connects an interface or abstract declaration to the
// set of ranges that implement it.
type ImplementationResult struct {
	Vertex
}

// NewImplementationResult returns a new ImplementationResult vertex.
func NewImplementationResult(id ID) *ImplementationResult {
	return &ImplementationResult{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexImplementationResult,
		},
	}
}

// TextDocumentImplementation is an edge object representing the
// "textDocument/implementation" relation.
type TextDocumentImplementation struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

// NewTextDocumentImplementation returns a new TextDocumentImplementation edge.
func NewTextDocumentImplementation(id, outV, inV ID) *TextDocumentImplementation {
	return &TextDocumentImplementation{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeTextDocumentImplementation,
		},
		OutV: outV,
		InV:  inV,
	}
}
