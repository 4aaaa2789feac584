package protocol

// TypeDefinitionResult connects a type definition spread over multiple
// ranges or documents, mirroring DefinitionResult for the "go to type
// definition" request.
type TypeDefinitionResult struct {
	Vertex
}

// NewTypeDefinitionResult returns a new TypeDefinitionResult vertex.
func NewTypeDefinitionResult(id ID) *TypeDefinitionResult {
	return &TypeDefinitionResult{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexTypeDefinitionResult,
		},
	}
}

// TextDocumentTypeDefinition is an edge object representing the
// "textDocument/typeDefinition" relation.
type TextDocumentTypeDefinition struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

// NewTextDocumentTypeDefinition returns a new TextDocumentTypeDefinition edge.
func NewTextDocumentTypeDefinition(id, outV, inV ID) *TextDocumentTypeDefinition {
	return &TextDocumentTypeDefinition{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeTextDocumentTypeDefinition,
		},
		OutV: outV,
		InV:  inV,
	}
}
