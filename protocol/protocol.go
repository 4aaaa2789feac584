// Package protocol defines the closed set of vertex and edge values that make
// up a dump, along with the constructors used to build them.
package protocol

const (
	// Version is the dump format version produced by this package.
	Version = "0.5.0"
	// LanguageID identifies the indexed language in LSP terms.
	LanguageID = "go"
	// PositionEncoding is the encoding used to compute line/character offsets.
	PositionEncoding = "utf-16"
)

// ID is the type of a vertex or edge identifier. Values are opaque strings so
// that both the sequential and UUID identifier generators can share a wire
// representation.
type ID = string

// Element contains the fields common to every vertex and edge.
type Element struct {
	ID   ID          `json:"id"`
	Type ElementType `json:"type"`
}

// ElementType distinguishes a vertex from an edge.
type ElementType string

const (
	ElementVertex ElementType = "vertex"
	ElementEdge   ElementType = "edge"
)

// Vertex contains the fields common to every vertex.
type Vertex struct {
	Element
	Label VertexLabel `json:"label"`
}

// Kind reports whether the element is a vertex or an edge, used by Sink
// implementations that need to route elements without a type switch over
// every concrete vertex/edge type.
func (v Vertex) Kind() ElementType { return ElementVertex }

// VertexLabel names the kind of a vertex.
type VertexLabel string

const (
	VertexMetaData             VertexLabel = "metaData"
	VertexEvent                VertexLabel = "$event"
	VertexSource               VertexLabel = "source"
	VertexCapabilities         VertexLabel = "capabilities"
	VertexProject              VertexLabel = "project"
	VertexRange                VertexLabel = "range"
	VertexDocument             VertexLabel = "document"
	VertexMoniker              VertexLabel = "moniker"
	VertexPackageInformation   VertexLabel = "packageInformation"
	VertexResultSet            VertexLabel = "resultSet"
	VertexDefinitionResult     VertexLabel = "definitionResult"
	VertexTypeDefinitionResult VertexLabel = "typeDefinitionResult"
	VertexHoverResult          VertexLabel = "hoverResult"
	VertexReferenceResult      VertexLabel = "referenceResult"
	VertexImplementationResult VertexLabel = "implementationResult"
)

// Edge contains the fields common to every edge.
type Edge struct {
	Element
	Label EdgeLabel `json:"label"`
}

// Kind reports whether the element is a vertex or an edge, used by Sink
// implementations that need to route elements without a type switch over
// every concrete vertex/edge type.
func (e Edge) Kind() ElementType { return ElementEdge }

// EdgeLabel names the kind of an edge.
type EdgeLabel string

const (
	EdgeContains                   EdgeLabel = "contains"
	EdgeItem                       EdgeLabel = "item"
	EdgeNext                       EdgeLabel = "next"
	EdgeMoniker                    EdgeLabel = "moniker"
	EdgePackageInformation         EdgeLabel = "packageInformation"
	EdgeTextDocumentDefinition     EdgeLabel = "textDocument/definition"
	EdgeTextDocumentTypeDefinition EdgeLabel = "textDocument/typeDefinition"
	EdgeTextDocumentHover          EdgeLabel = "textDocument/hover"
	EdgeTextDocumentReferences     EdgeLabel = "textDocument/references"
	EdgeTextDocumentImplementation EdgeLabel = "textDocument/implementation"
)

// ToolInfo describes the tool that produced a dump.
type ToolInfo struct {
	Name    string   `json:"name"`
	Version string   `json:"version,omitempty"`
	Args    []string `json:"args,omitempty"`
}

// MetaData is always the first element of a dump.
type MetaData struct {
	Vertex
	Version          string   `json:"version"`
	ProjectRoot      string   `json:"projectRoot"`
	PositionEncoding string   `json:"positionEncoding"`
	ToolInfo         ToolInfo `json:"toolInfo"`
}

// NewMetaData returns a new MetaData vertex.
func NewMetaData(id ID, root string, info ToolInfo) *MetaData {
	return &MetaData{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexMetaData,
		},
		Version:          Version,
		ProjectRoot:      root,
		PositionEncoding: PositionEncoding,
		ToolInfo:         info,
	}
}

// Pos is a zero-based line/character position.
type Pos struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range carries the position information of a range vertex.
type Range struct {
	Vertex
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

// NewRange returns a new Range vertex.
func NewRange(id ID, start, end Pos) *Range {
	return &Range{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexRange,
		},
		Start: start,
		End:   end,
	}
}
