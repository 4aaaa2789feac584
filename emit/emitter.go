package emit

import (
	"github.com/arrowcode/symgraph/builder"
	"github.com/arrowcode/symgraph/protocol"
)

// Emitter pairs a Builder (construction) with a Sink (serialization). It is
// the only component downstream of the Builder that ever touches a Sink,
// so element ordering as seen by the Sink always matches construction
// order.
type Emitter struct {
	b    *builder.Builder
	sink Sink
	n    uint64
}

// New returns an Emitter that constructs elements via b and writes them
// to sink.
func New(b *builder.Builder, sink Sink) *Emitter {
	return &Emitter{b: b, sink: sink}
}

// Start must be called exactly once, before any Emit call.
func (e *Emitter) Start() error {
	return e.sink.Open()
}

// End must be called exactly once, after the last Emit call. Emit calls
// report no errors: a sink write failure surfaces only as End's error,
// after the sink has received every element.
func (e *Emitter) End() error {
	return e.sink.Close()
}

// NumElements returns the number of elements emitted so far.
func (e *Emitter) NumElements() uint64 {
	return e.n
}

func (e *Emitter) write(v interface{}) {
	e.n++
	e.sink.Write(v)
}

func (e *Emitter) EmitMetaData(root string, info protocol.ToolInfo) *protocol.MetaData {
	v := e.b.MetaData(root, info)
	e.write(v)
	return v
}

func (e *Emitter) EmitSource(workspaceRoot, repository, revision, branch string) *protocol.Source {
	v := e.b.Source(workspaceRoot, repository, revision, branch)
	e.write(v)
	return v
}

func (e *Emitter) EmitCapabilities(hover, declaration, definition, typeDefinition, references, implementation bool) *protocol.Capabilities {
	v := e.b.Capabilities(hover, declaration, definition, typeDefinition, references, implementation)
	e.write(v)
	return v
}

func (e *Emitter) EmitProject(languageID string) *protocol.Project {
	v := e.b.Project(languageID)
	e.write(v)
	return v
}

func (e *Emitter) EmitDocument(languageID, uri string, contents []byte) *protocol.Document {
	v := e.b.Document(languageID, uri, contents)
	e.write(v)
	return v
}

func (e *Emitter) EmitRange(start, end protocol.Pos) *protocol.Range {
	v := e.b.Range(start, end)
	e.write(v)
	return v
}

func (e *Emitter) EmitResultSet() *protocol.ResultSet {
	v := e.b.ResultSet()
	e.write(v)
	return v
}

func (e *Emitter) EmitDefinitionResult() *protocol.DefinitionResult {
	v := e.b.DefinitionResult()
	e.write(v)
	return v
}

func (e *Emitter) EmitTypeDefinitionResult() *protocol.TypeDefinitionResult {
	v := e.b.TypeDefinitionResult()
	e.write(v)
	return v
}

func (e *Emitter) EmitReferenceResult() *protocol.ReferenceResult {
	v := e.b.ReferenceResult()
	e.write(v)
	return v
}

func (e *Emitter) EmitImplementationResult() *protocol.ImplementationResult {
	v := e.b.ImplementationResult()
	e.write(v)
	return v
}

func (e *Emitter) EmitHoverResult(contents []protocol.MarkedString) *protocol.HoverResult {
	v := e.b.HoverResult(contents)
	e.write(v)
	return v
}

func (e *Emitter) EmitMoniker(kind protocol.MonikerKind, scheme, identifier string) *protocol.Moniker {
	v := e.b.Moniker(kind, scheme, identifier)
	e.write(v)
	return v
}

func (e *Emitter) EmitPackageInformation(name, manager, version string) *protocol.PackageInformation {
	v := e.b.PackageInformation(name, manager, version)
	e.write(v)
	return v
}

func (e *Emitter) EmitContains(outV protocol.ID, inVs []protocol.ID) *protocol.Contains {
	if len(inVs) == 0 {
		return nil
	}
	v := e.b.Contains(outV, inVs)
	e.write(v)
	return v
}

func (e *Emitter) EmitNext(outV, inV protocol.ID) *protocol.Next {
	v := e.b.Next(outV, inV)
	e.write(v)
	return v
}

func (e *Emitter) EmitItemOfDefinitions(outV protocol.ID, inVs []protocol.ID, document protocol.ID) *protocol.Item {
	if len(inVs) == 0 {
		return nil
	}
	v := e.b.ItemOfDefinitions(outV, inVs, document)
	e.write(v)
	return v
}

func (e *Emitter) EmitItemOfReferences(outV protocol.ID, inVs []protocol.ID, document protocol.ID) *protocol.Item {
	if len(inVs) == 0 {
		return nil
	}
	v := e.b.ItemOfReferences(outV, inVs, document)
	e.write(v)
	return v
}

func (e *Emitter) EmitMonikerEdge(outV, inV protocol.ID) *protocol.MonikerEdge {
	v := e.b.MonikerEdge(outV, inV)
	e.write(v)
	return v
}

func (e *Emitter) EmitPackageInformationEdge(outV, inV protocol.ID) *protocol.PackageInformationEdge {
	v := e.b.PackageInformationEdge(outV, inV)
	e.write(v)
	return v
}

func (e *Emitter) EmitTextDocumentDefinition(outV, inV protocol.ID) *protocol.TextDocumentDefinition {
	v := e.b.TextDocumentDefinition(outV, inV)
	e.write(v)
	return v
}

func (e *Emitter) EmitTextDocumentTypeDefinition(outV, inV protocol.ID) *protocol.TextDocumentTypeDefinition {
	v := e.b.TextDocumentTypeDefinition(outV, inV)
	e.write(v)
	return v
}

func (e *Emitter) EmitTextDocumentReferences(outV, inV protocol.ID) *protocol.TextDocumentReferences {
	v := e.b.TextDocumentReferences(outV, inV)
	e.write(v)
	return v
}

func (e *Emitter) EmitTextDocumentHover(outV, inV protocol.ID) *protocol.TextDocumentHover {
	v := e.b.TextDocumentHover(outV, inV)
	e.write(v)
	return v
}

func (e *Emitter) EmitTextDocumentImplementation(outV, inV protocol.ID) *protocol.TextDocumentImplementation {
	v := e.b.TextDocumentImplementation(outV, inV)
	e.write(v)
	return v
}

func (e *Emitter) EmitEvent(kind, scope, data string) *protocol.Event {
	v := e.b.Event(kind, scope, data)
	e.write(v)
	return v
}
