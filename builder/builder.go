// Package builder is the only surface that constructs protocol vertex and
// edge values, pairing every construction with a freshly allocated
// identifier so that the rest of the pipeline never has to reason about ID
// allocation policy.
package builder

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/arrowcode/symgraph/protocol"
)

// IDGenerator allocates a unique identifier for each call to Next. An
// implementation must be safe to use from a single goroutine only; the
// pipeline's core is single-threaded by design.
type IDGenerator interface {
	Next() protocol.ID
}

// Sequential allocates monotonically increasing decimal-string identifiers
// starting at 1. Two runs over the same input produce byte-identical dumps
// under this policy.
type Sequential struct {
	n uint64
}

// NewSequentialIDs returns an IDGenerator producing "1", "2", "3", ...
func NewSequentialIDs() *Sequential {
	return &Sequential{}
}

func (s *Sequential) Next() protocol.ID {
	return strconv.FormatUint(atomic.AddUint64(&s.n, 1), 10)
}

// UUID allocates a random UUID (RFC 4122 v4) identifier per call. Two runs
// over the same input produce isomorphic, not byte-identical, dumps under
// this policy.
type UUID struct{}

// NewUUIDs returns an IDGenerator producing UUID strings.
func NewUUIDs() *UUID {
	return &UUID{}
}

func (u *UUID) Next() protocol.ID {
	return uuid.NewString()
}

// Builder is the pure constructor surface for protocol vertices and edges.
// It has no knowledge of where elements go; callers (the Emitter) decide
// that.
type Builder struct {
	ids IDGenerator
}

// New returns a Builder that allocates identifiers from ids.
func New(ids IDGenerator) *Builder {
	return &Builder{ids: ids}
}

func (b *Builder) MetaData(root string, info protocol.ToolInfo) *protocol.MetaData {
	return protocol.NewMetaData(b.ids.Next(), root, info)
}

func (b *Builder) Source(workspaceRoot, repository, revision, branch string) *protocol.Source {
	return protocol.NewSource(b.ids.Next(), workspaceRoot, repository, revision, branch)
}

func (b *Builder) Capabilities(hover, declaration, definition, typeDefinition, references, implementation bool) *protocol.Capabilities {
	return protocol.NewCapabilities(b.ids.Next(), hover, declaration, definition, typeDefinition, references, implementation)
}

func (b *Builder) Project(languageID string) *protocol.Project {
	return protocol.NewProject(b.ids.Next(), languageID)
}

func (b *Builder) Document(languageID, uri string, contents []byte) *protocol.Document {
	return protocol.NewDocument(b.ids.Next(), languageID, uri, contents)
}

func (b *Builder) Range(start, end protocol.Pos) *protocol.Range {
	return protocol.NewRange(b.ids.Next(), start, end)
}

func (b *Builder) ResultSet() *protocol.ResultSet {
	return protocol.NewResultSet(b.ids.Next())
}

func (b *Builder) DefinitionResult() *protocol.DefinitionResult {
	return protocol.NewDefinitionResult(b.ids.Next())
}

func (b *Builder) TypeDefinitionResult() *protocol.TypeDefinitionResult {
	return protocol.NewTypeDefinitionResult(b.ids.Next())
}

func (b *Builder) ReferenceResult() *protocol.ReferenceResult {
	return protocol.NewReferenceResult(b.ids.Next())
}

func (b *Builder) ImplementationResult() *protocol.ImplementationResult {
	return protocol.NewImplementationResult(b.ids.Next())
}

func (b *Builder) HoverResult(contents []protocol.MarkedString) *protocol.HoverResult {
	return protocol.NewHoverResult(b.ids.Next(), contents)
}

func (b *Builder) Moniker(kind protocol.MonikerKind, scheme, identifier string) *protocol.Moniker {
	return protocol.NewMoniker(b.ids.Next(), string(kind), scheme, identifier)
}

func (b *Builder) PackageInformation(name, manager, version string) *protocol.PackageInformation {
	return protocol.NewPackageInformation(b.ids.Next(), name, manager, version)
}

func (b *Builder) Contains(outV protocol.ID, inVs []protocol.ID) *protocol.Contains {
	return protocol.NewContains(b.ids.Next(), outV, inVs)
}

func (b *Builder) Next(outV, inV protocol.ID) *protocol.Next {
	return protocol.NewNext(b.ids.Next(), outV, inV)
}

func (b *Builder) Item(outV protocol.ID, inVs []protocol.ID, document protocol.ID) *protocol.Item {
	return protocol.NewItem(b.ids.Next(), outV, inVs, document)
}

func (b *Builder) ItemOfDefinitions(outV protocol.ID, inVs []protocol.ID, document protocol.ID) *protocol.Item {
	return protocol.NewItemOfDefinitions(b.ids.Next(), outV, inVs, document)
}

func (b *Builder) ItemOfReferences(outV protocol.ID, inVs []protocol.ID, document protocol.ID) *protocol.Item {
	return protocol.NewItemOfReferences(b.ids.Next(), outV, inVs, document)
}

func (b *Builder) MonikerEdge(outV, inV protocol.ID) *protocol.MonikerEdge {
	return protocol.NewMonikerEdge(b.ids.Next(), outV, inV)
}

func (b *Builder) PackageInformationEdge(outV, inV protocol.ID) *protocol.PackageInformationEdge {
	return protocol.NewPackageInformationEdge(b.ids.Next(), outV, inV)
}

func (b *Builder) TextDocumentDefinition(outV, inV protocol.ID) *protocol.TextDocumentDefinition {
	return protocol.NewTextDocumentDefinition(b.ids.Next(), outV, inV)
}

func (b *Builder) TextDocumentTypeDefinition(outV, inV protocol.ID) *protocol.TextDocumentTypeDefinition {
	return protocol.NewTextDocumentTypeDefinition(b.ids.Next(), outV, inV)
}

func (b *Builder) TextDocumentReferences(outV, inV protocol.ID) *protocol.TextDocumentReferences {
	return protocol.NewTextDocumentReferences(b.ids.Next(), outV, inV)
}

func (b *Builder) TextDocumentHover(outV, inV protocol.ID) *protocol.TextDocumentHover {
	return protocol.NewTextDocumentHover(b.ids.Next(), outV, inV)
}

func (b *Builder) TextDocumentImplementation(outV, inV protocol.ID) *protocol.TextDocumentImplementation {
	return protocol.NewTextDocumentImplementation(b.ids.Next(), outV, inV)
}

func (b *Builder) Event(kind, scope, data string) *protocol.Event {
	return protocol.NewEvent(b.ids.Next(), kind, scope, data)
}
