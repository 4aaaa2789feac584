package protocol

// Source carries source-control information about the workspace a dump was
// produced from. It is the second element emitted after MetaData.
type Source struct {
	Vertex
	WorkspaceRoot string `json:"workspaceRoot"`
	Repository    string `json:"repository,omitempty"`
	Revision      string `json:"revision,omitempty"`
	Branch        string `json:"branch,omitempty"`
}

// NewSource returns a new Source vertex.
func NewSource(id ID, workspaceRoot, repository, revision, branch string) *Source {
	return &Source{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexSource,
		},
		WorkspaceRoot: workspaceRoot,
		Repository:    repository,
		Revision:      revision,
		Branch:        branch,
	}
}

// Capabilities declares which result kinds a dump may contain. It is the
// third element emitted, immediately after Source.
type Capabilities struct {
	Vertex
	HoverProvider          bool `json:"hoverProvider"`
	DeclarationProvider    bool `json:"declarationProvider"`
	DefinitionProvider     bool `json:"definitionProvider"`
	TypeDefinitionProvider bool `json:"typeDefinitionProvider"`
	ReferencesProvider     bool `json:"referencesProvider"`
	ImplementationProvider bool `json:"implementationProvider"`
}

// NewCapabilities returns a new Capabilities vertex with the given provider flags.
func NewCapabilities(id ID, hover, declaration, definition, typeDefinition, references, implementation bool) *Capabilities {
	return &Capabilities{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexCapabilities,
		},
		HoverProvider:          hover,
		DeclarationProvider:    declaration,
		DefinitionProvider:     definition,
		TypeDefinitionProvider: typeDefinition,
		ReferencesProvider:     references,
		ImplementationProvider: implementation,
	}
}
