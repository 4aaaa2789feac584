package pipeline

import (
	"github.com/arrowcode/symgraph/datamanager"
	"github.com/arrowcode/symgraph/manifest"
)

// ConfigError reports a Config that cannot be run: an empty workspace root
// or mutually exclusive options. Whether the workspace root exists and
// whether a manifest can be found are not checked here.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "invalid configuration: " + e.Reason }

// OutputFormat selects the Sink a Driver writes the dump through.
type OutputFormat int

const (
	// FormatLines is one JSON element per line, the LSIF wire format.
	FormatLines OutputFormat = iota
	// FormatJSONArray wraps every element in a single JSON array.
	FormatJSONArray
	// FormatVis is the graph-visualization {"nodes":[...],"edges":[...]} shape.
	FormatVis
	// FormatGraphSON is one {"vertex":...}/{"edge":...} object per line.
	FormatGraphSON
)

// IDMode selects the builder.IDGenerator a Driver allocates vertex and
// edge identifiers from.
type IDMode int

const (
	// IDNumber allocates sequential decimal-string identifiers, producing
	// byte-identical dumps across repeated runs over the same input.
	IDNumber IDMode = iota
	// IDUUID allocates random UUID identifiers, producing dumps that are
	// isomorphic but not byte-identical across repeated runs.
	IDUUID
)

// Config is everything a Driver needs to index a workspace.
type Config struct {
	// WorkspaceRoot is the directory the façade Loader indexes.
	WorkspaceRoot string

	// ProjectName, if set, is reported in place of each unit's name in
	// per-project status reports. Optional.
	ProjectName string

	// NoContents omits document text from the dump, matching lsif-go's
	// --no-contents flag.
	NoContents bool

	// NoProjectReferences disables cross-unit aliasing: each unit's
	// symbols are indexed in isolation. Reserved for future use; a single
	// shared Data Manager already gives every unit cross-references today.
	NoProjectReferences bool

	// MonikerMode selects the Data Manager's eviction policy.
	MonikerMode datamanager.Mode

	// ManifestPath pins the manifest to a specific go.mod rather than
	// discovering it from WorkspaceRoot. Mutually exclusive with
	// PublishedPackages.
	ManifestPath string

	// PublishedPackages, if non-empty, are treated as already-published
	// package names (skipping manifest discovery entirely and resolving
	// export monikers directly against these names). Mutually exclusive
	// with ManifestPath.
	PublishedPackages []string

	// Manifest, if set, is used directly instead of discovering one from
	// WorkspaceRoot, ManifestPath, or PublishedPackages. Mainly useful for
	// tests that need full control over a unit's module name and
	// dependency versions without a real go.mod on disk.
	Manifest *manifest.Manifest

	// SourceRepository overrides the git-derived Source.Repository.
	SourceRepository string

	// ProbeRepository enables shelling out to git to populate the Source
	// vertex's repository/revision/branch fields.
	ProbeRepository bool

	// OutputFormat selects the Sink format.
	OutputFormat OutputFormat

	// IDMode selects the identifier allocation policy. Defaults to
	// IDNumber.
	IDMode IDMode
}

func (c *Config) validate() error {
	if c.WorkspaceRoot == "" {
		return &ConfigError{Reason: "workspace root is required"}
	}
	if c.ManifestPath != "" && len(c.PublishedPackages) > 0 {
		return &ConfigError{Reason: "manifest-path and published-packages are mutually exclusive"}
	}
	return nil
}
