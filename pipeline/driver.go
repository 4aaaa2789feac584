// Package pipeline drives a complete indexing run: it orders compilation
// units, emits the dump's fixed preamble, and feeds each unit through a
// project.Indexer sharing one Data Manager and Moniker Resolver so that
// symbols defined in one unit can be referenced from another.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/arrowcode/symgraph/builder"
	"github.com/arrowcode/symgraph/datamanager"
	"github.com/arrowcode/symgraph/emit"
	"github.com/arrowcode/symgraph/facade"
	"github.com/arrowcode/symgraph/gitinfo"
	"github.com/arrowcode/symgraph/log"
	"github.com/arrowcode/symgraph/manifest"
	"github.com/arrowcode/symgraph/moniker"
	"github.com/arrowcode/symgraph/project"
	"github.com/arrowcode/symgraph/protocol"
	"github.com/arrowcode/symgraph/reporter"
)

// ToolName populates the dump's MetaData.ToolInfo name; the version comes
// from the toolVersion passed to New.
const ToolName = "symgraph"

// Driver runs one indexing pass over a workspace, writing a complete dump
// through w.
type Driver struct {
	loader      facade.Loader
	config      Config
	w           io.Writer
	reporter    reporter.Reporter
	toolVersion string
}

// New returns a Driver that loads compilation units via loader and writes
// the resulting dump to w.
func New(loader facade.Loader, config Config, w io.Writer, rep reporter.Reporter, toolVersion string) *Driver {
	if rep == nil {
		rep = reporter.Null{}
	}
	return &Driver{loader: loader, config: config, w: w, reporter: rep, toolVersion: toolVersion}
}

// Run executes one indexing pass: load, topologically order, emit the
// preamble, index every unit, and close the dump. The returned error
// aggregates every non-fatal per-unit failure via multierror; a fatal
// configuration or load error is returned alone.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.config.validate(); err != nil {
		return err
	}

	units, err := d.loader.Load(d.config.WorkspaceRoot)
	if err != nil {
		return &facade.LoadError{WorkspaceRoot: d.config.WorkspaceRoot, Err: err}
	}

	ordered, err := topoSort(units)
	if err != nil {
		return err
	}

	m, err := d.resolveManifest()
	if err != nil {
		return err
	}

	sink := d.newSink()
	e := emit.New(builder.New(d.newIDGenerator()), sink)
	if err := e.Start(); err != nil {
		return fmt.Errorf("open sink: %w", err)
	}

	e.EmitMetaData(d.config.WorkspaceRoot, protocol.ToolInfo{Name: ToolName, Version: d.toolVersion})
	d.emitSource(e)
	e.EmitCapabilities(true, false, true, true, true, true)

	data := datamanager.New(e, moniker.New(e), d.reporter, d.config.MonikerMode)
	data.SetHoverRenderer(project.RenderHover)

	ix := project.New(e, data, d.reporter, d.config.NoContents)

	d.reporter.Begin(len(ordered))

	var result error
	for _, unit := range ordered {
		if ctx.Err() != nil {
			result = multierror.Append(result, ctx.Err())
			break
		}

		start := time.Now()
		projectName := d.config.ProjectName
		if projectName == "" {
			projectName = unit.Name()
		}

		log.Debugf("indexing %s", unit.Name())

		projectV := e.EmitProject(protocol.LanguageID)
		stats, err := ix.Index(projectV.ID, unit, m)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", unit.Name(), err))
			continue
		}

		d.reporter.ReportStatus(projectName, stats.Symbols, stats.Documents, time.Since(start))
	}

	data.ClosePipeline()
	d.reporter.End()

	if err := e.End(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close sink: %w", err))
	}

	return result
}

func (d *Driver) resolveManifest() (*manifest.Manifest, error) {
	if d.config.Manifest != nil {
		return d.config.Manifest, nil
	}

	if len(d.config.PublishedPackages) > 0 {
		return &manifest.Manifest{
			ModuleName:   d.config.PublishedPackages[0],
			Dependencies: map[string]manifest.Dependency{},
		}, nil
	}

	path := d.config.ManifestPath
	if path == "" {
		path = d.config.WorkspaceRoot
	}

	m, err := manifest.Discover(path)
	if err != nil {
		return nil, fmt.Errorf("discover manifest: %w", err)
	}

	if m != nil && d.config.ProbeRepository {
		if version, err := gitinfo.InferModuleVersion(d.config.WorkspaceRoot); err == nil {
			m.ModuleVersion = version
		}
	}

	return m, nil
}

func (d *Driver) emitSource(e *emit.Emitter) {
	repository := d.config.SourceRepository
	var revision, branch string

	if d.config.ProbeRepository {
		if info, err := gitinfo.Infer(d.config.WorkspaceRoot); err == nil {
			if repository == "" {
				repository = info.Repository
			}
			revision = info.Revision
			branch = info.Branch
		}
	}

	e.EmitSource(d.config.WorkspaceRoot, repository, revision, branch)
}

func (d *Driver) newIDGenerator() builder.IDGenerator {
	if d.config.IDMode == IDUUID {
		return builder.NewUUIDs()
	}
	return builder.NewSequentialIDs()
}

func (d *Driver) newSink() emit.Sink {
	switch d.config.OutputFormat {
	case FormatJSONArray:
		return emit.NewJSONArraySink(d.w)
	case FormatVis:
		return emit.NewVisSink(d.w)
	case FormatGraphSON:
		return emit.NewGraphSONSink(d.w)
	default:
		return emit.NewLineSink(d.w)
	}
}
