// The program symgraph builds an LSIF dump for a Go workspace.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kingpin"

	"github.com/arrowcode/symgraph/datamanager"
	"github.com/arrowcode/symgraph/facade/goadapter"
	"github.com/arrowcode/symgraph/gitinfo"
	"github.com/arrowcode/symgraph/log"
	"github.com/arrowcode/symgraph/pipeline"
	"github.com/arrowcode/symgraph/protocol"
	"github.com/arrowcode/symgraph/reporter"
)

const toolVersion = "0.1.0"

var versionString = toolVersion + ", protocol version " + protocol.Version

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func realMain() error {
	var (
		outFile        string
		repositoryRoot string
		moduleRoot     string
		addContents    bool
		noAnimation    bool
		strictMode     bool
		manifestPath   string
		outputFormat   string
		idMode         string
		verbose        bool
	)

	app := kingpin.New("symgraph", "symgraph builds an LSIF dump for a Go workspace.").Version(versionString)
	app.HelpFlag.Short('h')
	app.VersionFlag.Short('v')
	app.HelpFlag.Hidden()

	app.Flag("out", "The output file.").Short('o').Default("dump.lsif").StringVar(&outFile)
	app.Flag("repositoryRoot", "Specifies the path of the current repository (inferred automatically via git).").PlaceHolder("root").StringVar(&repositoryRoot)
	app.Flag("moduleRoot", "Specifies the module root directory relative to the repository.").Default(".").StringVar(&moduleRoot)
	app.Flag("addContents", "Embed file contents into the dump.").Default("false").BoolVar(&addContents)
	app.Flag("noAnimation", "Disable the animated progress indicator.").Default("false").BoolVar(&noAnimation)
	app.Flag("strict", "Evict unexported symbol records from memory as soon as their defining document closes.").Default("false").BoolVar(&strictMode)
	app.Flag("manifestPath", "Pin the manifest to a specific go.mod rather than discovering it.").PlaceHolder("path").StringVar(&manifestPath)
	app.Flag("format", "Output format: lines, array, vis, or graphson.").Default("lines").EnumVar(&outputFormat, "lines", "array", "vis", "graphson")
	app.Flag("id", "Identifier allocation policy: number or uuid.").Default("number").EnumVar(&idMode, "number", "uuid")
	app.Flag("verbose", "Print debug-level progress messages.").Default("false").BoolVar(&verbose)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		return err
	}

	if verbose {
		log.SetLevel(log.Debug)
	}

	if repositoryRoot == "" {
		toplevel, err := gitinfo.TopLevel(".")
		if err != nil {
			return fmt.Errorf("get git root: %w", err)
		}
		repositoryRoot = toplevel
	}

	projectRoot, err := filepath.Abs(moduleRoot)
	if err != nil {
		return fmt.Errorf("get abspath of module root: %w", err)
	}

	repositoryRoot, err = filepath.Abs(repositoryRoot)
	if err != nil {
		return fmt.Errorf("get abspath of repository root: %w", err)
	}

	if !strings.HasPrefix(projectRoot, repositoryRoot) {
		return errors.New("module root is outside the repository")
	}

	out, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("create dump file: %w", err)
	}
	defer out.Close()

	mode := datamanager.Lenient
	if strictMode {
		mode = datamanager.Strict
	}

	cfg := pipeline.Config{
		WorkspaceRoot:    projectRoot,
		NoContents:       !addContents,
		MonikerMode:      mode,
		ManifestPath:     manifestPath,
		SourceRepository: "",
		ProbeRepository:  true,
		OutputFormat:     parseFormat(outputFormat),
		IDMode:           parseIDMode(idMode),
	}

	var rep reporter.Reporter
	if noAnimation {
		rep = reporter.NewStream(os.Stdout)
	} else {
		rep = reporter.NewAnimated(os.Stdout)
	}

	driver := pipeline.New(goadapter.New(), cfg, out, rep, toolVersion)

	start := time.Now()
	if err := driver.Run(context.Background()); err != nil {
		return fmt.Errorf("index: %w", err)
	}

	fmt.Println("Processed in", time.Since(start))
	return nil
}

func parseFormat(s string) pipeline.OutputFormat {
	switch s {
	case "array":
		return pipeline.FormatJSONArray
	case "vis":
		return pipeline.FormatVis
	case "graphson":
		return pipeline.FormatGraphSON
	default:
		return pipeline.FormatLines
	}
}

func parseIDMode(s string) pipeline.IDMode {
	if s == "uuid" {
		return pipeline.IDUUID
	}
	return pipeline.IDNumber
}
