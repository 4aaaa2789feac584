package moniker

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowcode/symgraph/builder"
	"github.com/arrowcode/symgraph/emit"
	"github.com/arrowcode/symgraph/facade"
	"github.com/arrowcode/symgraph/manifest"
)

func newEmitter(t *testing.T) (*emit.Emitter, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	e := emit.New(builder.New(builder.NewSequentialIDs()), emit.NewLineSink(&buf))
	require.NoError(t, e.Start())
	return e, &buf
}

func TestExportMonikerSkippedWithoutManifest(t *testing.T) {
	e, _ := newEmitter(t)
	r := New(e)

	sym := &facade.FakeSymbol{DisplayNameValue: "Foo", PackagePathValue: "example.com/mod/pkg"}
	id, err := r.ExportMoniker("range-1", sym, nil)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestExportMonikerDedupesPackageInformation(t *testing.T) {
	e, _ := newEmitter(t)
	r := New(e)

	m := &manifest.Manifest{ModuleName: "example.com/mod"}
	sym1 := &facade.FakeSymbol{DisplayNameValue: "Foo", PackagePathValue: "example.com/mod/pkg"}
	sym2 := &facade.FakeSymbol{DisplayNameValue: "Bar", PackagePathValue: "example.com/mod/pkg"}

	id1, err := r.ExportMoniker("range-1", sym1, m)
	require.NoError(t, err)
	id2, err := r.ExportMoniker("range-2", sym2, m)
	require.NoError(t, err)

	assert.NotEmpty(t, id1)
	assert.NotEmpty(t, id2)
	assert.NotEqual(t, id1, id2)
	assert.Len(t, r.packageInformationIDs, 1)
}

func TestImportMonikerMatchesDependencyPrefix(t *testing.T) {
	e, _ := newEmitter(t)
	r := New(e)

	m := &manifest.Manifest{
		ModuleName: "example.com/mod",
		Dependencies: map[string]manifest.Dependency{
			"github.com/pkg/errors": {Name: "github.com/pkg/errors", Version: "v0.9.1"},
		},
	}

	sym := &facade.FakeSymbol{DisplayNameValue: "Wrap", PackagePathValue: "github.com/pkg/errors"}
	id, err := r.ImportMoniker("range-1", sym, m)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
