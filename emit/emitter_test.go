package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowcode/symgraph/builder"
	"github.com/arrowcode/symgraph/protocol"
)

func TestLineSinkEmitsOneElementPerLine(t *testing.T) {
	var buf bytes.Buffer
	e := New(builder.New(builder.NewSequentialIDs()), NewLineSink(&buf))

	require.NoError(t, e.Start())
	proj := e.EmitProject(protocol.LanguageID)
	doc := e.EmitDocument(protocol.LanguageID, "file:///a.go", nil)
	e.EmitContains(proj.ID, []protocol.ID{doc.ID})
	require.NoError(t, e.End())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"project"`)
	assert.Contains(t, lines[2], `"contains"`)
}

func TestEmitContainsSkipsEmptyInVs(t *testing.T) {
	var buf bytes.Buffer
	e := New(builder.New(builder.NewSequentialIDs()), NewLineSink(&buf))
	require.NoError(t, e.Start())

	proj := e.EmitProject(protocol.LanguageID)
	got := e.EmitContains(proj.ID, nil)
	require.NoError(t, e.End())

	assert.Nil(t, got)
	assert.Equal(t, uint64(1), e.NumElements())
}

func TestJSONArraySinkWrapsElements(t *testing.T) {
	var buf bytes.Buffer
	e := New(builder.New(builder.NewSequentialIDs()), NewJSONArraySink(&buf))

	require.NoError(t, e.Start())
	e.EmitProject(protocol.LanguageID)
	e.EmitProject(protocol.LanguageID)
	require.NoError(t, e.End())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "["))
	assert.True(t, strings.HasSuffix(out, "]"))
	assert.Equal(t, 1, strings.Count(out, "},{"))
}
