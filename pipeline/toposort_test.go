package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowcode/symgraph/facade"
)

func unit(name string, deps ...string) facade.CompilationUnit {
	return &facade.FakeUnit{NameValue: name, DependenciesValue: deps}
}

func TestTopoSortOrdersDependenciesFirst(t *testing.T) {
	units := []facade.CompilationUnit{
		unit("c", "b"),
		unit("b", "a"),
		unit("a"),
	}

	ordered, err := topoSort(units)
	require.NoError(t, err)
	require.Len(t, ordered, 3)

	pos := map[string]int{}
	for i, u := range ordered {
		pos[u.Name()] = i
	}
	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["b"], pos["c"])
}

func TestTopoSortIgnoresDependenciesOutsideWorkspace(t *testing.T) {
	units := []facade.CompilationUnit{
		unit("a", "fmt", "b"),
		unit("b"),
	}

	ordered, err := topoSort(units)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "b", ordered[0].Name())
	assert.Equal(t, "a", ordered[1].Name())
}

func TestTopoSortDetectsCycle(t *testing.T) {
	units := []facade.CompilationUnit{
		unit("a", "b"),
		unit("b", "a"),
	}

	_, err := topoSort(units)
	require.Error(t, err)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.ElementsMatch(t, []string{"a", "b"}, cycleErr.Members)
}
