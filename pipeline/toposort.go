package pipeline

import (
	"sort"

	"github.com/arrowcode/symgraph/facade"
)

// CycleError reports that the compilation units' declared-dependency graph
// is not a DAG, naming every unit on the unresolved remainder of the
// graph once Kahn's algorithm stalls.
type CycleError struct {
	Members []string
}

func (e *CycleError) Error() string {
	msg := "dependency cycle among project(s):"
	for i, m := range e.Members {
		if i > 0 {
			msg += ","
		}
		msg += " " + m
	}
	return msg
}

// topoSort orders units so that every unit appears after all units it
// depends on, using Kahn's algorithm over the Dependencies() graph. Units
// named in Dependencies() but absent from units are ignored, since a
// dependency outside the workspace can never be indexed here. Ties are
// broken by unit name for deterministic, byte-identical output across
// runs over the same input.
func topoSort(units []facade.CompilationUnit) ([]facade.CompilationUnit, error) {
	byName := make(map[string]facade.CompilationUnit, len(units))
	for _, u := range units {
		byName[u.Name()] = u
	}

	indegree := make(map[string]int, len(units))
	dependents := make(map[string][]string, len(units))

	for _, u := range units {
		if _, ok := indegree[u.Name()]; !ok {
			indegree[u.Name()] = 0
		}
		for _, dep := range u.Dependencies() {
			if _, ok := byName[dep]; !ok {
				continue
			}
			indegree[u.Name()]++
			dependents[dep] = append(dependents[dep], u.Name())
		}
	}

	var ready []string
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	var order []facade.CompilationUnit
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]

		order = append(order, byName[name])

		next := append([]string(nil), dependents[name]...)
		sort.Strings(next)
		for _, dependent := range next {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(units) {
		var remaining []string
		for name, deg := range indegree {
			if deg > 0 {
				remaining = append(remaining, name)
			}
		}
		sort.Strings(remaining)
		return nil, &CycleError{Members: remaining}
	}

	return order, nil
}
