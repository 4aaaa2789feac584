package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestPicksClosestCandidate(t *testing.T) {
	candidates := []string{"NewResolver", "NewReporter", "NewEmitter"}
	assert.Equal(t, "NewReporter", Suggest("NewReportr", candidates))
}

func TestSuggestReturnsEmptyWhenNothingClose(t *testing.T) {
	candidates := []string{"Alpha", "Beta", "Gamma"}
	assert.Equal(t, "", Suggest("CompletelyUnrelatedName", candidates))
}
