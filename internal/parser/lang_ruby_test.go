package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/codegraph/api"
)

func TestRubyRescueEmitsReferenceNotRaise(t *testing.T) {
	src := []byte(`
def risky
  raise(ArgumentError)
rescue KeyError
  nil
end
`)
	result, err := Parse("ruby", src)
	require.NoError(t, err)

	var raiseTargets, refTargets []string
	for _, e := range result.Edges {
		switch e.Kind {
		case api.EdgeRaises:
			raiseTargets = append(raiseTargets, e.TargetName)
		case api.EdgeReferences:
			refTargets = append(refTargets, e.TargetName)
		}
	}
	assert.Contains(t, raiseTargets, "ArgumentError")
	assert.NotContains(t, raiseTargets, "KeyError")
	assert.Contains(t, refTargets, "KeyError")
}
