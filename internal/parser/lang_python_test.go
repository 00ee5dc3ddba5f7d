package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/codegraph/api"
)

func TestPythonExceptClauseEmitsReferenceNotRaise(t *testing.T) {
	src := []byte(`
def risky():
    try:
        raise ValueError("bad")
    except KeyError:
        pass
`)
	result, err := Parse("python", src)
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
	assert.Contains(t, raiseTargets, "ValueError")
	assert.NotContains(t, raiseTargets, "KeyError")
	assert.Contains(t, refTargets, "KeyError")
}
