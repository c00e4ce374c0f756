package environment_test

import (
	"testing"

	"github.com/loxlang/golox/internal/environment"
	"github.com/loxlang/golox/internal/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineAndGet(t *testing.T) {
	env := environment.New()
	env.Define("a", object.Number(1))
	v, ok := env.Get("a")
	require.True(t, ok)
	assert.Equal(t, object.Number(1), v)
}

func TestGetMissingReportsFalse(t *testing.T) {
	env := environment.New()
	_, ok := env.Get("nope")
	assert.False(t, ok)
}

func TestChildSeesParentBindings(t *testing.T) {
	parent := environment.New()
	parent.Define("a", object.Number(1))
	child := parent.Child()
	v, ok := child.Get("a")
	require.True(t, ok)
	assert.Equal(t, object.Number(1), v)
}

func TestAssignWalksToDefiningScope(t *testing.T) {
	parent := environment.New()
	parent.Define("a", object.Number(1))
	child := parent.Child()

	ok := child.Assign("a", object.Number(2))
	require.True(t, ok)

	v, _ := parent.Get("a")
	assert.Equal(t, object.Number(2), v)
}

func TestAssignToUndefinedNameFails(t *testing.T) {
	env := environment.New()
	ok := env.Assign("nope", object.Number(1))
	assert.False(t, ok)
}

func TestChildShadowsParentWithoutMutatingIt(t *testing.T) {
	parent := environment.New()
	parent.Define("a", object.Number(1))
	child := parent.Child()
	child.Define("a", object.Number(2))

	childV, _ := child.Get("a")
	parentV, _ := parent.Get("a")
	assert.Equal(t, object.Number(2), childV)
	assert.Equal(t, object.Number(1), parentV)
}

func TestGetAtAndAssignAtHopExactDistance(t *testing.T) {
	root := environment.New()
	root.Define("a", object.Number(1))
	mid := root.Child()
	leaf := mid.Child()

	v, ok := leaf.GetAt(2, "a")
	require.True(t, ok)
	assert.Equal(t, object.Number(1), v)

	leaf.AssignAt(2, "a", object.Number(9))
	v2, _ := root.Get("a")
	assert.Equal(t, object.Number(9), v2)
}
