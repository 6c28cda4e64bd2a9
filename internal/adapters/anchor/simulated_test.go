package anchor

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchorRefPattern = regexp.MustCompile(`^0x[0-9a-f]{32}$`)

func TestSimulatedAnchorer_Anchor(t *testing.T) {
	a := NewSimulatedAnchorer()

	ref, err := a.Anchor(context.Background(), "Batch Created")
	require.NoError(t, err)
	assert.Regexp(t, anchorRefPattern, ref)

	other, err := a.Anchor(context.Background(), "Batch Created")
	require.NoError(t, err)
	assert.NotEqual(t, ref, other)
}

func TestSimulatedAnchorer_EmptyAction(t *testing.T) {
	a := NewSimulatedAnchorer()

	_, err := a.Anchor(context.Background(), "")
	assert.Error(t, err)
}
