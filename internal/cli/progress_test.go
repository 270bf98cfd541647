package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	out := &syncBuffer{}
	bar := NewProgressBar(out, 3, "Classifying companies...")

	for range 3 {
		require.NoError(t, bar.Add(1))
	}

	assert.True(t, bar.IsFinished())
	assert.Contains(t, out.String(), "3/3")
}
