package contract

import (
	"testing"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1", "Yes"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}

	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", TruncateLabel("short", 20))
	assert.Equal(t, "a-very-lo...", TruncateLabel("a-very-long-repository-name", 12))
	// Widths too small for an ellipsis leave the label untouched.
	assert.Equal(t, "abcdef", TruncateLabel("abcdef", 3))
}

func TestDirectionLabels(t *testing.T) {
	assert.Equal(t, "Increasing", GetPlainDirectionLabel(schema.DirectionIncreasing))
	assert.Equal(t, "Decreasing", GetPlainDirectionLabel(schema.DirectionDecreasing))
	assert.Equal(t, "Stable", GetPlainDirectionLabel(schema.DirectionStable))

	// Colored labels always contain the plain text, with or without escape
	// codes around it.
	assert.Contains(t, GetColorDirectionLabel(schema.DirectionDecreasing), "Decreasing")
}

func TestSelectOutputFileDefaultsToStdout(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, "/dev/stdout", f.Name())
}
