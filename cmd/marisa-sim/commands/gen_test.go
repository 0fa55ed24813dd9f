package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/marisa/rational"
)

func TestParseUtilFraction(t *testing.T) {
	got, err := parseUtil("3/2")
	require.NoError(t, err)
	assert.True(t, rational.New(3, 2).Equal(got))
}

func TestParseUtilInteger(t *testing.T) {
	got, err := parseUtil("2")
	require.NoError(t, err)
	assert.True(t, rational.FromInt(2).Equal(got))
}

func TestParseUtilInvalid(t *testing.T) {
	_, err := parseUtil("not-a-number")
	assert.Error(t, err)
}
