package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "noteboard [board.yaml]", cmd.Use)
	assert.Equal(t, "noteboard", cmd.Name())

	require.NoError(t, cmd.Args(cmd, []string{"work.board.yaml"}))
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))

	palette := cmd.Flags().Lookup("palette")
	require.NotNil(t, palette)
	assert.Equal(t, "classic", palette.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("reset-prefs"))
}
