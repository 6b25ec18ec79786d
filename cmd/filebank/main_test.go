package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filebank-network/filebank/build"
)

func TestNodeTypePerCommand(t *testing.T) {
	app := newApp()
	require.Equal(t, build.NodeClient, build.RunningNodeType)

	var daemon bool
	for _, c := range app.Commands {
		if c.Name == "daemon" {
			daemon = true
			require.NoError(t, c.Before(nil))
		}
	}
	require.True(t, daemon)
	require.Equal(t, build.NodeLedger, build.RunningNodeType)
}
