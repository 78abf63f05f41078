package cli_test

import (
	"bytes"
	"testing"

	"github.com/sitecheck/sitecheck/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCommand_ListsServe(t *testing.T) {
	out, err := execute(t, "mcp")
	require.NoError(t, err)
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "Model Context Protocol")
}

func TestMCPServe_PathFlagDefaultsToCurrentDirectory(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	serve, _, err := cmd.Find([]string{"mcp", "serve"})
	require.NoError(t, err)

	flag := serve.Flags().Lookup("path")
	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
	assert.Contains(t, flag.Usage, "current working directory")
}

func TestMCPServe_RejectsBadLogLevelBeforeServing(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"mcp", "serve", "--path", cleanSite, "--log-level", "loud"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --log-level")
}
