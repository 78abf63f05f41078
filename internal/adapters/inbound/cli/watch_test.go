package cli_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sitecheck/sitecheck/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("stdout closed") }

func TestWatchCommand_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := new(bytes.Buffer)
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"watch", "--path", cleanSite})

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "PASSED")
	assert.Contains(t, out.String(), "watching")
}

func TestWatchCommand_LogsRenderFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stderr := new(bytes.Buffer)
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(failingWriter{})
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"watch", "--path", cleanSite, "--json", "--log-level", "error"})

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, stderr.String(), "rendering report failed")
	assert.Contains(t, stderr.String(), "stdout closed")
}
