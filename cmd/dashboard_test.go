package main

import (
	"bytes"
	"testing"

	"github.com/jerry-enebeli/runboard"
	"github.com/jerry-enebeli/runboard/datasource"
	"github.com/jerry-enebeli/runboard/savedview"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInstance() *runboardInstance {
	return &runboardInstance{
		runboard: runboard.New(datasource.NewMockSource(0), savedview.NewMemoryStore(), runboard.BackingMock),
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueryCommand(t *testing.T) {
	out, err := run(t, queryCommands(newTestInstance()), "pipelines", "-w", "status = failed")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT * FROM pipelines WHERE STATUS = 'failed'")
	assert.Contains(t, out, "pipe-003")
	assert.Contains(t, out, "pipe-007")
	assert.Contains(t, out, "Showing 1-2 of 2, page 1 of 1")
}

func TestQueryCommandBlankValue(t *testing.T) {
	_, err := run(t, queryCommands(newTestInstance()), "pipelines", "-w", "status =")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cond-1")
}

func TestQueryCommandUnknownDomain(t *testing.T) {
	_, err := run(t, queryCommands(newTestInstance()), "builds")
	assert.Error(t, err)
}

func TestQueryCommandInspect(t *testing.T) {
	out, err := run(t, queryCommands(newTestInstance()), "pipelines", "--inspect", "pipe-009")
	require.NoError(t, err)
	assert.Contains(t, out, `"backupSize": "2.3 GB"`)

	_, err = run(t, queryCommands(newTestInstance()), "pipelines", "-w", "status = failed", "--inspect", "pipe-009")
	assert.Error(t, err)
}

func TestQueryCommandPaging(t *testing.T) {
	out, err := run(t, queryCommands(newTestInstance()), "projects", "--page", "9", "--rows-per-page", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 1-8 of 8, page 1 of 1")
}

func TestPreviewCommand(t *testing.T) {
	out, err := run(t, previewCommands(newTestInstance()), "pipelines",
		"--template", "Failed Pipelines", "-w", "or executor like lambda")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM pipelines WHERE STATUS = 'failed' OR EXECUTOR LIKE 'lambda'\n", out)

	_, err = run(t, previewCommands(newTestInstance()), "pipelines", "--template", "Nope")
	assert.Error(t, err)
}

func TestViewCommands(t *testing.T) {
	r := newTestInstance()

	out, err := run(t, viewCommands(r), "save", "Slow jobs", "-w", "duration > 300")
	require.NoError(t, err)
	assert.Contains(t, out, "saved view Slow jobs (view-5)")

	out, err = run(t, viewCommands(r), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "view-5")
	assert.Contains(t, out, "Slow jobs")

	out, err = run(t, previewCommands(r), "pipelines", "--view", "slow jobs")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM pipelines WHERE DURATION > '300'\n", out)

	out, err = run(t, viewCommands(r), "delete", "view-5")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted view view-5")

	_, err = run(t, previewCommands(r), "pipelines", "--view", "view-5")
	assert.Error(t, err)
}

func TestViewSaveNeedsConditions(t *testing.T) {
	_, err := run(t, viewCommands(newTestInstance()), "save", "Empty")
	assert.Error(t, err)
}
