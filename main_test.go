package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "Pan/zoom drawing board with a LAN pen bridge", rootCmd.Short)

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"snapshot", "discover"})
}

func TestSnapshotCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "board.pdf")

	rootCmd.SetArgs([]string{"snapshot", out, "--config", filepath.Join(dir, "missing.yaml"), "--width", "40", "--height", "30"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
