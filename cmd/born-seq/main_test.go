package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "born-seq "+version+"\n", out)
}

func TestRun(t *testing.T) {
	out, err := execute(t, "ab\n\nxyz\n", "run", "--embed-dim", "4", "--hidden-dim", "6")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4, out)
	assert.Contains(t, lines[0], "INDEX")
	assert.Contains(t, lines[0], "INPUT GRAD")

	assert.Contains(t, lines[1], "[2 6]")
	assert.Contains(t, lines[1], "[2 4]")
	assert.Contains(t, lines[2], "[0 6]")
	assert.Contains(t, lines[2], "[0 4]")
	assert.Contains(t, lines[3], "[3 6]")
	assert.Contains(t, lines[3], "[3 4]")
}

func TestRun_LinearFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld!\n"), 0o600))

	out, err := execute(t, "", "run", path, "--layer", "linear", "--hidden-dim", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "[5 3]")
	assert.Contains(t, out, "[6 3]")
}

func TestRun_NoInput(t *testing.T) {
	_, err := execute(t, "", "run")
	assert.Error(t, err)
}

func TestRun_BadConfig(t *testing.T) {
	_, err := execute(t, "a\n", "run", "--layer", "gru")
	assert.Error(t, err)

	_, err = execute(t, "a\n", "run", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTrain(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("embed_dim: 4\nhidden_dim: 8\nsteps: 3\n"), 0o600))

	for _, optimizer := range []string{"sgd", "adam"} {
		t.Run(optimizer, func(t *testing.T) {
			out, err := execute(t, "abc\nde\n", "train", "--config", cfgPath, "--optimizer", optimizer)
			require.NoError(t, err)

			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, 4, out)
			assert.Contains(t, lines[0], "LOSS")
			assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[3]), "3"))
		})
	}
}
