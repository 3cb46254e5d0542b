package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	oldVersion, oldGitCommit := Version, GitCommit
	defer func() {
		Version, GitCommit = oldVersion, oldGitCommit
	}()

	Version = "1.2.3"
	GitCommit = "abcdef"

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "success-rate-router 1.2.3")
	assert.Contains(t, out.String(), "Commit: abcdef")
}

func TestRootCmd_MissingConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
