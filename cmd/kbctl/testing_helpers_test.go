package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// TestHelper runs kbctl commands in an isolated working directory and config home
type TestHelper struct {
	t         *testing.T
	WorkDir   string
	ConfigDir string
}

// NewTestHelper chdirs into a fresh temp dir and points the user config
// directory at another one. Both are cleaned up with the test.
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	workDir := t.TempDir()
	configDir := t.TempDir()

	t.Setenv("XDG_CONFIG_HOME", configDir)
	t.Setenv("HOME", configDir)
	t.Chdir(workDir)

	return &TestHelper{t: t, WorkDir: workDir, ConfigDir: configDir}
}

// Run executes a fresh root command named "prog" with args
func (th *TestHelper) Run(args ...string) (stdout, stderr string, err error) {
	th.t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd("prog")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// WriteUserConfig writes the user-level config.json
func (th *TestHelper) WriteUserConfig(content string) {
	th.t.Helper()
	th.writeFile(filepath.Join(th.ConfigDir, "kb", "config.json"), content)
}

// WriteProjectConfig writes ./.kb/config.json
func (th *TestHelper) WriteProjectConfig(content string) {
	th.t.Helper()
	th.writeFile(filepath.Join(th.WorkDir, ".kb", "config.json"), content)
}

func (th *TestHelper) writeFile(path, content string) {
	th.t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		th.t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		th.t.Fatalf("failed to write %s: %v", path, err)
	}
}
