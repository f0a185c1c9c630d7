package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ponyatov/kb/cmd/session"
	"github.com/ponyatov/kb/pkg/argecho"
	"github.com/ponyatov/kb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parityLines = `0 "even"
1 "odd"
2 "even"
3 "odd"
4 "even"
`

const accumulatorLines = `0 "even" 0.0
1 "odd" 0.0
2 "even" 1.0
3 "odd" 9.0
4 "even" 144.0
`

type runner struct {
	t    *testing.T
	opts config.Options
}

func newRunner(t *testing.T) *runner {
	return &runner{t: t, opts: config.Options{
		ProjectDir:    t.TempDir(),
		UserConfigDir: t.TempDir(),
	}}
}

// run invokes kb as "prog" followed by args
func (r *runner) run(args ...string) (stdout, stderr string, code int) {
	var out, errOut bytes.Buffer
	argv := append([]string{"prog"}, args...)
	code = run(context.Background(), &out, &errOut, argv, r.opts)
	return out.String(), errOut.String(), code
}

func (r *runner) writeUserConfig(content string) string {
	path := filepath.Join(r.opts.UserConfigDir, config.AppDirName, config.ConfigFileName)
	r.write(path, content)
	return path
}

func (r *runner) writeProjectConfig(content string) {
	r.write(filepath.Join(r.opts.ProjectDir, config.ProjectDirName, config.ConfigFileName), content)
}

func (r *runner) write(path, content string) {
	r.t.Helper()
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0644))
}

func echoLines(args ...string) string {
	var b strings.Builder
	for i, a := range append([]string{"prog"}, args...) {
		b.WriteString(argecho.FormatLine(i, a) + "\n")
	}
	return b.String()
}

func TestRun_ExampleScenario(t *testing.T) {
	stdout, stderr, code := newRunner(t).run("alpha", "beta")

	assert.Equal(t, session.ExitOK, code)
	want := "argv[0] = \"prog\"\n" +
		"argv[1] = \"alpha\"\n" +
		"argv[2] = \"beta\"\n" +
		parityLines
	assert.Equal(t, want, stdout)
	assert.Empty(t, stderr)
}

func TestRun_MissingArguments(t *testing.T) {
	stdout, stderr, code := newRunner(t).run()

	assert.Equal(t, session.ExitMissingArguments, code)
	assert.Empty(t, stdout, "no echo line may precede the failure")
	assert.Contains(t, stderr, "at least one argument is required")
}

func TestRun_EveryArgumentIsEchoed(t *testing.T) {
	words := []string{
		"-v", "--help", "-h", "help", "--version",
		"echo", "demo", "config", "completion", "__complete",
		"--", "-x", "--demo=off", "--table",
	}

	for _, word := range words {
		t.Run(word, func(t *testing.T) {
			stdout, _, code := newRunner(t).run(word)

			assert.Equal(t, session.ExitOK, code)
			assert.Equal(t, echoLines(word)+parityLines, stdout)
		})
	}
}

func TestRun_DashedArgumentsKeepTheirPlace(t *testing.T) {
	stdout, _, code := newRunner(t).run("--", "-v", "alpha", "--")

	assert.Equal(t, session.ExitOK, code)
	assert.Equal(t, echoLines("--", "-v", "alpha", "--")+parityLines, stdout)
}

func TestRun_ConfigSelectsVariant(t *testing.T) {
	r := newRunner(t)
	r.writeUserConfig(`{"demo": {"variant": "off"}}`)

	stdout, _, code := r.run("a")
	assert.Equal(t, session.ExitOK, code)
	assert.Equal(t, echoLines("a"), stdout)

	r.writeProjectConfig(`{"demo": {"variant": "accumulator"}}`)

	stdout, _, code = r.run("a")
	assert.Equal(t, session.ExitOK, code)
	assert.Equal(t, echoLines("a")+accumulatorLines, stdout, "project config beats user config")
}

func TestRun_TableOutputFromConfig(t *testing.T) {
	r := newRunner(t)
	r.writeProjectConfig(`{"output": {"format": "table"}, "demo": {"variant": "accumulator"}}`)

	stdout, _, code := r.run("alpha")

	assert.Equal(t, session.ExitOK, code)
	upper := strings.ToUpper(stdout)
	assert.Contains(t, upper, "ARGUMENT")
	assert.Contains(t, upper, "ACCUMULATOR")
	assert.Contains(t, stdout, `"alpha"`)
	assert.Contains(t, stdout, "144.0")
	assert.NotContains(t, stdout, "argv[")
}

func TestRun_TableOutputMissingArguments(t *testing.T) {
	r := newRunner(t)
	r.writeProjectConfig(`{"output": {"format": "table"}}`)

	stdout, _, code := r.run()

	assert.Equal(t, session.ExitMissingArguments, code)
	assert.Empty(t, stdout)
}

func TestRun_UnreadableConfigStillEchoes(t *testing.T) {
	r := newRunner(t)
	require.NoError(t, os.MkdirAll(filepath.Join(r.opts.UserConfigDir, config.AppDirName, config.ConfigFileName), 0755))

	stdout, stderr, code := r.run("alpha")

	assert.Equal(t, session.ExitOK, code)
	assert.Equal(t, echoLines("alpha")+parityLines, stdout)
	assert.Contains(t, stderr, "configuration file ignored")
}

func TestRun_UnparsableConfigStillEchoes(t *testing.T) {
	r := newRunner(t)
	r.writeUserConfig(`{"demo":`)

	stdout, stderr, code := r.run("alpha")

	assert.Equal(t, session.ExitOK, code)
	assert.Equal(t, echoLines("alpha")+parityLines, stdout)
	assert.Contains(t, stderr, "configuration file ignored")
}

func TestRun_InvalidConfigValueWarns(t *testing.T) {
	r := newRunner(t)
	r.writeUserConfig(`{"demo": {"variant": "accumulator"}}`)
	r.writeProjectConfig(`{"demo": {"variant": "bogus"}}`)

	stdout, stderr, code := r.run("alpha")

	assert.Equal(t, session.ExitOK, code)
	assert.Equal(t, echoLines("alpha")+accumulatorLines, stdout, "the valid user value applies")
	assert.Contains(t, stderr, "configuration value ignored")
	assert.Contains(t, stderr, "demo.variant")
}

func TestRun_DebugLoggingFromConfig(t *testing.T) {
	r := newRunner(t)
	r.writeUserConfig(`{"log": {"level": "debug", "format": "json"}}`)

	stdout, stderr, code := r.run("alpha")

	assert.Equal(t, session.ExitOK, code)
	assert.Contains(t, stderr, `"msg":"captured arguments"`)
	assert.Contains(t, stderr, `"count":2`)
	assert.Contains(t, stderr, `"msg":"demo step"`)
	assert.NotContains(t, stdout, "captured arguments", "logs must not leak into stdout")
}

func TestRun_SettingsDoNotLeakBetweenRuns(t *testing.T) {
	debug := newRunner(t)
	debug.writeUserConfig(`{"log": {"level": "debug"}}`)

	_, stderr, _ := debug.run("alpha")
	require.Contains(t, stderr, "captured arguments")

	_, stderr, _ = newRunner(t).run("alpha")
	assert.Empty(t, stderr)
}

func TestRun_Idempotent(t *testing.T) {
	r := newRunner(t)
	args := []string{"x", "y z", `q"uote`, "-v"}

	first, _, _ := r.run(args...)
	second, _, _ := r.run(args...)

	assert.Equal(t, first, second)
}

// TestBinaryExitStatus builds kb and checks real process exit statuses.
func TestBinaryExitStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	bin := filepath.Join(t.TempDir(), "kb")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	build := exec.Command("go", "build", "-o", bin, ".")
	out, err := build.CombinedOutput()
	require.NoError(t, err, "go build failed: %s", out)

	home := t.TempDir()
	env := append(os.Environ(), "XDG_CONFIG_HOME="+home, "HOME="+home)

	exe := func(args ...string) (string, int) {
		cmd := exec.Command(bin, args...)
		cmd.Dir = t.TempDir()
		cmd.Env = env
		var stdout strings.Builder
		cmd.Stdout = &stdout
		err := cmd.Run()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), exitErr.ExitCode()
		}
		require.NoError(t, err)
		return stdout.String(), 0
	}

	stdout, code := exe("alpha", "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `argv[0] = "`+bin+`"`)
	assert.Contains(t, stdout, `argv[2] = "--help"`)

	stdout, code = exe()
	assert.Equal(t, session.ExitMissingArguments, code)
	assert.Empty(t, stdout)
}
