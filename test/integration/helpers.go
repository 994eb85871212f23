//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/fivetwenty-io/ews-client/pkg/ews"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Endpoint       string
	ParentFolderID string
	EwsPath        string
	Verbose        bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	parent := os.Getenv("EWS_TEST_PARENT")
	if parent == "" {
		parent = ews.DefaultParentFolderID
	}

	return &TestConfig{
		Endpoint:       os.Getenv("EWS_TEST_ENDPOINT"),
		ParentFolderID: parent,
		EwsPath:        getEwsPath(),
		Verbose:        os.Getenv("EWS_TEST_VERBOSE") == "true",
	}
}

// getEwsPath determines the path to the ews binary
func getEwsPath() string {
	if path := os.Getenv("EWS_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../ews",
		"./ews",
		"../ews",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "ews"
}

// SkipIfNoBinary skips the test when the ews binary cannot be found.
func (config *TestConfig) SkipIfNoBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.EwsPath); err != nil {
		t.Skipf("ews binary not found at %s, skipping integration test", config.EwsPath)
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Endpoint == "" {
		t.Skip("EWS_TEST_ENDPOINT not set, skipping integration test")
	}

	config.SkipIfNoBinary(t)
}

// CommandRunner runs the ews binary with an isolated HOME.
type CommandRunner struct {
	config *TestConfig
	home   string
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		home:   t.TempDir(),
		t:      t,
	}
}

// Run executes an ews command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.EwsPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+runner.home)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.EwsPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// DecodeJSONResult decodes find-folders JSON output.
func DecodeJSONResult(t *testing.T, output string) *ews.FindFolderResult {
	t.Helper()

	result := &ews.FindFolderResult{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), result), output)

	return result
}

// DecodeYAMLResult decodes find-folders YAML output.
func DecodeYAMLResult(t *testing.T, output string) *ews.FindFolderResult {
	t.Helper()

	result := &ews.FindFolderResult{}
	require.NoError(t, yaml.Unmarshal([]byte(output), result), output)

	return result
}
