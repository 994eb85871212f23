package commands_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/ews-client/cmd/ews/commands"
	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/fivetwenty-io/ews-client/pkg/ews"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const faultFixture = `<?xml version="1.0" encoding="utf-8"?>
<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/">
  <s:Body>
    <s:Fault>
      <faultcode>ErrorInvalidFolderId</faultcode>
      <faultstring>The specified folder id is invalid.</faultstring>
    </s:Fault>
  </s:Body>
</s:Envelope>`

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// execute runs the CLI with HOME pointed at home. The commands share the
// global viper instance, so these tests do not run in parallel.
func execute(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()

	viper.Reset()
	t.Setenv("HOME", home)

	root := commands.NewRootCommand("1.2.3", "abc123", "2026-10-19")

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Structure(t *testing.T) {
	root := commands.NewRootCommand("dev", "none", "unknown")

	for _, name := range []string{"find-folders", "version", "config"} {
		assert.NotNil(t, findSubcommand(root, name), name)
	}

	configCmd := findSubcommand(root, "config")
	require.NotNil(t, configCmd)
	assert.NotNil(t, findSubcommand(configCmd, "show"))
	assert.NotNil(t, findSubcommand(configCmd, "set"))

	findCmd := findSubcommand(root, "find-folders")
	require.NotNil(t, findCmd)
	assert.Equal(t, "root", findCmd.Flags().Lookup("parent").DefValue)
	assert.Equal(t, "Default", findCmd.Flags().Lookup("shape").DefValue)
}

func TestFindFolders_OfflineJSON(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "find-folders", "--offline")
	require.NoError(t, err)

	var result ews.FindFolderResult

	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.True(t, result.HasPayload)
	assert.Equal(t, "NoError", result.ResponseCode)
	assert.Equal(t, []ews.Folder{{FolderID: "AAA=", DisplayName: "Inbox", TotalCount: "42"}}, result.Folders)
}

func TestFindFolders_OfflineTable(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "find-folders", "--offline", "-o", "table", "--shape", "AllProperties")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Response Code: NoError")
	assert.Contains(t, stdout, "AAA=")
	assert.Contains(t, stdout, "Inbox")
	assert.Contains(t, stdout, "42")
	assert.Contains(t, stdout, "1 folder found")
}

func TestFindFolders_OfflineYAML(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "find-folders", "--offline", "-o", "yaml")
	require.NoError(t, err)

	assert.Contains(t, stdout, "folder_id: AAA=")
	assert.Contains(t, stdout, "display_name: Inbox")
}

func TestFindFolders_Fault(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "fault.xml")
	require.NoError(t, os.WriteFile(fixture, []byte(faultFixture), constants.ConfigFilePerm))

	stdout, _, err := execute(t, t.TempDir(), "find-folders", "--offline", "--fixture", fixture, "-o", "table")
	require.Error(t, err)

	fault := &ews.Fault{}
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "ErrorInvalidFolderId", fault.Code)
	assert.Contains(t, stdout, "SOAP Fault encountered:")
	assert.Contains(t, stdout, "The specified folder id is invalid.")
}

func TestFindFolders_NoPayload(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "empty.xml")
	require.NoError(t, os.WriteFile(fixture, []byte(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/"><s:Body/></s:Envelope>`), constants.ConfigFilePerm))

	stdout, _, err := execute(t, t.TempDir(), "find-folders", "--offline", "--fixture", fixture, "-o", "table")
	require.NoError(t, err)
	assert.Equal(t, constants.NoPayload+"\n", stdout)

	stdout, _, err = execute(t, t.TempDir(), "find-folders", "--offline", "--fixture", fixture, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "{\n  \"has_payload\": false,")
}

func TestFindFolders_EmptyParentRejected(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "find-folders", "--offline", "--parent", "")
	require.Error(t, err)
	assert.True(t, ews.IsInputError(err))
	assert.Empty(t, stdout)
}

func TestFindFolders_LiveEndpoint(t *testing.T) {
	fixture, err := os.ReadFile(filepath.Join("..", "..", "..", "internal", "fixtures", "simulated-response.xml"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "test-agent", request.Header.Get("User-Agent"))
		_, _ = writer.Write(fixture)
	}))
	defer server.Close()

	stdout, _, err := execute(t, t.TempDir(), "find-folders", "--endpoint", server.URL, "--user-agent", "test-agent")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"folder_id": "AAA="`)
}

func TestFindFolders_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	stdout, _, err := execute(t, t.TempDir(), "find-folders", "--endpoint", server.URL)
	require.Error(t, err)
	assert.True(t, ews.IsTransportError(err))
	assert.Equal(t, http.StatusBadGateway, ews.StatusCode(err))
	assert.Empty(t, stdout)
}

func TestFindFolders_UnknownOutput(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "find-folders", "--offline", "-o", "xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, constants.ErrUnknownOutput))
}

func TestFindFolders_VerboseLogsToStderr(t *testing.T) {
	_, stderr, err := execute(t, t.TempDir(), "find-folders", "--offline", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "FindFolder completed")
	assert.Contains(t, stderr, "request_id=")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "version", "-o", "json")
	require.NoError(t, err)

	var info map[string]string

	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, "abc123", info["commit"])
	assert.Equal(t, "2026-10-19", info["built"])
}

func TestConfigCommands(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := execute(t, home, "config", "set", "endpoint", "https://mail.example.com/EWS/Exchange.asmx")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set endpoint")

	_, _, err = execute(t, home, "config", "set", "offline", "true")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, ".ews", "config.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "endpoint: https://mail.example.com/EWS/Exchange.asmx")

	stdout, _, err = execute(t, home, "config", "show", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "endpoint: https://mail.example.com/EWS/Exchange.asmx")
	assert.Contains(t, stdout, "offline: true")

	// The stored offline setting applies to find-folders.
	stdout, _, err = execute(t, home, "find-folders")
	require.NoError(t, err)
	assert.Contains(t, stdout, "AAA=")
}

func TestConfigSet_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected error
	}{
		{name: "unknown key", args: []string{"config", "set", "password", "x"}, expected: commands.ErrUnknownConfigKey},
		{name: "bad bool", args: []string{"config", "set", "offline", "maybe"}, expected: commands.ErrInvalidValue},
		{name: "bad duration", args: []string{"config", "set", "timeout", "soon"}, expected: commands.ErrInvalidValue},
		{name: "bad output", args: []string{"config", "set", "output", "xml"}, expected: constants.ErrUnknownOutput},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, _, err := execute(t, t.TempDir(), testCase.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, testCase.expected))
		})
	}
}
