package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/fivetwenty-io/ews-client/pkg/ews"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// resolveOutput returns the configured output format. Without one, a
// terminal gets a table and anything else gets JSON.
func resolveOutput(w io.Writer) (string, error) {
	output := viper.GetString("output")

	switch output {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return output, nil
	case "":
		if isTerminal(w) {
			return constants.FormatTable, nil
		}

		return constants.FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnknownOutput, output)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(interface{ Fd() uintptr })

	return ok && term.IsTerminal(int(file.Fd()))
}

// renderResult writes a FindFolder result in the given format.
func renderResult(w io.Writer, result *ews.FindFolderResult, output string) error {
	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(result)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)

		return encoder.Encode(result)
	default:
		return renderResultTable(w, result)
	}
}

func renderResultTable(w io.Writer, result *ews.FindFolderResult) error {
	if result.IsFault() {
		_, _ = fmt.Fprintln(w, "SOAP Fault encountered:")

		table := tablewriter.NewWriter(w)
		table.Header("Property", "Value")
		_ = table.Append("Fault Code", result.Fault.Code)
		_ = table.Append("Fault String", result.Fault.String)

		if result.Fault.Actor != "" {
			_ = table.Append("Fault Actor", result.Fault.Actor)
		}

		if result.Fault.Detail != "" {
			_ = table.Append("Response Code", result.Fault.Detail)
		}

		return renderTable(table)
	}

	if !result.HasPayload {
		_, _ = fmt.Fprintln(w, constants.NoPayload)

		return nil
	}

	_, _ = fmt.Fprintf(w, "Response Code: %s\n", result.ResponseCode)

	if result.MessageText != "" {
		_, _ = fmt.Fprintf(w, "Message: %s\n", result.MessageText)
	}

	if len(result.Folders) == 0 {
		_, _ = fmt.Fprintln(w, "No folders found in response")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Folder ID", "Display Name", "Total Count")

	for _, folder := range result.Folders {
		_ = table.Append(folder.FolderID, folder.DisplayName, formatCount(folder.TotalCount))
	}

	err := renderTable(table)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s found\n", pluralFolders(len(result.Folders)))

	return nil
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// formatCount groups digits of numeric counts and leaves anything else as is.
func formatCount(count string) string {
	value, err := strconv.ParseInt(count, 10, 64)
	if err != nil {
		return count
	}

	return humanize.Comma(value)
}

func pluralFolders(n int) string {
	if n == 1 {
		return "1 folder"
	}

	return humanize.Comma(int64(n)) + " folders"
}
