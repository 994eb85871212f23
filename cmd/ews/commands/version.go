package commands

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the EWS CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			type VersionInfo struct {
				Version   string `json:"version"    yaml:"version"`
				Commit    string `json:"commit"     yaml:"commit"`
				Built     string `json:"built"      yaml:"built"`
				GoVersion string `json:"go_version" yaml:"go_version"`
			}

			versionInfo := VersionInfo{
				Version:   version,
				Commit:    commit,
				Built:     date,
				GoVersion: runtime.Version(),
			}

			output, err := resolveOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			switch output {
			case constants.FormatJSON:
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

				return encoder.Encode(versionInfo)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(cmd.OutOrStdout())

				return encoder.Encode(versionInfo)
			default:
				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header("Property", "Value")
				_ = table.Append("Version", version)
				_ = table.Append("Commit", commit)
				_ = table.Append("Built", date)
				_ = table.Append("Go", versionInfo.GoVersion)

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
