package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Static errors for err113 compliance.
var (
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrInvalidValue     = errors.New("invalid configuration value")
)

// Config represents the CLI configuration.
type Config struct {
	Endpoint    string `json:"endpoint,omitempty"     yaml:"endpoint,omitempty"`
	Offline     bool   `json:"offline"                yaml:"offline"`
	Fixture     string `json:"fixture,omitempty"      yaml:"fixture,omitempty"`
	Output      string `json:"output,omitempty"       yaml:"output,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"   yaml:"user_agent,omitempty"`
	Timeout     string `json:"timeout,omitempty"      yaml:"timeout,omitempty"`
	NATSURL     string `json:"nats_url,omitempty"     yaml:"nats_url,omitempty"`
	NATSSubject string `json:"nats_subject,omitempty" yaml:"nats_subject,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the EWS CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after flags, environment and config file are merged",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			output, err := resolveOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			switch output {
			case constants.FormatJSON:
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

				return encoder.Encode(config)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(cmd.OutOrStdout())

				return encoder.Encode(config)
			default:
				return displayConfigTable(cmd.OutOrStdout(), config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the config file.

Keys: endpoint, offline, fixture, output, user_agent, timeout, nats_url, nats_subject`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			err = setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = writeConfigFile(path, config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)

			return nil
		},
	}
}

// loadConfig returns the effective configuration.
func loadConfig() *Config {
	config := &Config{
		Endpoint:    viper.GetString("endpoint"),
		Offline:     viper.GetBool("offline"),
		Fixture:     viper.GetString("fixture"),
		Output:      viper.GetString("output"),
		UserAgent:   viper.GetString("user_agent"),
		NATSURL:     viper.GetString("nats_url"),
		NATSSubject: viper.GetString("nats_subject"),
	}

	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		config.Timeout = timeout.String()
	}

	return config
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "endpoint":
		config.Endpoint = value
	case "offline":
		offline, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w for offline: %s", ErrInvalidValue, value)
		}

		config.Offline = offline
	case "fixture":
		config.Fixture = value
	case "output":
		if value != constants.FormatTable && value != constants.FormatJSON && value != constants.FormatYAML {
			return fmt.Errorf("%w: %s", constants.ErrUnknownOutput, value)
		}

		config.Output = value
	case "user_agent":
		config.UserAgent = value
	case "timeout":
		_, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w for timeout: %s", ErrInvalidValue, value)
		}

		config.Timeout = value
	case "nats_url":
		config.NATSURL = value
	case "nats_subject":
		config.NATSSubject = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func configDirPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", constants.ErrNoConfigDir, err)
	}

	return filepath.Join(home, ".ews"), nil
}

func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	configDir, err := configDirPath()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func readConfigFile(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

func writeConfigFile(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func displayConfigTable(w io.Writer, config *Config) error {
	table := tablewriter.NewWriter(w)
	table.Header("Setting", "Value")

	_ = table.Append("Endpoint", valueOr(config.Endpoint, constants.DefaultEndpoint))
	_ = table.Append("Offline", strconv.FormatBool(config.Offline))
	_ = table.Append("Fixture", valueOr(config.Fixture, "(built-in)"))
	_ = table.Append("Output", valueOr(config.Output, "(auto)"))
	_ = table.Append("User Agent", valueOr(config.UserAgent, constants.DefaultUserAgent))
	_ = table.Append("Timeout", valueOr(config.Timeout, "(none)"))
	_ = table.Append("NATS URL", valueOr(config.NATSURL, constants.NotAvailable))
	_ = table.Append("NATS Subject", valueOr(config.NATSSubject, constants.DefaultNATSSubject))

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
