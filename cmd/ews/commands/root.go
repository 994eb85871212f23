package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the ews command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ews",
		Short: "Exchange Web Services FindFolder client",
		Long: `A command-line client for the Exchange Web Services FindFolder operation.

It sends a FindFolder request to an EWS endpoint, or answers from a static
response document in offline mode, and prints the folders found.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.ews/config.yml)")
	rootCmd.PersistentFlags().StringP("endpoint", "e", "", "FindFolder endpoint URL (default http://localhost:8080/ews/FindFolder)")
	rootCmd.PersistentFlags().Bool("offline", false, "answer from the offline fixture instead of the network")
	rootCmd.PersistentFlags().String("fixture", "", "XML file served in offline mode (default is the built-in simulated response)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (table, json, yaml); table on a terminal, json otherwise")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "log HTTP requests and responses")
	rootCmd.PersistentFlags().Duration("timeout", 0, "overall timeout of the HTTP exchange (0 keeps the platform default)")
	rootCmd.PersistentFlags().String("user-agent", "", "User-Agent header sent to the server")

	// Bind flags to viper
	for key, flag := range map[string]string{
		"config":     "config",
		"endpoint":   "endpoint",
		"offline":    "offline",
		"fixture":    "fixture",
		"output":     "output",
		"verbose":    "verbose",
		"debug":      "debug",
		"timeout":    "timeout",
		"user_agent": "user-agent",
	} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}

	// Add commands
	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewFindFoldersCommand())

	return rootCmd
}

func initConfig() error {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := configDirPath()
		if err != nil {
			return err
		}

		// Search config in ~/.ews/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("EWS")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("reading config file: %w", err)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	return nil
}
