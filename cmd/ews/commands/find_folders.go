package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/ews-client/internal/report"
	"github.com/fivetwenty-io/ews-client/pkg/ews"
	"github.com/fivetwenty-io/ews-client/pkg/ewsclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewFindFoldersCommand creates the find-folders command.
func NewFindFoldersCommand() *cobra.Command {
	var (
		parentFolderID string
		folderShape    string
	)

	cmd := &cobra.Command{
		Use:     "find-folders",
		Aliases: []string{"folders", "ff"},
		Short:   "List the folders under a parent folder",
		Long: `Send a FindFolder request with shallow traversal and print the folders
directly under the parent folder.

A SOAP fault from the server is printed and makes the command exit non-zero.`,
		Example: `  # List the folders under the mailbox root
  ews find-folders

  # Ask for all properties of the folders under the inbox
  ews find-folders --parent inbox --shape AllProperties

  # Use the built-in simulated response instead of a server
  ews find-folders --offline -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFindFolders(cmd, parentFolderID, folderShape)
		},
	}

	cmd.Flags().StringVarP(&parentFolderID, "parent", "p", ews.DefaultParentFolderID, "parent folder id")
	cmd.Flags().StringVarP(&folderShape, "shape", "s", ews.DefaultFolderShape, "base shape (IdOnly, Default, AllProperties)")
	cmd.Flags().String("nats-url", "", "publish each outcome to this NATS server")
	cmd.Flags().String("nats-subject", "", "NATS subject for outcomes (default ews.findfolder.outcomes)")

	_ = viper.BindPFlag("nats_url", cmd.Flags().Lookup("nats-url"))
	_ = viper.BindPFlag("nats_subject", cmd.Flags().Lookup("nats-subject"))

	return cmd
}

func runFindFolders(cmd *cobra.Command, parentFolderID, folderShape string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	output, err := resolveOutput(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	config := loadConfig()
	debug := viper.GetBool("debug")

	ewsConfig := &ews.Config{
		Endpoint:    config.Endpoint,
		Offline:     config.Offline,
		FixturePath: config.Fixture,
		HTTPTimeout: viper.GetDuration("timeout"),
		Debug:       debug,
		Logger:      newLogger(cmd.ErrOrStderr(), debug || viper.GetBool("verbose")),
		UserAgent:   config.UserAgent,
	}

	if config.NATSURL != "" {
		conn, err := report.Connect(config.NATSURL, "ews-client")
		if err != nil {
			return err
		}

		defer func() {
			_ = conn.Flush()
			conn.Close()
		}()

		reporter, err := report.NewNATSReporter(conn, config.NATSSubject)
		if err != nil {
			return err
		}

		ewsConfig.Reporter = reporter
	}

	client, err := ewsclient.New(ctx, ewsConfig)
	if err != nil {
		return err
	}

	result, err := client.FindFolders(ctx, parentFolderID, folderShape)
	if err != nil {
		return fmt.Errorf("FindFolder operation failed: %w", err)
	}

	err = renderResult(cmd.OutOrStdout(), result, output)
	if err != nil {
		return err
	}

	return result.Err()
}
