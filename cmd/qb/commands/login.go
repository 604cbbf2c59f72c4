package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var verifyTable string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a realm and user token",
		Long: `Store the realm and user token used by other commands.

The token is written to the config file with owner-only permissions.
Use --verify-table to run a one record query before saving.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			realm := viper.GetString("realm")
			if realm == "" {
				reader := bufio.NewReader(os.Stdin)
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Realm: ")
				realm, _ = reader.ReadString('\n')
				realm = strings.TrimSpace(realm)
			}

			if realm == "" {
				return constants.ErrNoRealmConfigured
			}

			token := viper.GetString("token")
			if token == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "User token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = strings.TrimSpace(string(byteToken))

				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}

			if token == "" {
				return constants.ErrNoTokenConfigured
			}

			config := loadConfig()
			config.Realm = realm
			config.Token = token

			if verifyTable != "" {
				err := verifyLogin(cmd, config, verifyTable)
				if err != nil {
					return err
				}
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s.%s\n", realm, constants.RealmDomain)

			return nil
		},
	}

	cmd.Flags().StringVar(&verifyTable, "verify-table", "", "table id to query once to check the token")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved user token",
		Long:  "Remove the user token from the config file. The realm is kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = ""

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func verifyLogin(cmd *cobra.Command, config *Config, tableID string) error {
	config.AllowEmptyQueryResults = true

	client, err := newClient(cmd, config)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd, constants.ShortHTTPTimeout)
	defer cancel()

	request := quickbase.NewQueryBuilder().From(tableID).Select(quickbase.RecordIDFieldID).Top(1).Build()

	result, err := client.QueryRecords(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to connect to Quickbase: %w", err)
	}

	if result.IsFailure() {
		return fmt.Errorf("token check failed: %w", result.Error())
	}

	return nil
}
