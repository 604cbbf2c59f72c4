package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
)

// ConfigDirName is the directory under $HOME holding config.yml.
const ConfigDirName = ".qb"

// Config represents the CLI configuration.
type Config struct {
	Realm                  string `json:"realm,omitempty"          yaml:"realm,omitempty"`
	Token                  string `json:"token,omitempty"          yaml:"token,omitempty"`
	BaseURL                string `json:"base_url,omitempty"       yaml:"base_url,omitempty"`
	Output                 string `json:"output,omitempty"         yaml:"output,omitempty"`
	AllowEmptyQueryResults bool   `json:"allow_empty"              yaml:"allow_empty"`
}

// configSetters maps each settable key to how it updates a Config.
var configSetters = map[string]func(*Config, string) error{
	"realm":    func(c *Config, v string) error { c.Realm = v; return nil },
	"token":    func(c *Config, v string) error { c.Token = v; return nil },
	"base_url": func(c *Config, v string) error { c.BaseURL = v; return nil },
	"output": func(c *Config, v string) error {
		switch v {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			c.Output = v

			return nil
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutput, v)
		}
	},
	"allow_empty": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("allow_empty must be true or false: %w", err)
		}

		c.AllowEmptyQueryResults = b

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage qb CLI configuration such as realm, token and output format",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration. The token is masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = constants.MaskedSecret
			}

			return renderConfig(cmd.OutOrStdout(), config, viper.GetString("output"))
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if key == "token" {
				value = constants.MaskedSecret
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := configSetters[key]; !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			config := loadConfig()
			unsetConfigValue(config, key)

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

// loadConfig reads the effective configuration from viper, so flags and
// QB_* environment variables override the file.
func loadConfig() *Config {
	return &Config{
		Realm:                  viper.GetString("realm"),
		Token:                  viper.GetString("token"),
		BaseURL:                viper.GetString("base_url"),
		Output:                 viper.GetString("output"),
		AllowEmptyQueryResults: viper.GetBool("allow_empty"),
	}
}

func setConfigValue(config *Config, key, value string) error {
	setter, ok := configSetters[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return setter(config, value)
}

func unsetConfigValue(config *Config, key string) {
	switch key {
	case "realm":
		config.Realm = ""
	case "token":
		config.Token = ""
	case "base_url":
		config.BaseURL = ""
	case "output":
		config.Output = ""
	case "allow_empty":
		config.AllowEmptyQueryResults = false
	}
}

func configKeys() []string {
	keys := make([]string, 0, len(configSetters))
	for key := range configSetters {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// configFilePath returns the file viper read, or $HOME/.qb/config.yml.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ConfigDirName, "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func renderConfig(w io.Writer, config *Config, output string) error {
	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(config)
	case constants.FormatYAML:
		return yaml.NewEncoder(w).Encode(config)
	}

	title := cases.Title(language.English)

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	rows := [][2]string{
		{"realm", config.Realm},
		{"token", config.Token},
		{"base_url", config.BaseURL},
		{"output", config.Output},
		{"allow_empty", strconv.FormatBool(config.AllowEmptyQueryResults)},
	}

	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = constants.NotAvailable
		}

		_ = table.Append([]string{title.String(strings.ReplaceAll(row[0], "_", " ")), value})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
