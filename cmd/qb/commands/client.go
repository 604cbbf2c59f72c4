package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/qbclient"
	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

// newClient builds a client from config. --verbose turns on request logging
// to stderr.
func newClient(cmd *cobra.Command, config *Config) (quickbase.Client, error) {
	if config.Realm == "" {
		return nil, constants.ErrNoRealmConfigured
	}

	if config.Token == "" {
		return nil, constants.ErrNoTokenConfigured
	}

	qbConfig := &quickbase.Config{
		Realm:                  config.Realm,
		UserToken:              config.Token,
		BaseURL:                config.BaseURL,
		AllowEmptyQueryResults: config.AllowEmptyQueryResults,
	}

	if viper.GetBool("verbose") {
		qbConfig.Debug = true
		qbConfig.Logger = &cliLogger{w: cmd.ErrOrStderr()}
	}

	client, err := qbclient.New(qbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// commandContext bounds a single CLI call.
func commandContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithTimeout(ctx, timeout)
}

// cliLogger writes "[LEVEL] msg key=value ..." lines.
type cliLogger struct {
	w io.Writer
}

func (l *cliLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l *cliLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l *cliLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l *cliLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

func (l *cliLogger) log(level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var b strings.Builder

	b.WriteString("[" + level + "] " + msg)

	for _, key := range keys {
		_, _ = fmt.Fprintf(&b, " %s=%v", key, fields[key])
	}

	_, _ = fmt.Fprintln(l.w, b.String())
}
