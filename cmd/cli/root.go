// Package cli provides the Cobra-based CLI commands for browser-logins (list, delete, delete-all,
// profiles, detect, totp, version).
package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	sCli "github.com/ondrovic/common/utils/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.szostok.io/version/extension"

	"github.com/ondrovic/browser-logins/internal/config"
	"github.com/ondrovic/browser-logins/internal/credentials"
	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/cli"
	"github.com/ondrovic/browser-logins/internal/utils/logging"
	"github.com/ondrovic/browser-logins/internal/utils/retry"
)

const (
	// RepoOwner and RepoName identify the GitHub repository checked for upgrades.
	RepoOwner = "ondrovic"
	RepoName  = "browser-logins"
)

// RootCmd is the main Cobra command for the browser-logins CLI tool.
var RootCmd = &cobra.Command{
	Use:   "browser-logins",
	Short: "A CLI tool to list and delete the logins saved by Chromium-based browsers",
}

var (
	// options holds the command-line flag values using the CliFlags struct.
	options = types.CliFlags{}
	// clearTerminalScreen clears the terminal before a command runs; tests may override it.
	clearTerminalScreen = func(interface{}) error { return sCli.ClearTerminalScreen(runtime.GOOS) }
	// loadConfig reads config.yaml and BROWSER_LOGINS_* overrides into the global viper.
	loadConfig = func(path string) (*config.Config, error) { return config.Load(viper.GetViper(), path) }
	// runtimeConfig and logger are set by the root pre-run for the command being executed.
	runtimeConfig = &config.Config{Retry: config.RetryConfig{Attempts: retry.Default.Attempts, Delay: retry.Default.Delay}}
	logger        = logging.Discard()
	// newManager builds the credential manager used by the commands; tests may inject a mock.
	newManager = func() credentialManager {
		return credentials.New(
			credentials.WithRetry(runtimeConfig.RetryPolicy()),
			credentials.WithLogger(logger),
		)
	}
)

func init() {
	cli.RegisterPersistentFlag(RootCmd, "quiet", "q", false, "Suppress spinner and status output (for piping to jq)", &options.Quiet)
	cli.RegisterPersistentFlag(RootCmd, "verbose", "v", false, "Log debug output to stderr", &options.Verbose)
	cli.RegisterPersistentFlag(RootCmd, "config", "c", "", "Path to a config file (default "+config.DefaultPath()+")", &options.ConfigPath)
	cli.RegisterPersistentFlag(RootCmd, "retry-attempts", "", retry.Default.Attempts, "Write-back attempts while a browser holds its store locked", &options.RetryAttempts)
	cli.RegisterPersistentFlag(RootCmd, "retry-delay", "", retry.Default.Delay, "Delay between write-back attempts", &options.RetryDelay)
	_ = viper.BindPFlags(RootCmd.PersistentFlags())
	_ = viper.BindPFlag("retry.attempts", RootCmd.PersistentFlags().Lookup("retry-attempts"))
	_ = viper.BindPFlag("retry.delay", RootCmd.PersistentFlags().Lookup("retry-delay"))

	RootCmd.PersistentPreRunE = preRun

	RootCmd.AddCommand(extension.NewVersionCobraCmd(
		extension.WithUpgradeNotice(RepoOwner, RepoName),
	))
}

// preRun loads configuration, builds the logger and clears the terminal unless quiet.
func preRun(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(viper.GetString("config"))
	if err != nil {
		return err
	}
	runtimeConfig = cfg

	l, err := logging.New(os.Stderr, logLevel(cfg))
	if err != nil {
		return err
	}
	logger = l

	if viper.GetBool("quiet") {
		return nil
	}
	if err := clearTerminalScreen(runtime.GOOS); err != nil {
		return fmt.Errorf("error clearing terminal: %w", err)
	}
	return nil
}

// logLevel lets --verbose and --quiet override the configured level.
func logLevel(cfg *config.Config) string {
	switch {
	case viper.GetBool("verbose"):
		return log.DebugLevel.String()
	case viper.GetBool("quiet"):
		return log.ErrorLevel.String()
	default:
		return cfg.Log.Level
	}
}

// Execute runs the RootCmd command, handling any errors that occur during its execution.
// Returns an error if the command fails to execute.
func Execute() error {
	if err := RootCmd.Execute(); err != nil {
		return err
	}

	return nil
}
