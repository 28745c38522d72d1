package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ondrovic/browser-logins/internal/config"
	"github.com/ondrovic/browser-logins/internal/utils/retry"
)

// stubPreRun replaces the config loader and restores the runtime state after the test.
func stubPreRun(t *testing.T, cfg *config.Config, err error) {
	t.Helper()
	origLoad, origCfg, origLogger := loadConfig, runtimeConfig, logger
	loadConfig = func(string) (*config.Config, error) { return cfg, err }
	t.Cleanup(func() {
		loadConfig, runtimeConfig, logger = origLoad, origCfg, origLogger
	})
}

func setViper(t *testing.T, key string, value interface{}) {
	t.Helper()
	orig := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, orig) })
}

func testConfig() *config.Config {
	return &config.Config{
		Retry: config.RetryConfig{Attempts: 2, Delay: 10 * time.Millisecond},
		Log:   config.LogConfig{Level: "warn"},
	}
}

// TestRootCmd_Initialized verifies RootCmd has expected Use and Short.
func TestRootCmd_Initialized(t *testing.T) {
	assert.Equal(t, "browser-logins", RootCmd.Use)
	assert.Equal(t, "A CLI tool to list and delete the logins saved by Chromium-based browsers", RootCmd.Short)
}

func TestRootCmd_SubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range RootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"list", "delete", "delete-all", "profiles", "detect", "totp", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flags := RootCmd.PersistentFlags()
	for _, name := range []string{"quiet", "verbose", "config", "retry-attempts", "retry-delay"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
	assert.Equal(t, retry.Default.Delay.String(), flags.Lookup("retry-delay").DefValue)
}

// TestExecute_Success verifies Execute returns nil when root command succeeds.
func TestExecute_Success(t *testing.T) {
	origRoot := RootCmd
	defer func() { RootCmd = origRoot }()

	RootCmd = &cobra.Command{
		Run: func(cmd *cobra.Command, args []string) {},
	}

	assert.NoError(t, Execute())
}

// TestExecute_Failure verifies Execute returns the root command error.
func TestExecute_Failure(t *testing.T) {
	origRoot := RootCmd
	defer func() { RootCmd = origRoot }()

	RootCmd = &cobra.Command{
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("execution failed")
		},
	}

	err := Execute()
	assert.Error(t, err)
	assert.Equal(t, "execution failed", err.Error())
}

// TestRootCmd_PersistentPreRunE_QuietSkipsClear verifies clear is skipped when quiet is set.
func TestRootCmd_PersistentPreRunE_QuietSkipsClear(t *testing.T) {
	stubPreRun(t, testConfig(), nil)
	setViper(t, "quiet", true)
	orig := clearTerminalScreen
	defer func() { clearTerminalScreen = orig }()
	cleared := false
	clearTerminalScreen = func(interface{}) error { cleared = true; return nil }

	err := RootCmd.PersistentPreRunE(RootCmd, nil)
	assert.NoError(t, err)
	assert.False(t, cleared)
}

// TestRootCmd_PersistentPreRunE_ClearTerminalSuccess verifies pre-run clears terminal when not quiet.
func TestRootCmd_PersistentPreRunE_ClearTerminalSuccess(t *testing.T) {
	stubPreRun(t, testConfig(), nil)
	setViper(t, "quiet", false)
	orig := clearTerminalScreen
	defer func() { clearTerminalScreen = orig }()
	cleared := false
	clearTerminalScreen = func(interface{}) error { cleared = true; return nil }

	err := RootCmd.PersistentPreRunE(RootCmd, nil)
	assert.NoError(t, err)
	assert.True(t, cleared)
}

// TestRootCmd_PersistentPreRunE_ClearTerminalError verifies pre-run returns error when clear fails.
func TestRootCmd_PersistentPreRunE_ClearTerminalError(t *testing.T) {
	stubPreRun(t, testConfig(), nil)
	setViper(t, "quiet", false)
	orig := clearTerminalScreen
	defer func() { clearTerminalScreen = orig }()
	clearErr := errors.New("clear failed")
	clearTerminalScreen = func(interface{}) error { return clearErr }

	err := RootCmd.PersistentPreRunE(RootCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error clearing terminal")
	assert.ErrorIs(t, err, clearErr)
}

func TestRootCmd_PersistentPreRunE_AppliesConfig(t *testing.T) {
	cfg := testConfig()
	stubPreRun(t, cfg, nil)
	setViper(t, "quiet", true)

	require.NoError(t, RootCmd.PersistentPreRunE(RootCmd, nil))

	assert.Same(t, cfg, runtimeConfig)
	assert.Equal(t, retry.Policy{Attempts: 2, Delay: 10 * time.Millisecond}, runtimeConfig.RetryPolicy())
	assert.NotNil(t, logger)
}

func TestRootCmd_PersistentPreRunE_ConfigError(t *testing.T) {
	boom := errors.New("config file not found")
	stubPreRun(t, nil, boom)

	err := RootCmd.PersistentPreRunE(RootCmd, nil)

	assert.ErrorIs(t, err, boom)
}

func TestRootCmd_PersistentPreRunE_BadLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.Log.Level = "loud"
	stubPreRun(t, cfg, nil)
	setViper(t, "quiet", false)
	setViper(t, "verbose", false)

	assert.Error(t, RootCmd.PersistentPreRunE(RootCmd, nil))
}

func TestLogLevel(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name           string
		verbose, quiet bool
		want           string
	}{
		{"configured", false, false, "warn"},
		{"verbose wins", true, true, "debug"},
		{"quiet", false, true, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setViper(t, "verbose", tt.verbose)
			setViper(t, "quiet", tt.quiet)
			assert.Equal(t, tt.want, logLevel(cfg))
		})
	}
}
