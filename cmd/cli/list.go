package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils"
	"github.com/ondrovic/browser-logins/internal/utils/cli"
	"github.com/ondrovic/browser-logins/internal/utils/exporters"
	"github.com/ondrovic/browser-logins/internal/utils/formatters"
	"github.com/ondrovic/browser-logins/internal/utils/storage"
)

var (
	// listCmd reads every saved login of every installed browser.
	listCmd = &cobra.Command{}
	// formatResultsFunc renders the enumerate-all result as JSON.
	formatResultsFunc = formatters.FormatResultsAsJson
	// displayResultsFunc prints the result; tests may override to simulate a display failure.
	displayResultsFunc = exporters.DisplayResults
	// saveResultsFunc writes the result to disk; tests may override to simulate a save failure.
	saveResultsFunc = exporters.SaveResultsToJson
)

func init() {
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List saved logins",
		Long:  "List the url, username and dates of every saved login in every profile of every installed browser. Passwords are never read.",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	initListFlags(listCmd)
	RootCmd.AddCommand(listCmd)
}

// initListFlags registers the display and save options of the list command.
func initListFlags(cmd *cobra.Command) {
	cli.RegisterFlag(cmd, "display-results", "r", true, "Do you want to display the results in the terminal?", &options.DisplayResults)
	cli.RegisterFlag(cmd, "save-results", "s", false, "Do you want to save the results to a JSON file?", &options.SaveResults)
	cli.RegisterFlag(cmd, "output-directory", "o", storage.GetDataStoragePath(), "Output directory to save the file in", &options.OutputDirectory)
	cli.RegisterFlag(cmd, "output-filename", "f", "browser-logins", "Filename to save the results to", &options.OutputFilename)
}

// runList validates that the results go somewhere and runs listLogins.
func runList(_ *cobra.Command, _ []string) error {
	if !options.DisplayResults && !options.SaveResults {
		return fmt.Errorf("at least one of --display-results (-r) or --save-results (-s) must be enabled")
	}
	return listLogins(options, newManager())
}

// listLogins enumerates, then displays and/or saves the result.
func listLogins(sc types.CliFlags, m credentialManager) error {
	var results []types.BrowserData
	err := withSpinner(sc.Quiet, "Reading saved logins", "Saved logins read", "Failed to read saved logins", func() error {
		r, err := m.Enumerate()
		results = r
		return err
	})
	if err != nil {
		return err
	}

	if !sc.Quiet {
		profileCount, credentialCount := formatters.CountCredentials(results)
		fmt.Printf("Found %d saved logins in %d profiles across %d browsers\n", credentialCount, profileCount, len(results))
	}

	if sc.DisplayResults {
		if err := displayResultsFunc(sc, results, formatResultsFunc); err != nil {
			fmt.Fprintln(os.Stderr, "Error displaying results:", err)
			return err
		}
	}

	if sc.SaveResults {
		var saved string
		err := withSpinner(sc.Quiet, "Saving results", "Results saved", "Failed to save results", func() error {
			path, err := saveResultsFunc(sc.OutputDirectory, sc.OutputFilename, results, os.OpenFile, utils.EnsureDirExists)
			saved = path
			return err
		})
		if err != nil {
			return err
		}
		if !sc.Quiet {
			exporters.PrintSavedPath(saved)
		}
	}

	return nil
}
