package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ondrovic/browser-logins/internal/browsers"
	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/cli"
	"github.com/ondrovic/browser-logins/internal/utils/formatters"
	"github.com/ondrovic/browser-logins/internal/utils/prompt"
)

var (
	// deleteAllCmd empties the saved logins of every profile of every installed browser.
	deleteAllCmd = &cobra.Command{}
	// confirmBulkDelete asks before anything is deleted; tests may override.
	confirmBulkDelete = prompt.ConfirmBulkDelete
)

func init() {
	deleteAllCmd = &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every saved login",
		Long:  "Delete every saved login from every profile of every installed browser. Profiles that fail are reported and the sweep continues.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return deleteAllLogins(options, newManager())
		},
	}

	cli.RegisterFlag(deleteAllCmd, "yes", "y", false, "Skip the confirmation prompt", &options.AssumeYes)
	RootCmd.AddCommand(deleteAllCmd)
}

// deleteAllLogins confirms, sweeps and prints one line per profile. It fails when any profile failed.
func deleteAllLogins(sc types.CliFlags, m credentialManager) error {
	if !sc.AssumeYes && !confirmBulkDelete(browsers.Names(m.Browsers())) {
		fmt.Println("Aborted, nothing was deleted")
		return nil
	}

	var report types.SweepReport
	err := withSpinner(sc.Quiet, "Deleting saved logins", "Sweep finished", "Sweep failed", func() error {
		r, err := m.DeleteAll()
		report = r
		return err
	})
	if err != nil {
		return err
	}

	if sc.Quiet {
		out, err := formatters.FormatAsJson(report)
		if err != nil {
			return err
		}
		formatters.PrintJson(out)
	} else {
		for _, o := range report.Results {
			fmt.Println(formatters.FormatOutcome(o))
		}
		fmt.Printf("\nDeleted %d logins from %d profiles\n", report.Deleted(), len(report.Results)-report.Failed())
	}

	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d profiles could not be cleared", n)
	}
	return nil
}
