package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/cli"
)

// deleteCmd removes the saved logins matching one (url, username) pair in one profile.
var deleteCmd = &cobra.Command{}

func init() {
	deleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "Delete a saved login",
		Long:  "Delete every saved login matching --url and --username from the given browser profile. The browser may stay open; the change is written back once it releases the file.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return deleteLogin(options, newManager())
		},
	}

	initDeleteFlags(deleteCmd)
	RootCmd.AddCommand(deleteCmd)
}

// initDeleteFlags registers the identity of the login to delete. All four are required.
func initDeleteFlags(cmd *cobra.Command) {
	cli.RegisterFlag(cmd, "browser", "b", "", "Browser name, e.g. \"Google Chrome\"", &options.BrowserName)
	cli.RegisterFlag(cmd, "profile", "p", "", "Profile display name, e.g. \"Person 1\"", &options.ProfileName)
	cli.RegisterFlag(cmd, "url", "u", "", "Signon realm of the login, e.g. https://example.com/", &options.URL)
	cli.RegisterFlag(cmd, "username", "n", "", "Username of the login", &options.Username)
	for _, name := range []string{"browser", "profile", "url", "username"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

// deleteLogin runs the targeted delete behind a spinner.
func deleteLogin(sc types.CliFlags, m credentialManager) error {
	target := types.DeletionTarget{
		Browser:  sc.BrowserName,
		Profile:  sc.ProfileName,
		URL:      sc.URL,
		Username: sc.Username,
	}
	stopMsg := fmt.Sprintf("Deleted %s from %s / %s", target.Username, target.Browser, target.Profile)
	return withSpinner(sc.Quiet, "Deleting saved login", stopMsg, "Failed to delete saved login", func() error {
		return m.Delete(target)
	})
}
