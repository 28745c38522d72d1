package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ondrovic/browser-logins/internal/browsers"
	"github.com/ondrovic/browser-logins/internal/profiles"
	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/cli"
	"github.com/ondrovic/browser-logins/internal/utils/formatters"
)

// profilesCmd lists the display name and directory of every profile of the installed browsers.
var profilesCmd = &cobra.Command{}

func init() {
	profilesCmd = &cobra.Command{
		Use:   "profiles",
		Short: "List browser profiles",
		Long:  "List the display name and directory of every profile of every installed browser. Display names are what delete --profile expects.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listProfiles(options, newManager())
		},
	}

	cli.RegisterFlag(profilesCmd, "browser", "b", "", "Only list the profiles of this browser", &options.BrowserName)
	RootCmd.AddCommand(profilesCmd)
}

// listProfiles prints profiles grouped by browser, or JSON when quiet.
func listProfiles(sc types.CliFlags, m credentialManager) error {
	if sc.BrowserName != "" {
		if _, err := browsers.Find(m.Browsers(), sc.BrowserName); err != nil {
			return err
		}
	}

	all, err := m.Profiles()
	if err != nil {
		return err
	}
	if sc.BrowserName != "" {
		all = map[string][]profiles.Identity{sc.BrowserName: all[sc.BrowserName]}
	}

	if sc.Quiet {
		out, err := formatters.FormatAsJson(all)
		if err != nil {
			return err
		}
		formatters.PrintJson(out)
		return nil
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ids := all[name]
		if len(ids) == 0 {
			fmt.Printf("○ %s: not installed\n", name)
			continue
		}
		fmt.Printf("✓ %s\n", name)
		for _, id := range ids {
			fmt.Printf("    %s (%s)\n", id.DisplayName, id.Directory)
		}
	}
	return nil
}
