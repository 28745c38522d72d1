package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ondrovic/browser-logins/internal/discovery"
	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/formatters"
)

var (
	// detectCmd reports every browser profile found on disk through its cookie store.
	detectCmd = &cobra.Command{}
	// storeProvider lists cookie stores; tests may substitute mock stores.
	storeProvider discovery.StoreProvider = discovery.FindAll
)

func init() {
	detectCmd = &cobra.Command{
		Use:   "detect",
		Short: "Detect browser profiles",
		Long:  "Find the cookie stores of every browser on this machine, including ones browser-logins cannot manage, and report which profiles also hold saved logins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return detectStores(cmd.Context(), options, storeProvider)
		},
	}

	RootCmd.AddCommand(detectCmd)
}

// detectStores prints one line per cookie store, or JSON when quiet.
func detectStores(ctx context.Context, sc types.CliFlags, provider discovery.StoreProvider) error {
	var found []types.CookieStoreInfo
	_ = withSpinner(sc.Quiet, "Searching for browser profiles", "Search finished", "Search failed", func() error {
		found = discovery.Inventory(ctx, provider)
		return nil
	})

	if sc.Quiet {
		out, err := formatters.FormatAsJson(found)
		if err != nil {
			return err
		}
		formatters.PrintJson(out)
		return nil
	}

	if len(found) == 0 {
		fmt.Println("○ no browser profiles found")
		return nil
	}

	withLogins := 0
	for _, info := range found {
		fmt.Println(formatters.FormatCookieStore(info))
		if info.HasLoginData {
			withLogins++
		}
	}
	fmt.Printf("\n%d profiles found, %d with saved logins\n", len(found), withLogins)
	return nil
}
