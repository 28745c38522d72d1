package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ondrovic/browser-logins/internal/totp"
	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/cli"
	"github.com/ondrovic/browser-logins/internal/utils/formatters"
)

var (
	// totpCmd prints the current code of every configured authenticator account.
	totpCmd = &cobra.Command{}
	// newRegistry and now are swapped in tests.
	newRegistry = totp.NewRegistry
	now         = time.Now
)

// errNoAccounts is returned when no URI could be loaded.
var errNoAccounts = errors.New("no totp accounts loaded")

func init() {
	totpCmd = &cobra.Command{
		Use:   "totp",
		Short: "Show authenticator codes",
		Long:  "Load otpauth://totp URIs from --uri and the totp.accounts config key and print the current code of each",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showCodes(options, runtimeConfig.TOTP.Accounts)
		},
	}

	cli.RegisterFlag(totpCmd, "uri", "u", []string{}, "otpauth://totp URI, may be repeated", &options.TotpURIs)
	RootCmd.AddCommand(totpCmd)
}

// showCodes loads every URI, reports the ones that fail and prints the codes of the rest.
func showCodes(sc types.CliFlags, configured []string) error {
	reg := newRegistry()
	uris := append(append([]string{}, sc.TotpURIs...), configured...)
	for i, uri := range uris {
		if _, err := reg.Add(uri); err != nil {
			// The URI carries the secret, so only its position is printed.
			logger.Error("skipping totp account", "index", i, "err", err)
		}
	}
	if reg.Len() == 0 {
		return errNoAccounts
	}

	codes := reg.Codes(now())
	if sc.Quiet {
		out, err := formatters.FormatAsJson(codes)
		if err != nil {
			return err
		}
		formatters.PrintJson(out)
		return nil
	}

	for _, e := range codes {
		fmt.Printf("%-3d %-24s %-32s %s\n", e.ID, e.Account, e.Username, e.Code)
	}
	return nil
}
