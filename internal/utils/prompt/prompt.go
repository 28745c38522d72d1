// Package prompt asks the user for confirmation on the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConfirmAction prompts the user for a yes/no confirmation
func ConfirmAction(prompt string) bool {
	return confirmActionWithIO(os.Stdin, os.Stdout, prompt)
}

// confirmActionWithIO prompts for yes/no on out, reading from in; used for testing.
// Anything but y or yes, including a read error, is a no.
func confirmActionWithIO(in io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}

	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}

// ConfirmBulkDelete warns that every saved login of every listed browser will be removed and
// asks for confirmation.
func ConfirmBulkDelete(browsers []string) bool {
	return confirmBulkDeleteWithIO(os.Stdin, os.Stdout, browsers)
}

func confirmBulkDeleteWithIO(in io.Reader, out io.Writer, browsers []string) bool {
	fmt.Fprintln(out, "\n⚠️  Delete all saved logins")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "Every saved login in every profile of these browsers will be removed:")
	for _, name := range browsers {
		fmt.Fprintf(out, "  • %s\n", name)
	}
	fmt.Fprintln(out, "Close the browsers first; a running browser may keep its store locked.")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
	return confirmActionWithIO(in, out, "Continue?")
}
