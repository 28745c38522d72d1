// Package spinners provides terminal spinners for progress feedback.
package spinners

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theckman/yacspin"
)

// newSpinner is used by CreateSpinner; may be overridden in tests to simulate failure.
var newSpinner = func(cfg yacspin.Config) (*yacspin.Spinner, error) {
	return yacspin.New(cfg)
}

// processExit is called to exit the process; used for both error (code 1) and clean/signal (code 0) exits. Tests may override to avoid os.Exit.
var processExit = func(code int) { os.Exit(code) }

// output is where spinners draw. Stdout is left to results so they can be piped.
var output io.Writer = os.Stderr

// Spinner is the subset of *yacspin.Spinner that Run drives; tests may supply a fake.
type Spinner interface {
	Start() error
	Stop() error
	StopFail() error
	StopFailMessage(string)
	StopMessage(string)
}

// CreateSpinner initializes and returns a yacspin spinner with the provided
// start and stop messages, characters, and failure configurations.
func CreateSpinner(startMessage, stopCharacter, stopMessage, stopFailCharacter, stopFailMessage string) *yacspin.Spinner {
	cfg := yacspin.Config{
		Writer:            output,
		Frequency:         100 * time.Millisecond,
		Colors:            []string{"fgHiBlue"},
		CharSet:           yacspin.CharSets[14],
		Suffix:            " ",
		SuffixAutoColon:   true,
		Message:           startMessage,
		StopCharacter:     stopCharacter,
		StopColors:        []string{"fgHiGreen"},
		StopMessage:       stopMessage,
		StopFailCharacter: stopFailCharacter,
		StopFailColors:    []string{"fgHiRed"},
		StopFailMessage:   stopFailMessage,
	}

	s, err := newSpinner(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create spinner: %v\n", err)
		processExit(1)
		return nil // unreachable in production; satisfies compiler when processExit is stubbed in tests
	}

	return s
}

// Run starts spinner, runs task and stops the spinner with its success or failure message.
// An interrupt while task runs stops the spinner and exits. task's error is returned unchanged.
func Run(spinner Spinner, task func() error) error {
	if spinner == nil {
		return task()
	}
	if err := spinner.Start(); err != nil {
		return task()
	}
	stop := stopOnSignal(spinner)
	defer stop()

	if err := task(); err != nil {
		spinner.StopFailMessage(err.Error())
		if stopErr := spinner.StopFail(); stopErr != nil {
			fmt.Fprintf(os.Stderr, "spinner stop error: %v\n", stopErr)
		}
		return err
	}
	if stopErr := spinner.Stop(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "spinner stop error: %v\n", stopErr)
	}
	return nil
}

// stopOnSignal stops the spinner with a failure message if an interrupt or
// termination signal is received, ensuring proper cleanup before exiting.
// The returned function stops listening.
func stopOnSignal(spinner Spinner) func() {
	// ensure we stop the spinner before exiting, otherwise cursor will remain
	// hidden and terminal will require a `reset`
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
		case <-done:
			return
		}

		spinner.StopFailMessage("interrupted")

		// ignoring error intentionally
		_ = spinner.StopFail()

		processExit(0)
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
