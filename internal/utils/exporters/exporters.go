// Package exporters handles displaying and saving enumeration results as JSON.
package exporters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/savioxavier/termlink"

	"github.com/ondrovic/browser-logins/internal/types"
	"github.com/ondrovic/browser-logins/internal/utils/formatters"
)

// DisplayResults formats and displays the enumerate-all result. In quiet mode plain JSON is
// printed so it can be piped to jq; otherwise it is colorized. Returns an error if formatting fails.
func DisplayResults(sc types.CliFlags, results []types.BrowserData, formatResultsFunc func([]types.BrowserData) (string, error)) error {
	jsonResults, err := formatResultsFunc(results)
	if err != nil {
		return fmt.Errorf("error while attempting to format results: %v", err)
	}

	if sc.Quiet {
		formatters.PrintJson(jsonResults)
		return nil
	}

	return formatters.PrintPrettyJson(jsonResults)
}

// SaveResultsToJson writes data as indented JSON to dir/filename, creating dir when needed.
// ".json" is appended to a filename without an extension. The file is opened with
// openFileFunc so tests can intercept it. Returns the full path written.
func SaveResultsToJson(dir, filename string, data interface{}, openFileFunc func(name string, flag int, perm os.FileMode) (*os.File, error), ensureDirExistsFunc func(string) error) (string, error) {
	if err := ensureDirExistsFunc(dir); err != nil {
		return "", err
	}

	if filepath.Ext(filename) == "" {
		filename += ".json"
	}
	fullPath := filepath.Join(dir, filename)

	jsonData, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return "", fmt.Errorf("error formatting data: %s - %v", fullPath, err)
	}

	// Saved logins are private; keep the file owner-only.
	file, err := openFileFunc(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("error saving file: %s - %v", fullPath, err)
	}
	defer file.Close()

	if _, err := file.Write(jsonData); err != nil {
		return "", fmt.Errorf("error saving file: %s - %v", fullPath, err)
	}
	return fullPath, nil
}

// PrintSavedPath prints a clickable link to a saved results file.
func PrintSavedPath(fullPath string) {
	fmt.Printf("Results saved to %s\n", termlink.ColorLink(fullPath, fullPath, "green"))
}
