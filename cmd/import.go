package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearfeed/mediascope/pkg/history"

	homedir "github.com/mitchellh/go-homedir"
)

// importCmd bulk-ingests browser history into the weekly aggregates.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import browser history into the media diet",
	RunE: func(cmd *cobra.Command, args []string) error {
		browser, _ := cmd.Flags().GetString("browser")
		days, _ := cmd.Flags().GetInt("days")
		path, _ := cmd.Flags().GetString("history-file")
		if path == "" {
			var err error
			if path, err = defaultHistoryPath(browser); err != nil {
				return err
			}
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("history file not found: %s", path)
		}

		ctx := context.Background()
		var (
			entries []history.Entry
			err     error
		)
		switch browser {
		case "chrome":
			entries, err = history.ReadChrome(ctx, path, days, time.Now())
		case "firefox":
			entries, err = history.ReadFirefox(ctx, path, days, time.Now())
		default:
			return fmt.Errorf("unsupported browser %q (chrome or firefox)", browser)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Read %d history entries from %s\n", len(entries), path)

		tr, store, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		res := tr.ImportEntries(ctx, entries)
		fmt.Printf("Imported %d visits (%d duplicates skipped) across %d week(s)\n", res.Added, res.Skipped, res.Weeks)
		return nil
	},
}

// defaultHistoryPath guesses the browser's history database location for
// the current platform. Firefox profiles are suffixed randomly, so only a
// glob can find them.
func defaultHistoryPath(browser string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	switch browser {
	case "chrome":
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library/Application Support/Google/Chrome/Default/History"), nil
		case "windows":
			return filepath.Join(home, `AppData\Local\Google\Chrome\User Data\Default\History`), nil
		default:
			return filepath.Join(home, ".config/google-chrome/Default/History"), nil
		}
	case "firefox":
		var pattern string
		switch runtime.GOOS {
		case "darwin":
			pattern = filepath.Join(home, "Library/Application Support/Firefox/Profiles/*/places.sqlite")
		case "windows":
			pattern = filepath.Join(home, `AppData\Roaming\Mozilla\Firefox\Profiles\*\places.sqlite`)
		default:
			pattern = filepath.Join(home, ".mozilla/firefox/*/places.sqlite")
		}
		matches, _ := filepath.Glob(pattern)
		if len(matches) == 0 {
			return "", fmt.Errorf("no Firefox profile found; pass --history-file")
		}
		return matches[0], nil
	}
	return "", fmt.Errorf("unsupported browser %q", browser)
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("browser", "chrome", "Browser to import from (chrome or firefox)")
	importCmd.Flags().Int("days", 30, "How many days of history to import")
	importCmd.Flags().String("history-file", "", "Explicit path to the browser history database")
}
