package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// clearCmd wipes all tracked data.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tracked data and reset to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("This deletes all tracked browsing data. Continue? [y/N] ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.ToLower(strings.TrimSpace(line)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		tr, store, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		tr.ClearAll(context.Background())
		fmt.Println("All data cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
