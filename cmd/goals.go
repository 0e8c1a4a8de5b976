package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// goalsCmd shows daily and weekly goal progress.
var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show today's and this week's goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, store, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		p := tr.GoalsProgress()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "GOAL\tACTUAL\tTARGET\tMET\t")

		var names []string
		for name := range p.Daily.Results {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := p.Daily.Results[name]
			fmt.Fprintf(w, "daily/%s\t%.1f\t%.1f\t%v\t\n", name, c.Actual, c.Target, c.Met)
		}

		names = names[:0]
		for name := range p.Weekly.Results {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := p.Weekly.Results[name]
			fmt.Fprintf(w, "weekly/%s\t%.1f\t%.1f\t%v\t\n", name, c.Actual, c.Target, c.Met)
		}
		w.Flush()

		fmt.Printf("\nDaily streak:  %d (longest %d)\n", p.Streaks.DailyCurrent, p.Streaks.DailyLongest)
		fmt.Printf("Weekly streak: %d (longest %d)\n", p.Streaks.WeeklyCurrent, p.Streaks.WeeklyLongest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}
