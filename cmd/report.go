package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// reportCmd prints the weekly report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the weekly media diet report",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, store, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		week, _ := cmd.Flags().GetString("week")
		r := tr.Report(week)

		fmt.Printf("Week of %s\n\n", r.WeekKey)
		fmt.Printf("Visits:         %d\n", r.TotalVisits)
		fmt.Printf("Active minutes: %.0f\n", r.TotalMinutes)
		fmt.Printf("Unique domains: %d\n", r.UniqueDomains)

		if len(r.TopCategories) > 0 {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "\nCATEGORY\tVISITS\tSHARE\t")
			for _, c := range r.TopCategories {
				fmt.Fprintf(w, "%s\t%d\t%d%%\t\n", c.Category, c.Count, c.Percent)
			}
			w.Flush()
		}

		fmt.Println()
		for _, line := range r.Insights {
			fmt.Printf("  - %s\n", line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("week", "", "Week key (YYYY-MM-DD of a Sunday, default current week)")
}
