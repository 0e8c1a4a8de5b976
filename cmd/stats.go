package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the current week's score breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, store, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		week := tr.CurrentWeek()
		if len(week.Bucket.Visits) == 0 {
			fmt.Println("No browsing recorded this week yet.")
			return nil
		}
		s := week.Bucket.Scores

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "SCORE\tVALUE\t")
		fmt.Fprintf(w, "Source diversity\t%.1f\t\n", s.SourceDiversity)
		fmt.Fprintf(w, "Content balance\t%.1f\t\n", s.ContentBalance)
		fmt.Fprintf(w, "Time management\t%.1f\t\n", s.TimeManagement)
		fmt.Fprintf(w, "Credibility\t%.1f\t\n", s.Credibility)
		fmt.Fprintf(w, "Content tone\t%.1f\t\n", s.ContentTone)
		fmt.Fprintf(w, "Political balance\t%.1f\t\n", s.PoliticalBalance)
		fmt.Fprintln(w, " \t \t")
		fmt.Fprintf(w, "OVERALL\t%.1f\t\n", s.OverallHealth)
		w.Flush()

		loadNow, level := tr.CurrentLoad()
		fmt.Printf("\nCredibility load: %.0f/100 (%s)\n", loadNow, level)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
