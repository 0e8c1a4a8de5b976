package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clearfeed/mediascope/internal/tracker"
	"github.com/clearfeed/mediascope/pkg/classifier"
	"github.com/clearfeed/mediascope/pkg/fetch"
)

// analyzeCmd fetches and classifies one live page.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Fetch a page and show how it would be classified",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := fetch.NewClient().Page(args[0])
		if err != nil {
			return err
		}
		res := classifier.Classify(page.Domain, page.Path, page.Title, page.Text)

		fmt.Printf("Domain:      %s\n", page.Domain)
		fmt.Printf("Title:       %s\n", page.Title)
		fmt.Printf("Category:    %s\n", res.Category)
		fmt.Printf("Bias:        %s\n", res.Bias)
		fmt.Printf("Tone:        %s\n", res.Tone)
		if res.Credibility != nil {
			fmt.Printf("Credibility: %.1f\n", *res.Credibility)
		} else {
			fmt.Printf("Credibility: unknown\n")
		}
		if res.SourceName != "" {
			fmt.Printf("Source:      %s\n", res.SourceName)
		}

		record, _ := cmd.Flags().GetBool("record")
		if !record {
			return nil
		}
		tr, store, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		out, err := tr.RecordVisit(context.Background(), tracker.PageInfo{
			Domain:  page.Domain,
			Path:    page.Path,
			Title:   page.Title,
			Content: page.Text,
		})
		if err != nil {
			return err
		}
		if !out.Recorded {
			fmt.Println("\nTracking is paused; visit not recorded.")
			return nil
		}
		fmt.Printf("\nRecorded into week %s (overall health %.1f)\n", out.WeekKey, out.Scores.OverallHealth)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("record", false, "Record the page as a visit after classifying it")
}
