package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clearfeed/mediascope/internal/tracker"
)

// settingsCmd prints the current settings.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change tracker settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, store, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		return printAsJSON(tr.Settings())
	},
}

// settingsSetCmd updates settings from key=value pairs, using the same
// JSON keys as the API. Example:
//
//	mediascope settings set echoChamberThreshold=3 guidanceMode=strong
var settingsSetCmd = &cobra.Command{
	Use:   "set key=value [key=value ...]",
	Short: "Change settings by their JSON key",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := patchFromArgs(args)
		if err != nil {
			return err
		}
		var sp tracker.SettingsPatch
		if err := json.Unmarshal(patch, &sp); err != nil {
			return err
		}

		tr, store, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		return printAsJSON(tr.UpdateSettings(context.Background(), sp))
	},
}

// patchFromArgs turns k=v pairs into a JSON object, guessing each value's
// type (bool, number, string).
func patchFromArgs(args []string) ([]byte, error) {
	obj := make(map[string]interface{}, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		if b, err := strconv.ParseBool(v); err == nil {
			obj[k] = b
		} else if f, err := strconv.ParseFloat(v, 64); err == nil {
			obj[k] = f
		} else {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}

func printAsJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
