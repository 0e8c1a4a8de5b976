package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clearfeed/mediascope/internal/tracker"
	"github.com/clearfeed/mediascope/internal/utils"
	"github.com/clearfeed/mediascope/pkg/storage"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	                     _ _
	 _ __ ___   ___  __| (_) __ _ ___  ___ ___  _ __   ___
	| '_ ` + "`" + ` _ \ / _ \/ _` + "`" + ` | |/ _` + "`" + ` / __|/ __/ _ \| '_ \ / _ \
	| | | | | |  __/ (_| | | (_| \__ \ (_| (_) | |_) |  __/
	|_| |_| |_|\___|\__,_|_|\__,_|___/\___\___/| .__/ \___|
	                                           |_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mediascope",
	Short: "A media diet tracker and scorer for your browsing.",
	Long: LOGO + `mediascope classifies the news, social and educational sources you read,
scores your weekly media diet, and nudges you out of echo chambers,
right from your command line.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mediascope.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("dbpath", "", "", "Path to the snapshot database (default is $HOME/.mediascope.sqlite)")
	rootCmd.PersistentFlags().StringP("password", "p", "", "Password for an encrypted snapshot")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".mediascope")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.mediascope.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	viper.SetDefault("server.listen", "127.0.0.1:7979")
	viper.SetDefault("server.username", "")
	viper.SetDefault("server.password", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// dbPath resolves the snapshot database location from the flag or the
// default under the home directory.
func dbPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("dbpath"); p != "" {
		return p, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mediascope.sqlite"), nil
}

// openTracker opens the snapshot store and hydrates a tracker from it.
// The caller owns the returned store and must Close it.
func openTracker(cmd *cobra.Command) (*tracker.Tracker, *storage.Store, error) {
	path, err := dbPath(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.Open(path)
	if err != nil {
		return nil, nil, err
	}
	password, _ := cmd.Flags().GetString("password")
	tr := tracker.New(tracker.Options{Store: store, Password: password})
	if err := tr.Hydrate(context.Background()); err != nil {
		store.Close()
		return nil, nil, err
	}
	return tr, store, nil
}
