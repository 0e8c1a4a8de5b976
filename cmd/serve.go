package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clearfeed/mediascope/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local API server the browser extension talks to",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, store, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		listenAddr, _ := cmd.Flags().GetString("listen")
		if listenAddr == "" {
			listenAddr = viper.GetString("server.listen")
		}
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			username = viper.GetString("server.username")
		}
		serverPass, _ := cmd.Flags().GetString("auth-password")
		if serverPass == "" {
			serverPass = viper.GetString("server.password")
		}

		return server.New(tr, username, serverPass).Start(listenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "HTTP listen address (default 127.0.0.1:7979)")
	serveCmd.Flags().String("username", "", "Basic auth username (empty disables auth)")
	serveCmd.Flags().String("auth-password", "", "Basic auth password")
}
