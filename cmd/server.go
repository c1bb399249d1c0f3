package cmd

import (
	"cinegate/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the CineGate HTTP server",
	Long:  `Start the HTTP server serving the auth API and the movie catalog proxy.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
