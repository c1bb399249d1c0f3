package cmd

import (
	"fmt"
	"log"
	"os"

	"cinegate/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cinegate",
	Short: "CineGate is a movie catalog proxy with token authentication.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting CineGate server...")
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
