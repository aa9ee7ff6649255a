/*
Copyright © 2025 proposalops
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docchat-be",
	Short: "Chat assistant backend over a private document repository",
	Long: `docchat-be answers questions grounded in an organization's own
documents (RFPs, case studies, proposals). It analyzes each query,
retrieves matching documents through a cascading search and generates
an answer citing its sources.

Run 'docchat-be start' to launch the API server.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file")
}
