package main

import (
	"os"

	"github.com/spf13/cobra"

	"bossgym/internal/logging"
	"bossgym/internal/protocol"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the environment over stdin/stdout",
	Long: `Reads one JSON request per line from stdin and writes exactly one JSON
response per line to stdout. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		c, err := a.controller(a.settings.Seed)
		if err != nil {
			return err
		}
		logging.Info("serving on stdio", logging.Fields{"space": c.Space()})
		return protocol.NewServer(protocol.NewHandler(c), os.Stdin, os.Stdout).Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
