package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "List the registered reward functions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		for _, n := range a.rewards.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rewardsCmd)
}
