package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bossgym/internal/action"
	"bossgym/internal/util"
)

var spaceCmd = &cobra.Command{
	Use:   "space",
	Short: "Print the action and observation space for the configured fight",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		c, err := a.controller(a.settings.Seed)
		if err != nil {
			return err
		}
		env := a.settings.Env
		legacy := make([]string, env.LegacyActionCount())
		for i := range legacy {
			legacy[i] = action.LegacyName(env, i)
		}
		out := map[string]any{
			"space":          c.Space(),
			"legacy_actions": legacy,
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(util.MarshalPretty(out)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(spaceCmd)
}
