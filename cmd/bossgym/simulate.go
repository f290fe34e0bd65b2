package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"bossgym/internal/logging"
	"bossgym/internal/observation"
	"bossgym/internal/policy"
	"bossgym/internal/util"
)

type runResult struct {
	Termination observation.Termination
	Steps       int
	Reward      float64
	BossHPLeft  int
	PlayerHP    int
}

// runEpisode plays one full episode with a fresh controller and policy.
func runEpisode(a *app, policyName string, seed int64) (runResult, error) {
	c, err := a.controller(seed)
	if err != nil {
		return runResult{}, err
	}
	p, err := policy.New(policyName, util.New(seed))
	if err != nil {
		return runResult{}, err
	}
	res, err := c.Reset()
	if err != nil {
		return runResult{}, err
	}
	for !res.Done() {
		if res, err = c.Step(p.Act(res.Observation, res.Mask)); err != nil {
			return runResult{}, err
		}
		if c.Space().MaxSteps == 0 && res.Steps > 100000 {
			return runResult{}, fmt.Errorf("episode with seed %d never ended", seed)
		}
	}
	return runResult{
		Termination: res.Termination,
		Steps:       res.Steps,
		Reward:      c.TotalReward(),
		BossHPLeft:  res.Observation.TotalBossHP(),
		PlayerHP:    res.Observation.PlayerHP,
	}, nil
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Batch-run a baseline policy and summarise the outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("episodes")
		workers, _ := cmd.Flags().GetInt("workers")
		policyName, _ := cmd.Flags().GetString("policy")
		out, _ := cmd.Flags().GetString("out")
		if n < 1 {
			return fmt.Errorf("episodes must be at least 1, got %d", n)
		}
		if workers < 1 {
			workers = 1
		}
		if _, err := policy.New(policyName, util.New(1)); err != nil {
			return err
		}

		type stat struct {
			ByTermination map[string]int
			SumSteps      int
			SumReward     float64
			SumBossHP     int
			SumPlayerHP   int
			Failed        int
		}
		st := stat{ByTermination: map[string]int{}}
		var mu sync.Mutex
		wg := sync.WaitGroup{}
		jobs := make(chan int, n)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					seed := util.EpisodeSeed(a.settings.Seed, i)
					res, err := runEpisode(a, policyName, seed)

					mu.Lock()
					if err != nil {
						st.Failed++
						logging.Error("simulation failed", err, logging.Fields{"seed": seed})
					} else {
						st.ByTermination[res.Termination.String()]++
						st.SumSteps += res.Steps
						st.SumReward += res.Reward
						st.SumBossHP += res.BossHPLeft
						st.SumPlayerHP += res.PlayerHP
					}
					mu.Unlock()
				}
			}()
		}
		for i := 0; i < n; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()

		done := n - st.Failed
		avg := func(v float64) float64 {
			if done == 0 {
				return 0
			}
			return v / float64(done)
		}
		summary := map[string]any{
			"runs":             n,
			"failed":           st.Failed,
			"policy":           policyName,
			"reward":           a.settings.RewardFunc,
			"boss_count":       a.settings.Env.BossCount,
			"adds_per_boss":    a.settings.Env.AddsPerBoss,
			"win_rate":         avg(float64(st.ByTermination[observation.AllBossesDefeated.String()])),
			"death_rate":       avg(float64(st.ByTermination[observation.PlayerDied.String()])),
			"truncation_rate":  avg(float64(st.ByTermination[observation.Truncated.String()])),
			"avg_steps":        avg(float64(st.SumSteps)),
			"avg_reward":       avg(st.SumReward),
			"avg_boss_hp_left": avg(float64(st.SumBossHP)),
			"avg_player_hp":    avg(float64(st.SumPlayerHP)),
			"by_termination":   st.ByTermination,
		}
		body := util.MarshalPretty(summary)
		if out == "" {
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		}
		if err := os.WriteFile(out, body, 0644); err != nil {
			return err
		}
		logging.Info("batch done", logging.Fields{"runs": n, "out": out})
		return nil
	},
}

func init() {
	f := simulateCmd.Flags()
	f.IntP("episodes", "n", 100, "number of episodes")
	f.Int("workers", 8, "parallel workers")
	f.String("policy", "heuristic", "baseline policy: random or heuristic")
	f.String("out", "", "summary file; stdout when empty")
	rootCmd.AddCommand(simulateCmd)
}
