package commands

import (
	"context"

	"github.com/pitwall/race-strategy-rl/race"
	"github.com/pitwall/race-strategy-rl/rl"
	"github.com/spf13/cobra"
)

// ExplorationComparison trains one agent per exploration mode on identical
// environments and plots the learning curves side by side.
func ExplorationComparison(episodes int, saveDir string, parallel bool, seed uint64, ctx context.Context) error {
	c := rl.NewComparison(parallel)
	c.AddAnalysis(rl.RewardAnalyzer(), rl.LinePlotter(saveDir, "rewards.png", "Episode reward"))
	c.AddAnalysis(rl.BestTimeAnalyzer(), rl.LinePlotter(saveDir, "best_times.png", "Best race time (s)"))
	c.AddAnalysis(rl.PitCountAnalyzer(), rl.LinePlotter(saveDir, "pit_stops.png", "Pit stops"))

	modes := []rl.ExplorationMode{rl.ExploreEpsilonGreedy, rl.ExploreSoftmax, rl.ExploreRandom}
	for i, mode := range modes {
		runSeed := seed
		if runSeed != 0 {
			runSeed += uint64(i)
		}
		agentConfig := rl.DefaultAgentConfig()
		agentConfig.Mode = mode
		agentConfig.Seed = runSeed
		c.AddExperiment(rl.NewExperiment(
			string(mode),
			agentConfig,
			&rl.TrainerConfig{Episodes: episodes, Seed: runSeed},
			race.NewEnvironment(&race.Config{Seed: runSeed}),
		))
	}
	return c.Run(ctx)
}

func ExplorationCommand() *cobra.Command {
	var parallel bool

	cmd := &cobra.Command{
		Use: "compare",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExplorationComparison(episodes, saveDir, parallel, seed, context.Background())
		},
	}
	cmd.PersistentFlags().BoolVar(&parallel, "parallel", false, "Run the experiments concurrently")
	return cmd
}
