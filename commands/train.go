package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pitwall/race-strategy-rl/race"
	"github.com/pitwall/race-strategy-rl/rl"
	"github.com/pitwall/race-strategy-rl/util"
	"github.com/spf13/cobra"
)

func Train(cfg *TrainingConfig, saveDir string, seed uint64, ctx context.Context) error {
	agent := rl.NewAgent(cfg.AgentConfig(seed))
	env := race.NewEnvironment(&race.Config{Seed: seed})
	trainer := rl.NewTrainer(&rl.TrainerConfig{
		Episodes: cfg.Episodes,
		Drivers:  cfg.Drivers,
		Tracks:   cfg.Tracks,
		Seed:     seed,
	}, agent, env)

	best, err := trainer.Run(ctx)
	if err != nil {
		return err
	}

	modelPath := filepath.Join(saveDir, "pit-strategy.json")
	if err := agent.Save(modelPath); err != nil {
		return err
	}
	fmt.Printf("Trained %d episodes, best race %.1fs with %d stops\n",
		agent.EpisodeCount(), best.TotalTime, best.PitStops)
	fmt.Printf("Model saved to %s\n", modelPath)

	run := []string{"train"}
	rl.LinePlotter(saveDir, "rewards.png", "Episode reward")(run, []rl.DataSet{agent.TrainingRewards()})
	rl.LinePlotter(saveDir, "race_times.png", "Race time (s)")(run, []rl.DataSet{agent.TrainingTimes()})

	if err := util.WriteJSON(filepath.Join(saveDir, "best_race.json"), best); err != nil {
		return err
	}
	return dumpConfig(cfg)
}

func TrainCommand() *cobra.Command {
	var drivers []string
	var tracks []string

	cmd := &cobra.Command{
		Use: "train",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(drivers) > 0 {
				cfg.Drivers = drivers
			}
			if len(tracks) > 0 {
				cfg.Tracks = tracks
			}
			return Train(cfg, saveDir, seed, context.Background())
		},
	}
	cmd.PersistentFlags().StringSliceVarP(&drivers, "drivers", "d", nil, "Driver pool sampled during training")
	cmd.PersistentFlags().StringSliceVarP(&tracks, "tracks", "t", nil, "Track pool sampled during training")
	return cmd
}
