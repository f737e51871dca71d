package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pitwall/race-strategy-rl/scenario"
	"github.com/pitwall/race-strategy-rl/util"
	"github.com/spf13/cobra"
)

func Scenarios(track string, raceNumber, perScenario int, saveDir string, seed uint64, ctx context.Context) error {
	trainer := scenario.NewTrainer(&scenario.TrainerConfig{
		Track:               track,
		RaceNumber:          raceNumber,
		EpisodesPerScenario: perScenario,
		Seed:                seed,
	})
	agent, report, err := trainer.Run(ctx)
	if err != nil {
		return err
	}

	modelPath := filepath.Join(saveDir, "scenario-agent.json")
	if err := agent.Save(modelPath); err != nil {
		return err
	}
	reportPath := filepath.Join(saveDir, "scenario_report.json")
	if err := util.WriteJSON(reportPath, report); err != nil {
		return err
	}

	fmt.Printf("Trained %d scenarios for %s, %d episodes total\n",
		len(report.Scenarios), report.Track, report.TotalEpisodes)
	fmt.Printf("Report saved to %s\n", reportPath)
	return nil
}

func ScenariosCommand() *cobra.Command {
	var track string
	var raceNumber int
	var perScenario int

	cmd := &cobra.Command{
		Use: "scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Scenarios(track, raceNumber, perScenario, saveDir, seed, context.Background())
		},
	}
	cmd.PersistentFlags().StringVarP(&track, "track", "t", "Silverstone", "Track to build scenarios for")
	cmd.PersistentFlags().IntVarP(&raceNumber, "race-number", "r", 12, "Race number within the season")
	cmd.PersistentFlags().IntVar(&perScenario, "per-scenario", 50, "Episodes per scenario")
	return cmd
}
