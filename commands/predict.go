package commands

import (
	"fmt"

	"github.com/pitwall/race-strategy-rl/race"
	"github.com/pitwall/race-strategy-rl/rl"
	"github.com/spf13/cobra"
)

func Predict(modelPath, driver, track string, position int, seed uint64) error {
	agent := rl.NewAgent(nil)
	if err := agent.Load(modelPath); err != nil {
		return err
	}

	cfg := &race.Config{Oracle: race.CurveOracle{}, Seed: seed}
	if position > 0 {
		cfg.StartMin = position
		cfg.StartMax = position
	}
	env := race.NewEnvironment(cfg)

	schedule, summary, err := agent.PredictStrategy(env, driver, track)
	if err != nil {
		return err
	}

	fmt.Printf("Strategy for %s at %s:\n", driver, track)
	if len(schedule) == 0 {
		fmt.Println("  no planned stops")
	}
	for _, stop := range schedule {
		fmt.Printf("  lap %d: pit for %s (P%d, tire age %d)\n",
			stop.Lap, stop.Compound, stop.Position, stop.TireAge)
	}
	fmt.Printf("Total %.1fs over %d laps, %d stops, finishing P%d\n",
		summary.TotalTime, summary.LapsCompleted, summary.PitStops, summary.FinalPosition)
	return nil
}

func PredictCommand() *cobra.Command {
	var modelPath string
	var driver string
	var track string
	var position int

	cmd := &cobra.Command{
		Use: "predict",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Predict(modelPath, driver, track, position, seed)
		},
	}
	cmd.PersistentFlags().StringVarP(&modelPath, "model", "m", "results/pit-strategy.json", "Path to a saved agent artifact")
	cmd.PersistentFlags().StringVarP(&driver, "driver", "d", "HAM", "Driver to plan for")
	cmd.PersistentFlags().StringVarP(&track, "track", "t", "Silverstone", "Track to plan for")
	cmd.PersistentFlags().IntVarP(&position, "position", "p", 0, "Starting position, 0 draws randomly")
	return cmd
}
