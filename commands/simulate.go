package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pitwall/race-strategy-rl/race"
	"github.com/pitwall/race-strategy-rl/rl"
	"github.com/pitwall/race-strategy-rl/util"
	"github.com/spf13/cobra"
)

// Simulate runs one race on a fixed pit script instead of a learned policy,
// pitting on the given laps with the matching compounds.
func Simulate(driver, track string, pitLaps []int, compounds []string, oracleMode string, penalty float64, seed uint64) error {
	oracle, err := oracleFor(oracleMode, penalty)
	if err != nil {
		return err
	}
	env := race.NewEnvironment(&race.Config{Oracle: oracle, Seed: seed})
	env.Reset(driver, track)

	script := make(map[int]rl.Action, len(pitLaps))
	for i, lap := range pitLaps {
		compound := race.Medium
		if i < len(compounds) {
			compound = race.ParseCompound(compounds[i])
		}
		script[lap] = pitAction(compound)
	}

	done := false
	for !done {
		action := rl.Stay
		if scripted, ok := script[env.Telemetry().Lap]; ok {
			action = scripted
		}
		_, _, done = env.Step(action)
	}

	summary := env.Summary()
	fmt.Printf("Simulated %s at %s: %.1fs, %d stops, finishing P%d\n",
		driver, track, summary.TotalTime, summary.PitStops, summary.FinalPosition)
	for _, stop := range summary.PitHistory {
		fmt.Printf("  pit lap %d: %s (P%d)\n", stop.Lap, stop.Compound, stop.Position)
	}
	fmt.Println("Lap profile:")
	for _, lap := range summary.Profile {
		fmt.Printf("  lap %2d | %-6s age %2d | %6.2fs\n",
			lap.Lap, lap.Compound, lap.TireAge, lap.LapTime)
	}
	return util.WriteJSON(filepath.Join(saveDir, "simulation.json"), summary)
}

func oracleFor(mode string, penalty float64) (race.Oracle, error) {
	switch mode {
	case "", "fallback":
		return race.UntrainedOracle{}, nil
	case "curve":
		return race.CurveOracle{}, nil
	case "constant":
		return race.ConstantOracle{Penalty: penalty}, nil
	}
	return nil, fmt.Errorf("unknown oracle mode: %s", mode)
}

func pitAction(compound race.Compound) rl.Action {
	switch compound {
	case race.Soft:
		return rl.PitSoft
	case race.Hard:
		return rl.PitHard
	}
	return rl.PitMedium
}

func SimulateCommand() *cobra.Command {
	var driver string
	var track string
	var pitLaps []int
	var compounds []string
	var oracleMode string
	var penalty float64

	cmd := &cobra.Command{
		Use: "simulate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Simulate(driver, track, pitLaps, compounds, oracleMode, penalty, seed)
		},
	}
	cmd.PersistentFlags().StringVarP(&driver, "driver", "d", "HAM", "Driver to simulate")
	cmd.PersistentFlags().StringVarP(&track, "track", "t", "Silverstone", "Track to simulate")
	cmd.PersistentFlags().IntSliceVar(&pitLaps, "pit-laps", []int{22, 44}, "Laps to pit on")
	cmd.PersistentFlags().StringSliceVar(&compounds, "compounds", []string{"hard", "medium"}, "Compound fitted at each stop")
	cmd.PersistentFlags().StringVar(&oracleMode, "oracle", "fallback", "Degradation oracle: fallback, curve or constant")
	cmd.PersistentFlags().Float64Var(&penalty, "penalty", 1.0, "Per-lap penalty for the constant oracle")
	return cmd
}
