package commands

import "github.com/spf13/cobra"

var (
	episodes   int
	saveDir    string
	seed       uint64
	configPath string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 500, "Number of training episodes to run")
	rootCommand.PersistentFlags().StringVarP(&saveDir, "save", "s", "results", "Save result data in the specified folder")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed, 0 seeds from the clock")
	rootCommand.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML training config")
	// adding the subcommands here
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(PredictCommand())
	rootCommand.AddCommand(SimulateCommand())
	rootCommand.AddCommand(ExplorationCommand())
	rootCommand.AddCommand(ScenariosCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}
