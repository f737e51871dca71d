package main

import (
	"fmt"

	"github.com/pitwall/race-strategy-rl/commands"
)

// main entry point to training, prediction and the strategy service
func main() {
	// rootCommand defines a command line argument parser (some arguments and a subcommand to run)
	rootCommand := commands.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
