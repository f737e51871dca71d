package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pitwall/race-strategy-rl/server"
	"github.com/spf13/cobra"
)

func Serve(addr, redisAddr, model, modelsDir string, seed uint64) error {
	var store server.ArtifactStore
	if redisAddr != "" {
		store = server.NewRedisStore(redisAddr)
	} else {
		store = server.NewFileStore(modelsDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.New(&server.Config{
		Addr:  addr,
		Model: model,
		Store: store,
		Seed:  seed,
	})
	return s.Run(ctx)
}

func ServeCommand() *cobra.Command {
	var addr string
	var redisAddr string
	var model string
	var modelsDir string

	cmd := &cobra.Command{
		Use: "serve",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Serve(addr, redisAddr, model, modelsDir, seed)
		},
	}
	cmd.PersistentFlags().StringVar(&addr, "addr", "localhost:8080", "Address to listen on")
	cmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address for shared model storage, empty keeps file storage")
	cmd.PersistentFlags().StringVar(&model, "model", "pit-strategy", "Name of the model artifact to restore and save")
	cmd.PersistentFlags().StringVar(&modelsDir, "models-dir", "models", "Directory for file-backed model storage")
	return cmd
}
