package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"qbench/internal/app"
	"qbench/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newChatCmd создает команду chat
func newChatCmd(log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Run the Telegram assistant that builds leaderboard configs conversationally",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// Обработка сигналов
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigChan
				log.Info("Shutdown signal received")
				cancel()
			}()

			application, err := app.NewAssistantApp(cfg, log)
			if err != nil {
				return err
			}

			if err := application.Start(ctx); err != nil {
				return err
			}

			log.Info("Assistant stopped successfully")
			return nil
		},
	}
}
