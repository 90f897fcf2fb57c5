// Package main запускает генератор сайта квантовых бенчмарков.
package main

import (
	"fmt"
	"os"

	"qbench/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	log := logger.New()
	defer func() {
		_ = log.Sync()
	}()

	root := &cobra.Command{
		Use:           "qbench",
		Short:         "Static-site generator for the quantum benchmarks website",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(log),
		newChatCmd(log),
		newCheckCmd(log),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
