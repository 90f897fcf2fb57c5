package main

import (
	"fmt"

	"qbench/internal/config"
	"qbench/internal/sitecheck"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newCheckCmd создает команду check
func newCheckCmd(log *zap.Logger) *cobra.Command {
	var siteDir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Crawl the generated site and report broken internal links",
		RunE: func(cmd *cobra.Command, args []string) error {
			if siteDir == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				siteDir = cfg.SiteDir
			}

			report, err := sitecheck.New(siteDir, log).Run()
			if err != nil {
				return err
			}

			fmt.Printf("Visited %d page(s)\n", report.Visited)
			if len(report.Broken) == 0 {
				fmt.Println("No broken links found")
				return nil
			}

			for _, broken := range report.Broken {
				fmt.Printf("Broken: %s (status %d) %s\n", broken.URL, broken.Status, broken.Reason)
			}
			return fmt.Errorf("%d broken link(s) found", len(report.Broken))
		},
	}

	cmd.Flags().StringVar(&siteDir, "site", "", "site directory (default from SITE_DIR)")
	return cmd
}
