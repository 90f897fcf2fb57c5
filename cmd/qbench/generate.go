package main

import (
	"errors"
	"fmt"

	"qbench/internal/config"
	"qbench/internal/generator"
	"qbench/internal/model"
	"qbench/internal/prompt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newGenerateCmd создает команду generate
func newGenerateCmd(log *zap.Logger) *cobra.Command {
	var (
		configPath     string
		siteDir        string
		templatePath   string
		skipNavigation bool
		interactive    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Validate a leaderboard config and generate its page, datastore entry and navigation links",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if siteDir == "" {
				siteDir = cfg.SiteDir
			}
			if templatePath == "" {
				templatePath = cfg.TemplatePath
			}

			var leaderboard *model.LeaderboardConfig
			if interactive {
				leaderboard, err = prompt.Run()
			} else {
				if configPath == "" {
					return fmt.Errorf("either --config or --interactive is required")
				}
				leaderboard, err = model.LoadConfigFile(configPath)
			}
			if err != nil {
				return err
			}

			pipeline := generator.New(generator.Options{
				SiteDir:        siteDir,
				TemplatePath:   templatePath,
				SkipNavigation: skipNavigation,
			}, log)

			outcome, err := pipeline.Run(leaderboard)
			if err != nil {
				var validationErrors model.ValidationErrors
				if errors.As(err, &validationErrors) {
					fmt.Printf("Configuration is invalid (%d issue(s)):\n", len(validationErrors))
					for _, issue := range validationErrors {
						fmt.Printf("  - %s: %s\n", issue.Field, issue.Message)
					}
					return fmt.Errorf("validation failed")
				}
				return err
			}

			fmt.Printf("Generated %s\n", outcome.Page.OutputPath)
			fmt.Printf("Datastore updated: %s\n", outcome.DatastorePath)
			if outcome.Navigation != nil {
				fmt.Printf("Navigation updated in %d file(s)\n", len(outcome.Navigation.Updated))
			}
			for _, warning := range outcome.Warnings {
				fmt.Printf("Warning: %s\n", warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the leaderboard config (JSON or YAML)")
	cmd.Flags().StringVar(&siteDir, "site", "", "site directory (default from SITE_DIR)")
	cmd.Flags().StringVar(&templatePath, "template", "", "override the embedded page template")
	cmd.Flags().BoolVar(&skipNavigation, "skip-navigation", false, "do not rewrite navigation in existing pages")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "build the config with interactive prompts")

	return cmd
}
