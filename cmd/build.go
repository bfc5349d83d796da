package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shivam0504-hash/rcc-documentation/internal/config"
	"github.com/Shivam0504-hash/rcc-documentation/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the documentation site",
	Long: `The build command renders the homepage, turns every markdown file in the
docs directory into a page with its sidebar, copies the static directory,
checks internal links and writes the result to the output directory
(default './build/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runBuild(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d pages (%d docs) in %s\n", res.Pages, res.Docs, appConfig.OutputDir)
		return nil
	},
}

func runBuild(ctx context.Context, cfg config.Config) (*site.Result, error) {
	b, err := site.NewBuilder(cfg, logger)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx)
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
