package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Shivam0504-hash/rcc-documentation/internal/server"
	"github.com/Shivam0504-hash/rcc-documentation/internal/watch"
)

var (
	serverPort    int
	watchSources  bool
	watchDebounce time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Builds and serves the site locally",
	Long: `The serve command performs an initial build, then serves the output
directory over HTTP. With --watch it also watches the docs and static
directories and the sidebar file, rebuilding the site on changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		srv := server.New(cfg.OutputDir, logger)

		rebuild := func(ctx context.Context) error {
			res, err := runBuild(ctx, cfg)
			if res != nil {
				srv.Metrics().ObserveBuild(res.Pages, len(res.BrokenLinks), res.Duration, err)
			} else {
				srv.Metrics().ObserveBuild(0, 0, 0, err)
			}
			return err
		}

		logger.Info("performing initial build")
		if err := rebuild(cmd.Context()); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		if watchSources {
			w := watch.New([]string{cfg.DocsDir, cfg.StaticDir, cfg.SidebarFile}, watchDebounce, rebuild, logger)
			g.Go(func() error {
				return w.Run(ctx)
			})
		}
		g.Go(func() error {
			return srv.Run(ctx, fmt.Sprintf(":%d", cfg.Port))
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 3000, "Port to serve the site on")
	serveCmd.Flags().BoolVarP(&watchSources, "watch", "w", false, "Rebuild the site when sources change")
	serveCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before a rebuild")
	rootCmd.AddCommand(serveCmd)
}
