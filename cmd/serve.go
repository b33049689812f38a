package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/semi-technologies/weaviate-io/handlers"
	"github.com/semi-technologies/weaviate-io/logging"
	"github.com/semi-technologies/weaviate-io/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the development server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		router, err := loadRouter()
		if err != nil {
			return err
		}
		h := handlers.NewReloadable(router)

		if v.GetBool("watch") {
			dirs := []string{siteRoot()}
			if file := v.GetString("config"); file != "" {
				dirs = append(dirs, filepath.Dir(file))
			}
			go func() {
				err := watcher.Watch(ctx, dirs, watcher.DefaultDebounce, func() { reload(h) })
				if err != nil {
					logger := logging.WithComponent("serve")
					logger.Error().Err(err).Msg("watcher stopped")
				}
			}()
		}

		return listen(ctx, fmt.Sprintf(":%d", v.GetInt("port")), h)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 9010, "Port to run the server on")
	serveCmd.Flags().BoolP("watch", "w", false, "Rebuild when files under the site root change")
}

func loadRouter() (http.Handler, error) {
	cfg, err := loadSiteConfig()
	if err != nil {
		return nil, err
	}
	site, err := handlers.NewSite(cfg, siteRoot(), time.Now().Year())
	if err != nil {
		return nil, err
	}
	return handlers.SetupRouter(site)
}

// reload rebuilds the site and swaps it in. A failed rebuild keeps the
// previous site.
func reload(h *handlers.Reloadable) {
	logger := logging.WithComponent("serve")
	router, err := loadRouter()
	if err != nil {
		logger.Error().Err(err).Msg("rebuild failed, serving the previous version")
		return
	}
	h.Swap(router)
	logger.Info().Msg("site rebuilt")
}

// listen serves h on addr until ctx is done.
func listen(ctx context.Context, addr string, h http.Handler) error {
	logger := logging.WithComponent("serve")
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", "http://localhost"+addr).Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.WithStack(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info().Msg("shutting down")
	return errors.WithStack(srv.Shutdown(shutdownCtx))
}
