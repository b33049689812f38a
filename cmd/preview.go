package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/semi-technologies/weaviate-io/handlers"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve a finished build from the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := outDir()
		if _, err := os.Stat(out); err != nil {
			return errors.Wrapf(err, "nothing to preview, run build first")
		}
		cfg, err := loadSiteConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return listen(ctx, fmt.Sprintf(":%d", v.GetInt("port")), handlers.NewPreviewHandler(out, cfg.BaseURL))
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntP("port", "p", 3000, "Port to run the server on")
}
