package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/semi-technologies/weaviate-io/handlers"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the site config, navigation and content without writing output",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSiteConfig()
		if err != nil {
			return err
		}
		site, err := handlers.NewSite(cfg, siteRoot(), time.Now().Year())
		if err != nil {
			return err
		}
		if err := checkLinks(site.InternalLinks(), site.PageRoutes(), cfg.OnBrokenLinks); err != nil {
			return err
		}
		if _, err := handlers.SetupRouter(site); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d routes ok\n", cfg.Title, len(site.PageRoutes()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
