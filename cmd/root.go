package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/semi-technologies/weaviate-io/config"
	"github.com/semi-technologies/weaviate-io/logging"
)

const defaultConfigName = "site.yaml"

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "weaviate-io",
	Short: "Weaviate - the website of the Weaviate vector search engine",
	Long: `weaviate-io builds weaviate.io from its docs, blog and pages. It can serve
the site while you edit it, and preview or validate a build.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("root", "website", "site directory with docs, blog, src and static")
	flags.String("config", "", "site config file (default is <root>/site.yaml, or the built-in config)")
	flags.String("out", "public", "output directory")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "log JSON lines instead of console output")
}

func initializeConfig(cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.WithStack(err)
	}
	v.SetEnvPrefix("WEAVIATE_IO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	logging.Configure(logging.Config{
		Level: v.GetString("log-level"),
		JSON:  v.GetBool("log-json"),
	})
	return nil
}

// siteRoot is the directory content is loaded from.
func siteRoot() string {
	return v.GetString("root")
}

func outDir() string {
	return v.GetString("out")
}

// loadSiteConfig reads --config, then <root>/site.yaml, and falls back to the
// built-in weaviate.io config.
func loadSiteConfig() (config.SiteConfig, error) {
	logger := logging.WithComponent("cmd")

	file := v.GetString("config")
	if file == "" {
		candidate := filepath.Join(siteRoot(), defaultConfigName)
		if _, err := os.Stat(candidate); err == nil {
			file = candidate
		}
	}

	if file == "" {
		logger.Info().Msg("no site config found, using the built-in weaviate.io config")
		cfg := config.Weaviate()
		return cfg, config.Validate(cfg)
	}

	cfg, err := config.Load(file)
	if err != nil {
		return config.SiteConfig{}, err
	}
	logger.Info().Str("file", file).Msg("using site config")
	return cfg, nil
}
