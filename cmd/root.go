package cmd

import (
	"fmt"

	"github.com/arcanaland/scrydeck/internal/config"
	"github.com/arcanaland/scrydeck/internal/logging"
	"github.com/arcanaland/scrydeck/internal/scryfall"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel  string
	logFormat string
	apiURL    string

	cfg    *config.Config
	logger = logging.NewDefaultLogger()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "scrydeck",
	Short: "Convert decklists into Tabletop Simulator decks",
	Long: `Scrydeck is a command-line tool that turns plain-text Magic: The Gathering decklists
into Tabletop Simulator saved objects, using card images from Scryfall.

Decklists follow the usual export format:
  4 Lightning Bolt (M10) 146
  2 Opt

  SIDEBOARD:
  2 Negate (M20) 69`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.NewLogger(logging.Config{Level: logLevel, Format: logFormat})
		if err != nil {
			return fmt.Errorf("error creating logger: %w", err)
		}

		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		logger.Debug("loaded config", zap.String("path", config.GetConfigFilePath()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
	RootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Scryfall API base URL (overrides api_base_url from config)")

	RootCmd.AddCommand(validateCmd)
}

// newClient builds a Scryfall client from the loaded config and global flags
func newClient() *scryfall.Client {
	baseURL := cfg.APIBaseURL
	if apiURL != "" {
		baseURL = apiURL
	}
	return scryfall.NewClient(
		scryfall.WithBaseURL(baseURL),
		scryfall.WithTimeout(cfg.Timeout()),
		scryfall.WithLogger(logger),
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
