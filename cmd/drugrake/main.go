package main

import (
	"fmt"
	"os"

	"github.com/nishad/drugrake/internal/config"
	"github.com/nishad/drugrake/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version info
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// Global flags
var (
	noColor    bool
	quiet      bool
	verbose    bool
	debug      bool
	configPath string
	sourceFlag string
	logLevel   string
	logFormat  string
)

// Loaded once per invocation by the root command's PersistentPreRunE
var (
	cfg    *config.Config
	logger *zap.Logger
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "drugrake",
	Short: "DrugBank XML to relational tables",
	Long: `drugrake loads a DrugBank XML export and projects it into relational
tables: drugs, synonyms, products, pathways, pathway-drug links, targets,
groups, drug interactions and target actions.

On top of the tables it answers aggregate queries, enriches drug targets
with UniProt disease annotations, exports to SQLite, builds a full-text
index and serves pathway counts over HTTP.`,
	Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Example: `  # Show the drugs table
  drugrake tables drugs --source drugbank_partial.xml

  # Aggregate statistics
  drugrake stats

  # Diseases linked to a drug's targets
  drugrake diseases DB00001

  # Start the pathway lookup server
  drugrake serve --port 8080 --watch`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default: DRUGRAKE_CONFIG, ./drugrake.yaml, XDG config dir)")
	rootCmd.PersistentFlags().StringVarP(&sourceFlag, "source", "s", "", "DrugBank XML document (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json|console)")

	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pathwaysCmd)
	rootCmd.AddCommand(diseasesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads configuration and builds the logger. Flags win over the
// config file and environment.
func setup(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		configPath = config.GetConfigPath()
	}

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if sourceFlag != "" {
		cfg.Source = sourceFlag
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if debug {
		cfg.Logging.Level = "debug"
	} else if quiet && logLevel == "" {
		cfg.Logging.Level = "error"
	}

	logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}
