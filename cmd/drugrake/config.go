package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nishad/drugrake/internal/config"
	"github.com/nishad/drugrake/internal/paths"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage drugrake configuration",
	Long:  `Manage drugrake configuration including paths, settings, and preferences.`,
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show all active paths",
	Long: `Display all paths used by drugrake including configuration, data, cache,
and state directories. Also shows any environment variable overrides.`,
	RunE: runConfigPaths,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective configuration: defaults, then the config file,
then .env and DRUGRAKE_* environment overrides.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration",
	Long: `Create a default configuration file in the appropriate location.

This will create a config file at ~/.config/drugrake/config.yaml with
sensible defaults. If a config file already exists, use --force to
overwrite it.`,
	Example: `  # Create default config
  drugrake config init

  # Force overwrite existing config
  drugrake config init --force`,
	RunE: runConfigInit,
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite existing configuration")

	configCmd.AddCommand(configPathsCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigPaths(cmd *cobra.Command, args []string) error {
	p := paths.GetPaths()

	printInfo("drugrake Paths")
	printRule()

	fmt.Printf("%s\n", colorize(colorBold, "Base Directories:"))
	fmt.Printf("  Config:   %s\n", colorize(colorCyan, p.ConfigDir))
	fmt.Printf("  Data:     %s\n", colorize(colorCyan, p.DataDir))
	fmt.Printf("  Cache:    %s\n", colorize(colorCyan, p.CacheDir))
	fmt.Printf("  State:    %s\n", colorize(colorCyan, p.StateDir))

	fmt.Println()
	fmt.Printf("%s\n", colorize(colorBold, "Specific Paths:"))
	fmt.Printf("  Source:    %s\n", colorize(colorCyan, cfg.Source))
	fmt.Printf("  Database:  %s\n", colorize(colorCyan, cfg.Database.Path))
	fmt.Printf("  Index:     %s\n", colorize(colorCyan, cfg.Search.IndexPath))

	envVars := []struct {
		name string
		desc string
	}{
		{"DRUGRAKE_CONFIG", "Override config file"},
		{"DRUGRAKE_CONFIG_HOME", "Override config directory"},
		{"DRUGRAKE_DATA_HOME", "Override data directory"},
		{"DRUGRAKE_CACHE_HOME", "Override cache directory"},
		{"DRUGRAKE_STATE_HOME", "Override state directory"},
		{"DRUGRAKE_SOURCE", "Override source document"},
		{"DRUGRAKE_DB_PATH", "Override database path"},
		{"DRUGRAKE_INDEX_PATH", "Override index path"},
	}

	hasEnv := false
	for _, env := range envVars {
		if os.Getenv(env.name) != "" {
			hasEnv = true
			break
		}
	}

	if hasEnv {
		fmt.Println()
		fmt.Printf("%s\n", colorize(colorBold, "Environment Variables:"))
		for _, env := range envVars {
			if val := os.Getenv(env.name); val != "" {
				fmt.Printf("  %s = %s\n",
					colorize(colorYellow, env.name),
					colorize(colorCyan, val))
				if verbose {
					fmt.Printf("    %s\n", colorize(colorGray, env.desc))
				}
			}
		}
	}

	fmt.Println()
	fmt.Printf("%s\n", colorize(colorBold, "Path Status:"))

	pathChecks := []struct {
		name string
		path string
	}{
		{"Config Dir", p.ConfigDir},
		{"Data Dir", p.DataDir},
		{"Source", cfg.Source},
		{"Database", cfg.Database.Path},
		{"Index", cfg.Search.IndexPath},
	}

	for _, check := range pathChecks {
		if _, err := os.Stat(check.path); err == nil {
			fmt.Printf("  %-12s %s\n", check.name+":", colorize(colorGreen, "✓ exists"))
		} else {
			fmt.Printf("  %-12s %s\n", check.name+":", colorize(colorGray, "✗ not found"))
		}
	}

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	printInfo("Configuration")
	printRule()

	fmt.Printf("%s %s\n", colorize(colorBold, "Config File:"), configPath)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Println(colorize(colorYellow, "  (using defaults - no config file found)"))
	}
	fmt.Println()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			// Top-level keys
			fmt.Println(colorize(colorBold, line))
		} else if strings.Contains(line, ": ") {
			parts := strings.SplitN(line, ": ", 2)
			indent := len(line) - len(strings.TrimLeft(line, " "))
			fmt.Printf("%s%s: %s\n",
				strings.Repeat(" ", indent),
				colorize(colorCyan, strings.TrimSpace(parts[0])),
				colorize(colorGreen, parts[1]))
		} else {
			fmt.Println(line)
		}
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join(paths.GetPaths().ConfigDir, "config.yaml")

	if _, err := os.Stat(path); err == nil && !configForce {
		printWarning("Configuration already exists at %s", path)
		fmt.Println("Use --force to overwrite")
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	printSuccess("Configuration created at %s", path)

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	configPath, cfg = path, loaded
	fmt.Println()
	return runConfigShow(cmd, args)
}
