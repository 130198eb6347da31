package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/notedeck/internal/config"
	"github.com/marcus/notedeck/internal/slot"
	"github.com/marcus/notedeck/internal/styles"
)

var (
	configPath string
	debugFlag  bool
	ephemeral  bool

	cfg *config.Config
)

// rootCmd runs the TUI when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "notedeck",
	Short: "Sticky notes and a calendar in your terminal",
	Long: `notedeck keeps a board of colored sticky notes you can search,
reorder by dragging, and edit in place. Notes persist to a single slot
(a JSON file, bbolt bucket, or SQLite row) between runs.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel(),
		})))

		loaded, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if ephemeral {
			loaded.Notes.Backend = slot.BackendMemory
			loaded.Notes.Watch = false
		}
		cfg = loaded
		styles.ApplyThemeWithOverrides(cfg.UI.Theme.Name, cfg.UI.Theme.Overrides)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (.json, .yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep notes in memory only")
}

func logLevel() slog.Level {
	if debugFlag {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
