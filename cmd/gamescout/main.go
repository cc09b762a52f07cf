// gamescout detects installed games across Linux game launchers and prints
// what it finds. It only ever reads launcher catalogues; launching a game is
// left to whatever consumes the reported argv.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gamescout/internal/config"
	"gamescout/internal/detect"
	"gamescout/internal/launchers"
	"gamescout/internal/watch"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gamescout",
	Short: "Detect installed games across Linux game launchers",
	Long: `gamescout scans the on-disk catalogues of Steam, Heroic, Lutris, Bottles,
itch and the Minecraft launchers, both native and flatpak installs, and
reports every installed game with its artwork and launch command.

Run without arguments to print the detected games as a table.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return listCmd.RunE(cmd, args)
	},
}

// setup resolves directories and config, then builds the detector.
func setup() (*detect.Detector, *config.Config, error) {
	dirs, err := detect.DefaultDirs()
	if err != nil {
		return nil, nil, err
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath(dirs)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	disabled, err := cfg.Disabled()
	if err != nil {
		return nil, nil, err
	}

	d := launchers.NewDetector(dirs, launchers.Options{
		Log:            logger,
		SteamLibraries: cfg.Steam.ExtraLibraries,
		Disabled:       disabled,
	})
	return d, cfg, nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print detected games as a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := setup()
		if err != nil {
			return err
		}
		fmt.Print(renderGameTable(d.GamesBySource()))
		return nil
	},
}

var jsonSource string

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Print detected games as JSON",
	Long: `Prints every detected game grouped by source as a JSON array. With
--source, prints the flat game list of that single source instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := setup()
		if err != nil {
			return err
		}

		var payload any
		if jsonSource != "" {
			src, err := detect.ParseSource(jsonSource)
			if err != nil {
				return err
			}
			games, ok := d.GamesFor(src)
			if !ok {
				return fmt.Errorf("source %s not detected", src.Slug())
			}
			payload = games
		} else {
			payload = d.GamesBySource()
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List supported sources and whether they are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := setup()
		if err != nil {
			return err
		}
		fmt.Print(renderSourceTable(d.Launchers()))
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-print the game list whenever a launcher catalogue changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, cfg, err := setup()
		if err != nil {
			return err
		}

		debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
		w, err := watch.New(d.WatchRoots(), debounce, logger)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Print(renderGameTable(d.GamesBySource()))
		return w.Run(ctx, func() {
			fmt.Print(renderGameTable(d.GamesBySource()))
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gamescout/config.yaml)")
	jsonCmd.Flags().StringVar(&jsonSource, "source", "", "limit output to one source slug, e.g. steam or heroic-gog")

	rootCmd.AddCommand(listCmd, jsonCmd, sourcesCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
