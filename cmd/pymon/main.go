// Package main is the entry point for Pymon.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samdwyer/pymon/internal/game"
	"github.com/samdwyer/pymon/internal/gamedata"
	"github.com/samdwyer/pymon/internal/telemetry"
	"github.com/samdwyer/pymon/internal/ui"
)

type flags struct {
	config   string
	seed     int64
	plain    bool
	saveFile string
}

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_PYMON_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "pymon [locations_file] [creatures_file] [items_file]",
		Short: "A text adventure about catching Pymons",
		Long: `Pymon is a text adventure. Walk your Pymon between locations,
pick up items, and challenge wild Pymons to rock-paper-scissors battles.
Win twice and the opponent joins your bench.

World files default to the built-in set. Pass up to three CSV files to
replace the locations, creatures and items.`,
		Args:         cobra.MaximumNArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}
	cmd.Flags().StringVar(&f.config, "config", os.Getenv("PYMON_CONFIG"), "YAML config file")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "use the line-oriented console")
	cmd.Flags().StringVar(&f.saveFile, "save-file", "", "default save file name")
	return cmd
}

func run(cmd *cobra.Command, args []string, f flags) error {
	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	cfg, err := game.LoadConfig(f.config)
	if err != nil {
		return err
	}
	applyOverrides(cmd, cfg, args, f)

	logger, err := cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	defs, err := gamedata.Load(cfg.Files())
	if err != nil {
		logger.Error("world files rejected", zap.Error(err))
		return err
	}

	if cfg.Plain {
		console := ui.NewStream(os.Stdin, os.Stdout, cfg.Accent)
		return play(ctx, cfg, defs, console, logger)
	}

	accent, err := gamedata.ParseHexColor(cfg.Accent)
	if err != nil {
		return err
	}
	term, err := ui.NewTerminal(accent)
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer term.Close()

	if err := play(ctx, cfg, defs, term, logger); err != nil {
		return err
	}
	term.Finish()
	return nil
}

func play(ctx context.Context, cfg *game.Config, defs *gamedata.Defs, console game.Console, logger *zap.Logger) error {
	g, err := game.New(ctx, cfg, defs, console, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}
	logger.Info("session started", zap.String("pymon", g.Active().Nickname()))
	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	logger.Info("session ended", zap.Stringer("state", g.State()))
	return nil
}

// applyOverrides lays positional args and explicitly set flags over the
// loaded config.
func applyOverrides(cmd *cobra.Command, cfg *game.Config, args []string, f flags) {
	files := []*string{&cfg.LocationsFile, &cfg.CreaturesFile, &cfg.ItemsFile}
	for i, a := range args {
		*files[i] = a
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
	if cmd.Flags().Changed("plain") {
		cfg.Plain = f.plain
	}
	if f.saveFile != "" {
		cfg.SaveFile = f.saveFile
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_PYMON_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_PYMON_DATASET")
	if dataset == "" {
		dataset = "pymon" // default dataset name
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	// The .env file may have an unexpanded variable reference that doesn't
	// work, so the header is constructed here
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
