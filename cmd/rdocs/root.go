package main

import (
	"context"
	"fmt"

	internal "github.com/ZanzyTHEbar/recent-documents/rdocs"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/config"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/listengine"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/ports"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/source"

	"github.com/spf13/cobra"
)

var (
	configFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   internal.DefaultAppCMDShortCut,
	Short: "rdocs - recent documents list",
	Long: `rdocs shows the recent documents list: placeholder, search or database
records that can be sorted by column, filtered by name and selected.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to a config file (default: search ./config.yaml, ~/.config/rdocs)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override log.level (debug, info, warn, error)")
}

// session is a loaded engine plus whatever must be released afterwards.
type session struct {
	cfg    *config.Config
	engine *listengine.Engine
	src    source.RecordSource
}

func (s *session) Close() error { return source.Close(s.src) }

// openSession loads config, builds the record source and fetches records once.
// A failing source is reported on surface and the session starts empty.
func openSession(ctx context.Context, surface ports.Surface) (*session, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
	logger := internal.GetLogger(cfg.Log.Level)

	src, err := source.FromConfig(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build record source: %w", err)
	}

	opts := []listengine.Option{listengine.WithLogger(logger)}
	if cfg.Engine.SortField != "" {
		opts = append(opts, listengine.WithInitialSort(cfg.Engine.SortField, cfg.Engine.SortDescending))
	}
	engine := listengine.Load(ctx, src, opts...)
	if err := engine.SourceError(); err != nil {
		surface.Error("Could not load recent documents", err)
	}

	return &session{cfg: cfg, engine: engine, src: src}, nil
}
