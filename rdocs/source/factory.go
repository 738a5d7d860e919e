package source

import (
	"context"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/config"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/retry"

	"github.com/rs/zerolog"
)

// FromConfig builds the record source selected by cfg.Source.Type. With
// cfg.Source.Fallback set, remote and database sources fall back to the
// placeholder generator.
func FromConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (RecordSource, error) {
	src, err := build(ctx, cfg, cfg.Source.Type, logger)
	if err != nil {
		if !cfg.Source.Fallback {
			return nil, err
		}
		logger.Warn().Err(err).Str("source", cfg.Source.Type).Msg("record source could not be built, using generator")
		return generatorFromConfig(cfg), nil
	}

	switch cfg.Source.Type {
	case config.SourceGenerator, config.SourceNone:
		return src, nil
	}
	if cfg.Source.Fallback {
		return NewFallback(src, generatorFromConfig(cfg), logger), nil
	}
	return src, nil
}

func build(ctx context.Context, cfg *config.Config, kind string, logger zerolog.Logger) (RecordSource, error) {
	switch kind {
	case config.SourceGenerator:
		return generatorFromConfig(cfg), nil
	case config.SourceNone:
		return Static(nil), nil
	case config.SourceSearch:
		s := cfg.Source.Search
		rc := retry.DefaultConfig()
		if s.MaxAttempts > 0 {
			rc.MaxAttempts = s.MaxAttempts
		}
		return NewSearchSource(SearchConfig{
			SiteURL:   s.SiteURL,
			QueryText: s.QueryText,
			RowLimit:  s.RowLimit,
			Timeout:   time.Duration(s.TimeoutSeconds) * time.Second,
			Retry:     rc,
		}, nil, logger.With().Str("source", "search").Logger())
	case config.SourceLibSQL:
		d := cfg.Source.Database
		sqlSrc, err := OpenSQLSource(DatabaseConfig{DSN: d.DSN, AuthToken: d.AuthToken, Limit: d.Limit},
			logger.With().Str("source", "libsql").Logger())
		if err != nil {
			return nil, err
		}
		if err := sqlSrc.EnsureSchema(ctx); err != nil {
			sqlSrc.Close()
			return nil, err
		}
		return sqlSrc, nil
	case config.SourceMerge:
		var parts []RecordSource
		for _, name := range cfg.Source.Merge {
			if name == config.SourceMerge {
				return nil, fmt.Errorf("merge source cannot contain itself")
			}
			part, err := build(ctx, cfg, name, logger)
			if err != nil {
				logger.Warn().Err(err).Str("source", name).Msg("skipping merge member")
				continue
			}
			parts = append(parts, part)
		}
		if len(parts) == 0 {
			return nil, Unavailable(fmt.Errorf("no usable merge members in %v", cfg.Source.Merge))
		}
		return NewMerge(logger, parts...), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", kind)
	}
}

func generatorFromConfig(cfg *config.Config) *Generator {
	gc := DefaultGeneratorConfig()
	gc.Count = cfg.Generator.Count
	gc.Seed = cfg.Generator.Seed
	if cfg.Generator.Link != "" {
		gc.Link = cfg.Generator.Link
	}
	return NewGenerator(gc)
}
