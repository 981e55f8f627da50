// Package factory turns configuration into wired engine components.
package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peermall/peerstore/internal/config"
	"github.com/peermall/peerstore/internal/medium"
	"github.com/peermall/peerstore/internal/medium/mem"
	"github.com/peermall/peerstore/internal/medium/rediskv"
	"github.com/peermall/peerstore/internal/medium/sqlitekv"
)

// NewMedium opens the configured medium driver and returns one tab handle
// plus a cleanup function that releases the driver's resources.
func NewMedium(ctx context.Context, cfg *config.Config, log zerolog.Logger) (medium.Medium, func() error, error) {
	switch cfg.MediumDriver {
	case "mem":
		var opts []mem.Option
		if cfg.QuotaBytes > 0 {
			opts = append(opts, mem.WithQuota(cfg.QuotaBytes))
		}
		return mem.NewHub(opts...).Open(), func() error { return nil }, nil

	case "sqlite":
		db, err := sqlitekv.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("path", cfg.SQLitePath).Msg("sqlite medium opened")
		return db.Open(), db.Close, nil

	case "redis":
		client, err := rediskv.New(ctx, rediskv.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("addr", cfg.RedisAddr).Msg("redis medium connected")
		return client.Open(), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown MEDIUM_DRIVER: %s", cfg.MediumDriver)
	}
}
