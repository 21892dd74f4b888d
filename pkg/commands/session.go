package commands

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/logging"
	"tableflip.dev/postcard/pkg/store"
	"tableflip.dev/postcard/pkg/templateio"
)

// AppVersion is stamped into exports; main sets it at build time.
var AppVersion = "dev"

func limits(cfg *store.FileConfig) templateio.Limits {
	return templateio.Limits{MaxBytes: cfg.MaxBytes, MaxComponents: cfg.MaxComponents}
}

// openSession opens the live template described by the configuration. The
// returned close func writes the template back and flushes the logger.
func openSession(ctx context.Context, log *zap.Logger) (*app.Session, *store.FileConfig, func(), error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := app.Open(ctx,
		app.WithPersistence(p),
		app.WithLogger(log),
		app.WithLimits(limits(cfg)),
		app.WithHistory(cfg.HistoryCapacity, cfg.HistoryDebounce),
		app.WithTitle(cfg.Title),
		app.WithAppVersion(AppVersion),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	closer := func() {
		if err := s.Close(); err != nil {
			log.Warn("close session", zap.Error(err))
		}
		_ = log.Sync()
	}
	return s, cfg, closer, nil
}

// withSession runs fn against the live template and closes it afterwards.
func withSession(fn func(ctx context.Context, s *app.Session, cfg *store.FileConfig) error) error {
	ctx := context.Background()
	log := logging.New(verbose)
	s, cfg, closer, err := openSession(ctx, log)
	if err != nil {
		return output.HandleError(err)
	}
	defer closer()
	return output.HandleError(fn(ctx, s, cfg))
}
