// Package app assembles the interod daemon from its fx modules.
package app

import (
	"context"
	"time"

	"github.com/hstools/interod/src/interod/controller/diagnostics"
	"github.com/hstools/interod/src/interod/controller/worker"
	notifier "github.com/hstools/interod/src/interod/gateway/ide-client"
	"github.com/hstools/interod/src/interod/internal/clock"
	"github.com/hstools/interod/src/interod/internal/core"
	"github.com/hstools/interod/src/interod/internal/executor"
	"github.com/hstools/interod/src/interod/internal/fs"
	"github.com/hstools/interod/src/interod/internal/install"
	"github.com/hstools/interod/src/interod/repository/session"
	tally "github.com/uber-go/tally/v4"
	uberconfig "go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Module defines the interod daemon application module.
var Module = fx.Options(
	core.ConfigModule,
	core.LoggerModule,
	fs.Module,
	executor.Module,
	diagnostics.Module,
	worker.Module,
	fx.Provide(notifier.New),
	fx.Provide(clock.New),
	fx.Provide(newNegotiator),
	fx.Provide(func(scope tally.Scope) session.Repository {
		return session.New(scope.SubScope("sessions"))
	}),
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "interod",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Invoke(registerShutdown),
)

// newNegotiator builds the install negotiator with the build-tool settings
// from the worker config block.
func newNegotiator(p install.Params, provider uberconfig.Provider) (install.Negotiator, error) {
	var cfg worker.Config
	if err := provider.Get("worker").Populate(&cfg); err != nil {
		return nil, err
	}

	var opts []install.Option
	if cfg.StackPath != "" {
		opts = append(opts, install.WithStackPath(cfg.StackPath))
	}
	if cfg.Resolver != "" {
		opts = append(opts, install.WithResolver(cfg.Resolver))
	}
	return install.New(p, opts...), nil
}

// registerShutdown tears down every live worker when the daemon stops, so no
// orphaned compiler processes outlive it.
func registerShutdown(lc fx.Lifecycle, sessions session.Repository, workers worker.Controller, logger *zap.SugaredLogger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			all, err := sessions.List(ctx)
			if err != nil {
				return err
			}

			var errs error
			for _, s := range all {
				logger.Infow("destroying worker session on shutdown",
					"projectRoot", s.ProjectRoot,
					"state", s.State,
				)
				if err := workers.Destroy(ctx, s.ProjectRoot); err != nil {
					errs = multierr.Append(errs, err)
				}
			}
			return errs
		},
	})
}
