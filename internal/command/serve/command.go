package serve

import (
	"log/slog"

	"github.com/bornholm/worklog/internal/config"
	"github.com/bornholm/worklog/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	// Task store adapters
	_ "github.com/bornholm/worklog/internal/adapter/gorm"
	_ "github.com/bornholm/worklog/internal/adapter/memory"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the worklog server and the daily carry-forward scheduler",
		Action: func(ctx *cli.Context) error {
			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			if conf.Scheduler.Enabled {
				carryForward, err := setup.NewCarryForwardFromConfig(ctx.Context, conf)
				if err != nil {
					return errors.Wrap(err, "could not setup carry-forward scheduler")
				}

				if err := carryForward.Start(ctx.Context); err != nil {
					return errors.Wrap(err, "could not start carry-forward scheduler")
				}

				defer carryForward.Stop()
			}

			server, err := setup.NewHTTPServerFromConfig(ctx.Context, conf)
			if err != nil {
				return errors.Wrap(err, "could not setup http server")
			}

			slog.InfoContext(ctx.Context, "starting server", slog.Any("address", conf.HTTP.Address))

			if err := server.Run(ctx.Context); err != nil {
				return errors.Wrap(err, "could not run server")
			}

			return nil
		},
	}
}
