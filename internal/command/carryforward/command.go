package carryforward

import (
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
		Name:  "carry-forward",
		Usage: "Run a single carry-forward pass over yesterday's open tasks, then exit",
		Action: func(ctx *cli.Context) error {
			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			carryForward, err := setup.NewCarryForwardFromConfig(ctx.Context, conf)
			if err != nil {
				return errors.Wrap(err, "could not setup carry-forward scheduler")
			}

			if err := carryForward.RunOnce(ctx.Context); err != nil {
				return errors.Wrap(err, "could not run carry-forward pass")
			}

			return nil
		},
	}
}
