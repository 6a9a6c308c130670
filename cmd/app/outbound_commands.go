package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/rmarques/marketgate/cmd/app/commands"
	"github.com/rmarques/marketgate/internal/app"
	"github.com/rmarques/marketgate/internal/config"
)

func getOutboundCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "hash-dispatch-secret",
			Usage: "Hash a dispatch trigger secret for the DISPATCH_SECRET_HASH setting",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "secret",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Plain secret the scheduler will present",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunHashDispatchSecret(
					container.SecretService(),
					cmd.String("secret"),
					commands.DefaultIO().Writer,
				)
			},
		},
		{
			Name:  "dispatch-outbound",
			Usage: "Run one outbound dispatch pass over the pending message queue",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				dispatchUseCase, err := container.DispatchUseCase()
				if err != nil {
					return err
				}

				return commands.RunDispatchOutbound(
					ctx,
					dispatchUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
