package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/rmarques/marketgate/cmd/app/commands"
	"github.com/rmarques/marketgate/internal/app"
	"github.com/rmarques/marketgate/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-account",
			Usage: "Create a new seller account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable account name",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Account contact email",
				},
				&cli.StringFlag{
					Name:    "plan",
					Aliases: []string{"p"},
					Value:   "starter",
					Usage:   "Subscription plan: 'free', 'starter', 'pro' or 'business'",
				},
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

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateAccount(
					ctx,
					accountUseCase,
					container.Logger(),
					cmd.String("name"),
					cmd.String("email"),
					cmd.String("plan"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "create-credential",
			Usage: "Issue a new API key for an account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "account-id",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Account ID (UUID) the key belongs to",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable credential name",
				},
				&cli.StringFlag{
					Name:     "scopes",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Comma-separated scope tokens (e.g., 'listings:read,stats:read') or '*'",
				},
				&cli.IntFlag{
					Name:    "expires-in-days",
					Aliases: []string{"d"},
					Value:   0,
					Usage:   "Days until the key expires (0 means no expiry)",
				},
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

				credentialUseCase, err := container.CredentialUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateCredential(
					ctx,
					credentialUseCase,
					container.Logger(),
					cmd.String("account-id"),
					cmd.String("name"),
					cmd.String("scopes"),
					int(cmd.Int("expires-in-days")),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
