package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/panchayath-admin/cmd/app/commands"
	"github.com/allisson/panchayath-admin/internal/app"
	"github.com/allisson/panchayath-admin/internal/config"
)

func getPermissionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seed-permissions",
			Usage: "Install the builtin permission catalog",
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

				permissionUseCase, err := container.PermissionUseCase()
				if err != nil {
					return err
				}

				return commands.RunSeedPermissions(
					ctx,
					permissionUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
