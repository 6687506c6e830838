package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/panchayath-admin/cmd/app/commands"
	"github.com/allisson/panchayath-admin/internal/app"
	"github.com/allisson/panchayath-admin/internal/config"
)

func getIdentityCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-admin",
			Usage: "Create an administrator account directly in the database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Unique login handle",
				},
				&cli.StringFlag{
					Name:    "email",
					Aliases: []string{"e"},
					Usage:   "Contact email address",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Plaintext password (hashed before storage)",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Value:   "super_admin",
					Usage:   "Role: super_admin, admin or local_admin",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the account can log in immediately",
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

				txManager, err := container.TxManager()
				if err != nil {
					return err
				}

				adminRepo, err := container.AdminRepository()
				if err != nil {
					return err
				}

				auditLogUseCase, err := container.AuditLogUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateAdmin(
					ctx,
					txManager,
					adminRepo,
					container.PasswordService(),
					auditLogUseCase,
					container.Logger(),
					commands.CreateAdminParams{
						Username: cmd.String("username"),
						Email:    cmd.String("email"),
						Password: cmd.String("password"),
						Role:     cmd.String("role"),
						IsActive: cmd.Bool("active"),
						Format:   cmd.String("format"),
					},
					commands.DefaultIO().Writer,
				)
			},
		},
		{
			Name:  "purge-expired-tokens",
			Usage: "Delete expired authentication tokens",
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

				authUseCase, err := container.AuthUseCase()
				if err != nil {
					return err
				}

				return commands.RunPurgeExpiredTokens(
					ctx,
					authUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
