package main

import (
	"context"

	"github.com/meikuraledutech/flow/internal/log"
	"github.com/meikuraledutech/flow/internal/tracing"
	"github.com/meikuraledutech/flow/server"
	cli "github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve flows over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export traces over OTLP/HTTP",
				Sources: cli.EnvVars("OTEL_TRACING"),
			},
			&cli.BoolFlag{
				Name:    "access-log",
				Usage:   "Log every request",
				Value:   true,
				Sources: cli.EnvVars("ACCESS_LOG"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			logger := log.WithModule("server")

			if command.Bool("tracing") {
				tp, err := tracing.NewProvider(ctx, "campaignflow")
				if err != nil {
					return err
				}
				defer func() {
					if err := tp.Shutdown(context.WithoutCancel(ctx)); err != nil {
						logger.ErrorContext(ctx, "Failed to shut down tracer provider", "error", err)
					}
				}()
			}

			srv := server.New(server.Config{
				Logger:    logger,
				Tracer:    tracing.Tracer("campaignflow/server"),
				AccessLog: command.Bool("access-log"),
			})

			port := command.Int("port")
			logger.InfoContext(ctx, "Starting campaignflow API", "port", port)
			return srv.Start(port)
		},
	}
}
