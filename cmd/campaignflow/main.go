package main

import (
	"context"
	"os"

	"github.com/meikuraledutech/flow/internal/log"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	cmd := &cli.Command{
		Name:                  "campaignflow",
		Usage:                 "Build campaign flows of outreach steps and waits",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			log.Setup(command.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			buildCommand(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
