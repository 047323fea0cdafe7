package app

import (
	"context"

	"github.com/urfave/cli/v2"

	"git.tatikoma.dev/corpix/notify/supervisor"
)

type (
	Runtime struct {
		Super Super
		Cli   *cli.App
	}
)

func NewRuntime(ctx context.Context) (*Runtime, error) {
	r := &Runtime{
		Cli:   cli.NewApp(),
		Super: supervisor.New(ctx),
	}

	return r, nil
}

func (r *Runtime) Run(args []string) error {
	return r.Cli.RunContext(r.Super, args)
}
