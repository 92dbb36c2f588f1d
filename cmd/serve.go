package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-sprite-raytracer/web/server"
)

// Serve starts the HTTP preview server.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	s := server.NewServer(ctx.Int("port"))
	logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", ctx.Int("port"))
	return s.Start()
}
