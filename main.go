package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-sprite-raytracer/cmd"
	"github.com/df07/go-sprite-raytracer/pkg/log"
)

var logger = log.New("main")

func newApp() *cli.App {
	// The default version flag claims -v, which is the verbosity flag here
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "sprite-raytracer"
	app.Usage = "render scenes of transformed sprites using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame of a built-in scene",
			Description: `
Build the selected scene, render every pixel once across a pool of workers and
write the frame as PPM, PNG or WebP depending on the output file extension.

Flags left unset fall back to the scene's recommended settings.`,
			ArgsUsage: "[scene]",
			Flags:     cmd.RenderFlags,
			Action:    cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve renders over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to serve on",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
