package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-sprite-raytracer/pkg/log"
	"github.com/df07/go-sprite-raytracer/web/server"
)

var logger = log.New("web")

func newApp() *cli.App {
	// -v is the verbosity flag, so the version flag keeps only its long name
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer-web"
	app.Version = "0.1.0"
	app.Usage = "serve rendered scenes over HTTP"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port, p",
			Value: 8080,
			Usage: "port to serve on",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		if ctx.Bool("v") {
			log.SetLevel(log.Info)
		}

		port := ctx.Int("port")
		logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", port)
		return server.NewServer(port).Start()
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Errorf("error starting server: %v", err)
		os.Exit(1)
	}
}
