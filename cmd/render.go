package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-sprite-raytracer/pkg/integrator"
	"github.com/df07/go-sprite-raytracer/pkg/output"
	"github.com/df07/go-sprite-raytracer/pkg/renderer"
	"github.com/df07/go-sprite-raytracer/pkg/scene"
)

// RenderFlags are the flags accepted by the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "book-one",
		Usage: "scene to render (see the scenes command)",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width (default: scene recommendation)",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height (default: scene recommendation)",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel (default: scene recommendation)",
	},
	cli.IntFlag{
		Name:  "depth",
		Usage: "maximum bounces per path (default: scene recommendation)",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Usage: "number of render workers, 0 uses one per CPU",
	},
	cli.StringFlag{
		Name:  "strategy",
		Value: string(renderer.StrategyInterleaved),
		Usage: "work distribution: interleaved or pool",
	},
	cli.Uint64Flag{
		Name:  "seed",
		Value: 42,
		Usage: "seed for scene layout and sampling",
	},
	cli.StringFlag{
		Name:  "emission",
		Value: integrator.EmissionAdded.String(),
		Usage: "light emission handling: added or ignored",
	},
	cli.StringFlag{
		Name:  "texture",
		Usage: "image file mapped onto the textures scene",
	},
	cli.IntFlag{
		Name:  "texture-size",
		Value: 1024,
		Usage: "downscale textures whose longer side exceeds this many pixels, 0 disables",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "output file (.ppm, .png or .webp), - for stdout (default: output/<scene>/render_<timestamp>.png)",
	},
	cli.StringFlag{
		Name:  "format, f",
		Value: string(output.FormatPPM),
		Usage: "image format when writing to stdout",
	},
}

// RenderFrame renders a single frame of a built-in scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	name := ctx.String("scene")
	if ctx.NArg() > 0 {
		name = ctx.Args().First()
	}

	sc, err := scene.Build(name, scene.Options{
		Seed:        ctx.Uint64("seed"),
		TexturePath: ctx.String("texture"),
		TextureSize: ctx.Int("texture-size"),
	})
	if err != nil {
		return err
	}

	config, err := renderConfig(ctx, sc.Config)
	if err != nil {
		return err
	}

	rt, err := sc.NewRaytracer(config)
	if err != nil {
		return err
	}

	// Ctrl+C stops the render between pixels
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering scene %q", sc.Name)
	fb, stats, err := rt.Render(renderCtx)
	if err != nil {
		if errors.Is(err, renderer.ErrInterrupted) {
			logger.Warningf("render interrupted after %d of %d pixels", stats.TotalPixels, config.Width*config.Height)
		}
		return err
	}

	displayRenderStats(stats)

	out := ctx.String("out")
	if out == "-" {
		format, err := output.ParseFormat(ctx.String("format"))
		if err != nil {
			return err
		}
		return output.Write(os.Stdout, fb, format)
	}
	if out == "" {
		timestamp := time.Now().Format("20060102_150405")
		out = filepath.Join("output", sc.Name, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := output.Save(out, fb); err != nil {
		return err
	}
	logger.Noticef("render saved as %s", out)
	return nil
}

// renderConfig applies the flags that were set on top of a scene's recommended config
func renderConfig(ctx *cli.Context, config renderer.Config) (renderer.Config, error) {
	if ctx.IsSet("width") {
		config.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		config.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		config.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		config.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("workers") {
		config.Workers = ctx.Int("workers")
	}

	strategy, err := renderer.ParseStrategy(ctx.String("strategy"))
	if err != nil {
		return config, err
	}
	config.Strategy = strategy

	emission, err := integrator.ParseEmissionMode(ctx.String("emission"))
	if err != nil {
		return config, err
	}
	config.Emission = emission
	config.Seed = ctx.Uint64("seed")

	return config, config.Validate()
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Pixels", "Samples", "% of frame", "Busy time"})
	for _, stat := range stats.Workers {
		percent := 0.0
		if stats.TotalPixels > 0 {
			percent = 100 * float64(stat.Pixels) / float64(stats.TotalPixels)
		}
		table.Append([]string{
			fmt.Sprintf("%d", stat.ID),
			fmt.Sprintf("%d", stat.Pixels),
			fmt.Sprintf("%d", stat.Samples),
			fmt.Sprintf("%02.1f %%", percent),
			stat.Busy.Round(time.Millisecond).String(),
		})
	}
	table.SetFooter([]string{
		string(stats.Strategy),
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.0f samples/s", stats.SamplesPerSecond()),
		stats.Duration.Round(time.Millisecond).String(),
	})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
