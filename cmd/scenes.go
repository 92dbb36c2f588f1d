package cmd

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-sprite-raytracer/pkg/scene"
)

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Group", "Description"})
	for _, group := range scene.ListAllScenes().Groups {
		for _, info := range group.Scenes {
			table.Append([]string{info.ID, group.Name, info.Description})
		}
	}
	table.Render()

	_, err := ctx.App.Writer.Write(buf.Bytes())
	return err
}
