package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/scene/reader"
)

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First(), reader.Options{MaxTextureSize: ctx.Int("max-texture-size")})
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sceneInfo(sc))
	return nil
}

// One line scene summary.
func sceneSummary(sc *scene.Scene) string {
	counts := sc.Stats()
	return fmt.Sprintf(
		"%d spheres, %d ellipsoids, %d triangles, %d lights, %d materials, %d textures",
		counts[scene.SpherePrimitive], counts[scene.EllipsoidPrimitive], counts[scene.TrianglePrimitive],
		len(sc.Lights), len(sc.Materials), len(sc.Textures),
	)
}

func sceneInfo(sc *scene.Scene) string {
	var buf bytes.Buffer
	cam := sc.Camera
	counts := sc.Stats()

	projection := "perspective"
	if cam.Parallel {
		projection = "parallel"
	}

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"eye", fmtVec(cam.Eye)},
		{"view direction", fmtVec(cam.ViewDir)},
		{"up direction", fmtVec(cam.UpDir)},
		{"vertical fov", fmt.Sprintf("%g°", cam.VFov)},
		{"image size", fmt.Sprintf("%dx%d", cam.Width, cam.Height)},
		{"projection", projection},
		{"plane distance", fmt.Sprintf("%g", cam.PlaneDistance())},
		{"background", fmtVec(sc.BgColor)},
		{"spheres", fmt.Sprintf("%d", counts[scene.SpherePrimitive])},
		{"ellipsoids", fmt.Sprintf("%d", counts[scene.EllipsoidPrimitive])},
		{"triangles", fmt.Sprintf("%d", counts[scene.TrianglePrimitive])},
		{"materials", fmt.Sprintf("%d", len(sc.Materials))},
		{"textures", fmt.Sprintf("%d", len(sc.Textures))},
	})
	table.Render()

	if len(sc.Lights) == 0 {
		return buf.String()
	}

	lights := tablewriter.NewWriter(&buf)
	lights.SetAutoFormatHeaders(false)
	lights.SetHeader([]string{"Light", "Type", "Position / direction", "Color"})
	for index, light := range sc.Lights {
		lights.Append([]string{
			fmt.Sprintf("%d", index),
			light.Type.String(),
			fmtVec(light.Vector),
			fmtVec(light.Color),
		})
	}
	lights.Render()

	return buf.String()
}

func fmtVec(v [3]float64) string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}
