package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"github.com/yashsriram/yart/frame"
	"github.com/yashsriram/yart/renderer"
	"github.com/yashsriram/yart/scene/reader"
	"github.com/yashsriram/yart/tracer"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	// Load scene
	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}
	scenePath := ctx.Args().First()

	sc, err := reader.ReadScene(scenePath, reader.Options{MaxTextureSize: ctx.Int("max-texture-size")})
	if err != nil {
		return err
	}
	logger.Noticef("scene: %s", sceneSummary(sc))
	logger.Infof("scene information:\n%s", sceneInfo(sc))

	// Negative counts would wrap around once converted to uint32
	for _, flag := range []string{"depth", "shadow-samples", "pixel-samples"} {
		if ctx.Int(flag) < 0 {
			return fmt.Errorf("%s must not be negative", flag)
		}
	}
	opts := renderer.Options{
		MaxDepth:      uint32(ctx.Int("depth")),
		ShadowSamples: uint32(ctx.Int("shadow-samples")),
		ShadowJitter:  ctx.Float64("shadow-jitter"),
		PixelSamples:  uint32(ctx.Int("pixel-samples")),
		PixelJitter:   ctx.Float64("pixel-jitter"),
		Seed:          ctx.Int64("seed"),
		NumTracers:    ctx.Int("tracers"),
	}

	scheduler, err := selectScheduler(ctx.String("scheduler"))
	if err != nil {
		return err
	}

	// Create renderer
	r, err := renderer.NewDefault(sc, scheduler, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Noticef("rendering %dx%d frame", sc.Camera.Width, sc.Camera.Height)
	fb, err := r.Render(runCtx)
	if err != nil {
		return err
	}

	// Display stats
	logger.Noticef("frame statistics\n%s", frameStatsTable(r.Stats()))

	// Save output
	outFile := ctx.String("out")
	if outFile == "" {
		outFile = defaultOutputName(scenePath)
	}
	if err = frame.Save(outFile, fb); err != nil {
		return err
	}
	logger.Noticef("saved frame to %s", outFile)
	files := []string{outFile}

	if thumbSize := ctx.Uint("thumbnail"); thumbSize > 0 {
		thumbFile := frame.ThumbnailName(outFile)
		if err = frame.SaveThumbnail(thumbFile, fb, thumbSize); err != nil {
			return err
		}
		logger.Noticef("saved %dpx thumbnail to %s", thumbSize, thumbFile)
		files = append(files, thumbFile)
	}

	if ctx.Bool("upload") {
		uploader, err := frame.NewUploader(s3ConfigFromEnv())
		if err != nil {
			return err
		}
		return uploadFiles(runCtx, uploader, ctx.String("upload-prefix"), files)
	}

	return nil
}

// Upload rendered files under prefix.
func uploadFiles(ctx context.Context, uploader *frame.Uploader, prefix string, files []string) error {
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read %s for upload: %w", file, err)
		}

		key := path.Join(prefix, filepath.Base(file))
		if err = uploader.Upload(ctx, key, data); err != nil {
			return err
		}
		logger.Noticef("uploaded %s to s3://%s/%s", file, uploader.Bucket(), key)
	}
	return nil
}

// Select a block scheduler by name.
func selectScheduler(name string) (tracer.BlockScheduler, error) {
	switch strings.ToLower(name) {
	case "", "naive":
		return tracer.NaiveScheduler(), nil
	case "perfect":
		return tracer.PerfectScheduler(), nil
	}
	return nil, fmt.Errorf("unknown scheduler '%s'; expected naive or perfect", name)
}

// The default output file is the scene file name with a .ppm extension. For
// remote scenes the file is written to the working directory.
func defaultOutputName(scenePath string) string {
	name := scenePath
	if loc, err := url.Parse(scenePath); err == nil && loc.Scheme != "" {
		name = path.Base(loc.Path)
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".ppm"
}

func frameStatsTable(stats renderer.FrameStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Block height", "% of frame", "Render time", "Primary rays", "Secondary rays", "Shadow rays"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%s", stat.RenderTime),
			fmt.Sprintf("%d", stat.PrimaryRays),
			fmt.Sprintf("%d", stat.SecondaryRays),
			fmt.Sprintf("%d", stat.ShadowRays),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime), "", "RAYS", fmt.Sprintf("%d", stats.TotalRays())})

	table.Render()
	return buf.String()
}
