package cmd

import (
	"github.com/urfave/cli"
	"github.com/yashsriram/yart/renderer"
)

// Create the command line application.
func NewApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "yart"
	app.Usage = "render scenes using ray casting"
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
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "log level (debug, info, notice, warning, error)",
			EnvVar: "YART_LOG_LEVEL",
		},
	}

	textureFlag := cli.IntFlag{
		Name:   "max-texture-size",
		Value:  0,
		Usage:  "downscale textures whose largest side exceeds this value; 0 disables",
		EnvVar: "YART_MAX_TEXTURE_SIZE",
	}

	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene description to an image",
			Description: `
Parse a scene description file, cast one or more rays through every pixel of
the image plane and write the result to an image file. The output format is
selected by the file extension (.ppm, .png, .jpg, .bmp or .tiff).

The scene argument may be a local path or an http(s) URL.`,
			ArgsUsage: "scene_file.txt",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "out, o",
					Usage:  "image filename for the rendered frame; defaults to the scene name with a .ppm extension",
					EnvVar: "YART_OUT",
				},
				cli.IntFlag{
					Name:   "depth",
					Value:  renderer.DefaultMaxDepth,
					Usage:  "max number of reflection and refraction bounces",
					EnvVar: "YART_DEPTH",
				},
				cli.IntFlag{
					Name:   "shadow-samples",
					Value:  1,
					Usage:  "shadow rays per light",
					EnvVar: "YART_SHADOW_SAMPLES",
				},
				cli.Float64Flag{
					Name:   "shadow-jitter",
					Usage:  "light jitter radius for soft shadows",
					EnvVar: "YART_SHADOW_JITTER",
				},
				cli.IntFlag{
					Name:   "pixel-samples",
					Value:  1,
					Usage:  "primary rays per pixel",
					EnvVar: "YART_PIXEL_SAMPLES",
				},
				cli.Float64Flag{
					Name:   "pixel-jitter",
					Usage:  "eye jitter radius for depth of field",
					EnvVar: "YART_PIXEL_JITTER",
				},
				cli.Int64Flag{
					Name:   "seed",
					Usage:  "random seed for jittered sampling",
					EnvVar: "YART_SEED",
				},
				cli.IntFlag{
					Name:   "tracers",
					Value:  0,
					Usage:  "number of tracers; 0 uses one per cpu",
					EnvVar: "YART_TRACERS",
				},
				cli.StringFlag{
					Name:   "scheduler",
					Value:  "naive",
					Usage:  "block scheduler (naive or perfect)",
					EnvVar: "YART_SCHEDULER",
				},
				cli.UintFlag{
					Name:   "thumbnail",
					Usage:  "also write a thumbnail whose largest side is this many pixels",
					EnvVar: "YART_THUMBNAIL",
				},
				cli.BoolFlag{
					Name:   "upload",
					Usage:  "upload the rendered files to the S3 bucket configured by the S3_* variables",
					EnvVar: "YART_UPLOAD",
				},
				cli.StringFlag{
					Name:   "upload-prefix",
					Usage:  "key prefix for uploaded files",
					EnvVar: "YART_UPLOAD_PREFIX",
				},
				textureFlag,
			},
			Action: RenderFrame,
		},
		{
			Name:      "info",
			Usage:     "display scene information",
			ArgsUsage: "scene_file.txt",
			Flags: []cli.Flag{
				textureFlag,
			},
			Action: ShowSceneInfo,
		},
	}

	return app
}

// Load the environment overrides and run the application. The .env file is
// loaded first so its values are visible to the flag EnvVar lookups; a file
// that fails to load aborts the run.
func Run(args []string) error {
	if err := LoadEnv(); err != nil {
		return err
	}
	return NewApp().Run(args)
}
