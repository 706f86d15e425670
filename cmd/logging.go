package cmd

import (
	"github.com/urfave/cli"
	"github.com/yashsriram/yart/log"
)

var logger = log.New("yart")

// Apply the verbosity selected by the global flags. -v and -vv take
// precedence over --log-level.
func setupLogging(ctx *cli.Context) error {
	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}
