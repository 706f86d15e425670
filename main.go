package main

import (
	"os"

	"github.com/yashsriram/yart/cmd"
	"github.com/yashsriram/yart/log"
)

func main() {
	if err := cmd.Run(os.Args); err != nil {
		log.New("yart").Error(err)
		os.Exit(1)
	}
}
