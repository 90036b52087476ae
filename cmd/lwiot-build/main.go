// Package main provides the lwIoT build configurator.
// It reads a YAML build configuration and configures a target's cmake build tree.
package main

import (
	"log"
	"os"

	"github.com/lwiot/lwiot-build/internal/cli"
)

func main() {
	app := cli.NewApp()

	if err := app.Run(cli.ExpandDefineArgs(os.Args)); err != nil {
		log.Fatal(err)
	}
}
