package main

import (
	"os"

	"github.com/hyperterse/dataexplorer/core/cli"
	"github.com/hyperterse/dataexplorer/core/cli/cmd"
)

// Version can be set at build time using -ldflags
var Version = "dev"

func init() {
	cmd.SetVersion(Version)
}

func main() {
	os.Exit(cli.Execute())
}
