package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "go-life"
	app.Usage = "Conway's Game of Life on a wrap-around board, in the terminal or on a Launchpad"
	app.Flags = flags()
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "go-life:", err)
		os.Exit(1)
	}
}
