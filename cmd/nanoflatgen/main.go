// Command nanoflatgen reads a Go source file declaring table and union
// schemas and writes the generated Encode/Decode functions for them, the
// way go:generate normally drives a derive-macro equivalent.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/nanoflat/nanoflat/gen"
)

func generateCommand(c *cli.Context) error {
	src := c.String("in")
	if src == "" {
		return cli.NewExitError("nanoflatgen: -in is required", 1)
	}
	out := c.String("out")
	if out == "" {
		return cli.NewExitError("nanoflatgen: -out is required", 1)
	}
	gen.PrintDebugInfo = c.GlobalBool("debug")
	if gen.PrintDebugInfo {
		gen.Logger.SetOutput(os.Stderr)
	}

	if err := gen.EmitToFile(src, out); err != nil {
		return cli.NewExitError(fmt.Sprintf("nanoflatgen: %v", err), 1)
	}
	fmt.Fprintf(os.Stderr, "nanoflatgen: wrote %s\n", out)
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "nanoflatgen"
	app.Usage = "derive table/union encode-decode functions from a Go schema file"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "debug", Usage: "log generator progress to stderr"},
	}
	app.Commands = []cli.Command{
		cli.Command{
			Name:  "generate",
			Usage: "parse a schema file and emit the generated source",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "in", Usage: "schema source file"},
				cli.StringFlag{Name: "out", Usage: "generated source file to write"},
			},
			Action: generateCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
