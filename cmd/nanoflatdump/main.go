// Command nanoflatdump is a diagnostic shell around the nanoflat engine:
// given an encoded buffer it walks the root table's vtable and prints a
// colorized field-by-field breakdown, the structural counterpart to
// wasm-dump's section breakdown for a WebAssembly module.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/nanoflat/nanoflat"
)

var (
	present = color.New(color.FgGreen)
	absent  = color.New(color.FgHiBlack)
	header  = color.New(color.FgCyan, color.Bold)
)

func readBuffer(c *cli.Context) ([]byte, error) {
	if path := c.String("file"); path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func dumpCommand(c *cli.Context) error {
	buf, err := readBuffer(c)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("nanoflatdump: reading input: %v", err), 1)
	}

	dec := nanoflat.NewDecoder(buf)
	rootStart, err := dec.ResolveOffset(0)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("nanoflatdump: resolving root: %v", err), 1)
	}
	header.Printf("buffer: %d bytes, root table at %d\n", dec.Len(), rootStart)

	vtableStart, entriesEnd, err := nanoflat.BeginTableDecode(dec, rootStart)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("nanoflatdump: reading vtable: %v", err), 1)
	}
	vtableSize, err := dec.ReadU16(vtableStart)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("nanoflatdump: %v", err), 1)
	}
	tableSize, err := dec.ReadU16(vtableStart + 2)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("nanoflatdump: %v", err), 1)
	}
	header.Printf("vtable at %d: size=%d, table_size=%d\n", vtableStart, vtableSize, tableSize)

	slot := 0
	cursor := vtableStart + 4
	for cursor < entriesEnd {
		wv, next, err := nanoflat.DecodeVTableEntry(dec, rootStart, cursor)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("nanoflatdump: %v", err), 1)
		}
		if wv.Present() {
			present.Printf("  field %2d: present, offset %d\n", slot, wv.FieldOffset())
		} else {
			absent.Printf("  field %2d: absent\n", slot)
		}
		cursor = next
		slot++
	}

	if c.Bool("verbose") {
		fmt.Println(spew.Sdump(buf))
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "nanoflatdump"
	app.Usage = "inspect an encoded nanoflat buffer"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "file", Usage: "read the buffer from this path instead of stdin"},
		cli.BoolFlag{Name: "verbose", Usage: "also hex-dump the raw buffer"},
	}
	app.Action = dumpCommand
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
