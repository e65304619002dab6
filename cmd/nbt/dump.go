package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/nbtkit/nbt"
)

func newCmdDump() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "print a document as pretty SNBT text",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "compact", Usage: "render on a single line"},
			&cli.BoolFlag{Name: "debug", Usage: "dump the raw parsed structure instead of SNBT"},
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("dump: missing <file> argument")
			}
			info, err := os.Stat(path)
			if err == nil {
				klog.V(2).Infof("dump: reading %s (%s)", path, humanize.Bytes(uint64(info.Size())))
			}

			r := nbt.NewReader()
			if err := r.Import(path); err != nil {
				return fmt.Errorf("dump: %w", err)
			}

			if c.Bool("debug") {
				spew.Dump(r)
				return nil
			}

			w := nbt.NewWriter()
			if err := nbt.CopyDocument(r, w); err != nil {
				return fmt.Errorf("dump: %w", err)
			}
			mode := nbt.PrintPretty
			if c.Bool("compact") {
				mode = nbt.PrintCompact
			}
			text, err := w.ExportTextString(mode)
			if err != nil {
				return fmt.Errorf("dump: %w", err)
			}
			fmt.Println(text)
			return nil
		},
	}
}
