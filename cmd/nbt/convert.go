package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/nbtkit/nbt"
)

func newCmdConvert() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert between binary and SNBT text encodings",
		ArgsUsage: "<input> <output>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "to",
				Usage: "output encoding: binary, binary-gz, text, text-compact",
				Value: "binary-gz",
			},
		},
		Action: func(c *cli.Context) error {
			input := c.Args().Get(0)
			output := c.Args().Get(1)
			if input == "" || output == "" {
				return fmt.Errorf("convert: requires <input> and <output> arguments")
			}

			r := nbt.NewReader()
			if err := r.Import(input); err != nil {
				return fmt.Errorf("convert: reading %s: %w", input, err)
			}

			w := nbt.NewWriter()
			if err := nbt.CopyDocument(r, w); err != nil {
				return fmt.Errorf("convert: %w", err)
			}

			klog.V(2).Infof("convert: %s -> %s (%s)", input, output, c.String("to"))
			switch c.String("to") {
			case "binary":
				return w.ExportBinaryUncompressed(output)
			case "binary-gz":
				return w.ExportBinary(output)
			case "text":
				return w.ExportText(output, nbt.PrintPretty)
			case "text-compact":
				return w.ExportText(output, nbt.PrintCompact)
			default:
				return fmt.Errorf("convert: unknown --to encoding %q", c.String("to"))
			}
		},
	}
}
