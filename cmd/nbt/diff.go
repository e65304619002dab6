package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/nbtkit/nbt"
)

func newCmdDiff() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two documents by their canonical SNBT rendering",
		ArgsUsage: "<a> <b>",
		Action: func(c *cli.Context) error {
			a := c.Args().Get(0)
			b := c.Args().Get(1)
			if a == "" || b == "" {
				return fmt.Errorf("diff: requires <a> and <b> arguments")
			}

			textA, err := renderCanonical(a)
			if err != nil {
				return fmt.Errorf("diff: %s: %w", a, err)
			}
			textB, err := renderCanonical(b)
			if err != nil {
				return fmt.Errorf("diff: %s: %w", b, err)
			}

			if textA == textB {
				fmt.Println("identical")
				return nil
			}

			linesA := strings.Split(textA, "\n")
			linesB := strings.Split(textB, "\n")
			max := len(linesA)
			if len(linesB) > max {
				max = len(linesB)
			}
			for i := 0; i < max; i++ {
				var la, lb string
				if i < len(linesA) {
					la = linesA[i]
				}
				if i < len(linesB) {
					lb = linesB[i]
				}
				if la != lb {
					fmt.Printf("- %s\n+ %s\n", la, lb)
				}
			}
			return fmt.Errorf("diff: documents differ")
		},
	}
}

func renderCanonical(path string) (string, error) {
	r := nbt.NewReader()
	if err := r.Import(path); err != nil {
		return "", err
	}
	w := nbt.NewWriter()
	if err := nbt.CopyDocument(r, w); err != nil {
		return "", err
	}
	return w.ExportTextString(nbt.PrintPretty)
}
