package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/nbtkit/nbt"
)

func newCmdValidate() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check that one or more documents parse without error",
		ArgsUsage: "<file> [<file> ...]",
		Action: func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("validate: requires at least one <file> argument")
			}

			bar := progressbar.Default(int64(len(paths)), "validating")
			var failures int
			for _, path := range paths {
				r := nbt.NewReader()
				if err := r.Import(path); err != nil {
					fmt.Printf("%s: FAIL: %v\n", path, err)
					failures++
				}
				_ = bar.Add(1)
			}
			if failures > 0 {
				return fmt.Errorf("validate: %d of %d documents failed", failures, len(paths))
			}
			fmt.Printf("%d documents OK\n", len(paths))
			return nil
		},
	}
}
