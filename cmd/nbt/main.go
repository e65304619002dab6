// Command nbt inspects, converts, and validates NBT documents: binary
// (optionally gzip-framed) and SNBT text.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"
)

var gitCommitSHA = ""

var flagVerbose = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "enable verbose (klog -v=2) logging",
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, syscall.SIGTERM, syscall.SIGINT)

		select {
		case <-interrupt:
			fmt.Println()
			klog.Info("received interrupt signal")
			cancel()
		case <-ctx.Done():
		}

		signal.Stop(interrupt)
	}()

	app := &cli.App{
		Name:        "nbt",
		Version:     gitCommitSHA,
		Description: "Read, write, and convert Minecraft NBT documents.",
		Flags: []cli.Flag{
			flagVerbose,
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagVerbose.Name) {
				klog.InitFlags(nil)
				_ = flag.Set("v", "2")
			}
			return nil
		},
		Commands: []*cli.Command{
			newCmdDump(),
			newCmdConvert(),
			newCmdValidate(),
			newCmdDiff(),
			newCmdVersion(),
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.RunContext(ctx, os.Args); err != nil {
		klog.Fatal(err)
	}
}
