// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/mission/loader"
	"gitlab.com/fisherprime/mission/types"
)

type (
	// rootOptions holds the flags shared by every subcommand.
	rootOptions struct {
		debug     bool
		delimiter string
		workers   int
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "misdump:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "misdump",
		Short:         "Inspect Torque mission files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log lexer & parser activity")
	rootCmd.PersistentFlags().StringVar(&opts.delimiter, "delimiter", `"`, "string literal delimiter")
	rootCmd.PersistentFlags().IntVar(&opts.workers, "workers", loader.DefaultWorkers, "documents parsed concurrently")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newFindCmd(opts))

	return rootCmd
}

// newLoader creates a loader.Loader from the shared flags.
func (o *rootOptions) newLoader() (*loader.Loader, error) {
	if len(o.delimiter) != 1 {
		return nil, fmt.Errorf("delimiter must be a single byte, got %q", o.delimiter)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if o.debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	types.SetLogger(logger)

	return loader.New(
		loader.WithLogger(logger),
		loader.WithDebug(o.debug),
		loader.WithDelimiter(o.delimiter[0]),
		loader.WithWorkers(o.workers),
	)
}
