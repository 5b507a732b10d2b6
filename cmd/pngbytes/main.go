// Package main is the pngbytes command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pngbytes",
		Short: "Convert PNG images into raw RGBA pixel files",
		Long: `pngbytes decodes every PNG in a source directory and writes its pixels to
a headerless "<name>.bytes" file in a destination directory: row-major, four
bytes per pixel (R, G, B, A), eight bits per channel.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (default: ./pngbytes.yaml or ~/.config/pngbytes/pngbytes.yaml)")
	root.PersistentFlags().Bool("debug", false, "set debug")

	root.AddCommand(newConvertCmd(), newPreviewCmd(), newVersionCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
