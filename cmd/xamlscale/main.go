package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/MacroPower/xamlscale/internal/cli"
	"github.com/MacroPower/xamlscale/pkg/log"
)

func init() {
	h, err := log.CreateHandler(os.Stderr, "warn", log.TextFormat)
	if err != nil {
		panic(err)
	}

	slog.SetDefault(slog.New(h))
}

const (
	cmdName = "xamlscale"

	shortDesc = "Rescale the screen coordinates recorded in XAML workflows."
	longDesc  = `Rescale the screen coordinates recorded in XAML workflows.

Workflows recorded on a display with a scaling factor other than 100% store
cursor offsets and clipping regions in that display's pixels. xamlscale
normalizes them to 100% (normalize_from), or converts workflows recorded at
100% for playback on a scaled display (denormalize_to). Scaling is given in
percent, between 100 and 500.

A single file is written to the given output path, which may equal the input.
A folder is rewritten in place, recursively, after confirmation.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
