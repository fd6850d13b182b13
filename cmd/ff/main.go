package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/ff/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// UTF-8 fallback keeps non-ASCII file names readable in the picker.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand(cli.StdStreams())
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("❌"), err)
		return 1
	}
	return 0
}
