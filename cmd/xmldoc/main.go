package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tagdoc/xmldoc/internal/cli"
	xmlerrors "github.com/tagdoc/xmldoc/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		if xmlerrors.Is(err, xmlerrors.ErrCodeInvalidConfig) {
			os.Exit(3) // Setup failure: logging/config never came up
		}
		os.Exit(1)
	}
}
