package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"

	"github.com/duxstat/dux/internal/dux"
)

func logic(opts options, mode dux.Mode) error {
	enableProgress := opts.output != "json" &&
		!opts.noProgress &&
		!opts.debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	var progress io.Writer
	if enableProgress {
		progress = os.Stderr
	}

	// The core only consumes a predicate; the signal wiring lives here.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	defer signal.Stop(interrupt)

	shouldCancel := func() bool {
		select {
		case <-interrupt:
			return true
		default:
			return false
		}
	}

	duxOpts := dux.Options{
		ShouldCancel: shouldCancel,
		Progress:     progress,
		Grouping:     !opts.noGrouping,
		TypeSuffix:   !opts.noSuffix,
		Debug:        opts.debug,
	}

	var err error

	switch opts.output {
	case "json":
		err = printJSON(os.Stdout, opts.dirname, mode, duxOpts)
	default:
		err = dux.Render(os.Stdout, opts.dirname, mode, duxOpts)
	}

	if errors.Is(err, dux.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "\nInterrupted !")
	}

	return err
}
