// SPDX-License-Identifier: Apache-2.0
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	rlerrors "redline/internal/errors"
	"redline/internal/lexer"
)

var log = commonlog.GetLogger("redline.cli")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("redline", flag.ContinueOnError)
	flags.SetOutput(stderr)
	verbosity := flags.Int("v", 0, "log verbosity (0 = quiet, 2 = debug)")
	spans := flags.Bool("spans", false, "print each token's lexeme and end position")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: redline [-v N] [-spans] <file.rl>")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}

	if *verbosity > 0 {
		commonlog.Configure(*verbosity, nil)
	}

	startTime := time.Now()
	path := flags.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, rlerrors.Summary(rlerrors.CompilerError{
			Level:   rlerrors.Error,
			Code:    rlerrors.ErrorUnreadableSource,
			Message: fmt.Sprintf("failed to read file: %v", err),
		}))
		return 1
	}
	log.Debugf("read %d bytes from %s", len(source), path)

	items, err := lexer.New(string(source)).Scan()
	duration := formatDuration(time.Since(startTime))

	if err != nil {
		var lexErr *lexer.Error
		if !errors.As(err, &lexErr) {
			fmt.Fprintf(stderr, "unexpected error: %v\n", err)
			return 1
		}

		reporter := rlerrors.NewErrorReporter(path, string(source))
		fmt.Fprint(stderr, reporter.FormatError(rlerrors.FromLexError(lexErr)))
		fmt.Fprintln(stderr, color.RedString("Tokenizing failed after %s", duration))
		return 1
	}

	for _, item := range items {
		if *spans {
			fmt.Fprintf(stdout, "%s-%s\t%s\t%q\n", item.Pos, item.End, item.Token, item.Lexeme)
		} else {
			fmt.Fprintf(stdout, "%s\t%s\n", item.Pos, item.Token)
		}
	}

	log.Infof("%d tokens from %s", len(items), path)
	fmt.Fprintln(stdout, color.GreenString("Successfully tokenized %s in %s", path, duration))
	return 0
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
