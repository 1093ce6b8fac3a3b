// Command icslint checks iCalendar files against the content line grammar
// of RFC 5545 and reports every line it rejects.
//
// Usage:
//
//	icslint [-strict=false] [-metrics file.prom] [-log-level debug] [file.ics ...]
//
// With no file, standard input is read. The exit status is 1 when a line
// was rejected and 2 when a file could not be read.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/luxifer/go-ical/internal/config"
	"github.com/luxifer/go-ical/internal/metric"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	flags := flag.NewFlagSet("icslint", flag.ContinueOnError)
	flags.SetOutput(stderr)
	strict := flags.Bool("strict", cfg.GetStrict(), "decode property values according to their type")
	metricsFile := flags.String("metrics", cfg.GetMetricsFile(), "write counters to this node_exporter textfile")
	level := cfg.GetLogLevel()
	flags.TextVar(&level, "log-level", cfg.GetLogLevel(), "log level: debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC1123Z,
			NoColor:    !isTerminal(stderr),
		}),
	))

	l := &linter{strict: *strict}
	if *metricsFile != "" {
		l.metrics = metric.New()
	}

	status := 0
	files := flags.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, name := range files {
		n, err := lintFile(l, name, stdin, stdout)
		if err != nil {
			slog.Error("can't lint file", "file", name, "error", err)
			status = 2
			continue
		}
		if n > 0 && status == 0 {
			status = 1
		}
	}

	if l.metrics != nil {
		if err := l.metrics.WriteFile(*metricsFile); err != nil {
			slog.Error("can't write metrics", "file", *metricsFile, "error", err)
			return 2
		}
		slog.Debug("metrics written", "file", *metricsFile)
	}
	return status
}

// lintFile lints the named file, "-" being stdin, and prints its
// diagnostics to stdout. It returns the number of rejected lines.
func lintFile(l *linter, name string, stdin io.Reader, stdout io.Writer) (int, error) {
	r := stdin
	if name == "-" {
		name = "<stdin>"
	} else {
		f, err := os.Open(name)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		r = f
	}

	diags, err := l.lint(r)
	if err != nil {
		return 0, err
	}
	for _, d := range diags {
		fmt.Fprintf(stdout, "%s: %v\n", name, d)
	}
	slog.Info("linted", "file", name, "errors", len(diags))
	return len(diags), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
