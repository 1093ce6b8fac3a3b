package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	ical "github.com/luxifer/go-ical"
	"github.com/luxifer/go-ical/internal/metric"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// A line is a logical content line, its folds removed.
type line struct {
	n    int    // number of the physical line it starts on
	text string // including its line terminator
}

// unfold splits s into logical lines. A physical line starting with a space
// or a tab continues the previous one: the line break and that one
// whitespace character are removed.
func unfold(s string) []line {
	var lines []line
	for i, phys := range strings.SplitAfter(s, "\n") {
		if phys == "" {
			continue
		}
		if (phys[0] == ' ' || phys[0] == '\t') && len(lines) > 0 {
			last := &lines[len(lines)-1]
			last.text = strings.TrimSuffix(strings.TrimSuffix(last.text, "\n"), "\r") + phys[1:]
			continue
		}
		lines = append(lines, line{n: i + 1, text: phys})
	}
	return lines
}

// A linter checks iCalendar streams line by line.
type linter struct {
	strict  bool // decode values, not only the content line grammar
	metrics *metric.Metrics
}

// lint returns one error per rejected logical line, each prefixed with
// the line number. The returned error is for reading r.
func (l *linter) lint(r io.Reader) ([]error, error) {
	// UTF-8 unless a BOM says otherwise. Invalid UTF-8 is passed through
	// for the grammar to reject.
	decoder := unicode.BOMOverride(transform.Nop)
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, err
	}

	var diags []error
	for _, ln := range unfold(string(data)) {
		l.metrics.Line()
		if err := l.check(ln.text); err != nil {
			l.metrics.Error(ruleOf(err))
			diags = append(diags, fmt.Errorf("line %d: %w", ln.n, err))
		}
	}
	return diags, nil
}

func (l *linter) check(text string) error {
	cl, _, err := ical.ParseContentLine(text)
	if err != nil {
		return err
	}
	if !l.strict {
		return nil
	}
	p, err := cl.Property()
	if err != nil {
		return err
	}
	slog.Debug("property", "name", p.Name(), "type", p.Value().Type())
	return nil
}

// ruleOf returns the metric label of a lint error.
func ruleOf(err error) string {
	var se *ical.SyntaxError
	switch {
	case errors.As(err, &se):
		return se.Rule
	case errors.Is(err, ical.ErrDuplicateParam):
		return "duplicate-param"
	}
	return "other"
}
