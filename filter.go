package hunkgrep

import (
	"bufio"
	"fmt"
	"io"
)

// Matcher reports whether text contains a match for a compiled pattern.
type Matcher interface {
	MatchString(s string) bool
}

type SelectionMode int

const (
	ModeOne SelectionMode = iota
	ModeAll
)

func (m SelectionMode) String() string {
	if m == ModeAll {
		return "all"
	}
	return "one"
}

func ParseMode(s string) (SelectionMode, error) {
	switch s {
	case "", "one":
		return ModeOne, nil
	case "all":
		return ModeAll, nil
	}
	return ModeOne, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Filter decides which hunks are printed. A nil matcher places no
// constraint on its side of the diff.
type Filter struct {
	Removed Matcher
	Added   Matcher
	Mode    SelectionMode
}

func (f Filter) matcherFor(kind LineKind) Matcher {
	switch kind {
	case KindRemoved:
		return f.Removed
	case KindAdded:
		return f.Added
	}
	return nil
}

// Selects walks the body of b and reports whether the hunk is printed.
//
// In ModeOne the first matching line selects the hunk and a hunk with no
// match is dropped. In ModeAll matching lines are passed over, the first
// line that fails to match ends the scan, and the hunk is printed either way.
func (f Filter) Selects(b Batch) bool {
	all := f.Mode == ModeAll
	for _, l := range b.Body() {
		m := f.matcherFor(l.Kind)
		if m == nil {
			continue
		}
		if m.MatchString(l.Content()) {
			if !all {
				return true
			}
		} else if all {
			break
		}
	}
	return all
}

// Process writes every line of b to w when the hunk is selected.
func (f Filter) Process(b Batch, w io.Writer) (bool, error) {
	if !f.Selects(b) {
		return false, nil
	}
	return true, writeBatch(w, b)
}

func writeBatch(w io.Writer, b Batch) error {
	for _, l := range b.Lines {
		if _, err := io.WriteString(w, l.Text); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Printer connects a Filter to a Scanner, writing selected hunks to an
// output stream.
type Printer struct {
	filter Filter
	out    *bufio.Writer
	stats  FilterStats
}

func NewPrinter(f Filter, w io.Writer) *Printer {
	return &Printer{filter: f, out: bufio.NewWriter(w)}
}

func (p *Printer) HandleBatch(b Batch) error {
	if !b.Complete() {
		return fmt.Errorf("incomplete hunk at line %d", firstLineNumber(b))
	}
	ok, err := p.filter.Process(b, p.out)
	if err != nil {
		return fmt.Errorf("failed to write hunk: %w", err)
	}
	if ok {
		p.stats.Selected++
	} else {
		p.stats.Rejected++
	}
	return nil
}

func (p *Printer) Flush() error { return p.out.Flush() }

func (p *Printer) Stats() FilterStats { return p.stats }

func firstLineNumber(b Batch) int {
	if len(b.Lines) == 0 {
		return 0
	}
	return b.Lines[0].Number
}
