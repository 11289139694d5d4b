package hunkgrep

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// BatchSink receives every hunk the scanner closes.
type BatchSink interface {
	HandleBatch(b Batch) error
}

type BatchSinkFunc func(b Batch) error

func (f BatchSinkFunc) HandleBatch(b Batch) error { return f(b) }

type WarnFunc func(w Warning)

// Scanner rebuilds hunks from a stream of diff lines. It is fed one line at
// a time and hands each closed batch to its sink.
type Scanner struct {
	sink  BatchSink
	warn  WarnFunc
	state ScannerState
	batch []Line
	lineN int
	stats ScanStats
}

func NewScanner(sink BatchSink, warn WarnFunc) *Scanner {
	return &Scanner{sink: sink, warn: warn, state: AwaitingMinus}
}

func (s *Scanner) State() ScannerState { return s.state }

func (s *Scanner) Stats() ScanStats { return s.stats }

// Feed processes one line without its terminator.
func (s *Scanner) Feed(text string) error {
	s.lineN++
	s.stats.Lines++

	if text == "" {
		s.stats.Empty++
		s.report(WarnEmptyLine, text)
		return nil
	}

	if s.state == InHunkBody && !isHunkContent(text) {
		if err := s.closeBatch(); err != nil {
			return err
		}
	}

	switch s.state {
	case AwaitingMinus:
		if strings.HasPrefix(text, "---") {
			s.batch = []Line{s.line(KindMinusHeader, text)}
			s.state = AwaitingPlus
			return nil
		}
		s.stats.Dropped++

	case AwaitingPlus:
		if strings.HasPrefix(text, "+++") {
			s.batch = append(s.batch, s.line(KindPlusHeader, text))
			s.state = AwaitingAt
			return nil
		}
		s.stats.Dropped++
		s.report(WarnExpectedPlus, text)

	case AwaitingAt:
		if strings.HasPrefix(text, "@@") {
			s.batch = append(s.batch, s.line(KindHunkHeader, text))
			s.state = InHunkBody
			return nil
		}
		s.stats.Dropped++
		s.report(WarnExpectedAt, text)

	case InHunkBody:
		kind, ok := classifyBody(text)
		if !ok {
			s.stats.Dropped++
			s.report(WarnBadHunkLine, text)
			return nil
		}
		s.batch = append(s.batch, s.line(kind, text))
	}
	return nil
}

// Flush closes a hunk that is still open when input ends.
func (s *Scanner) Flush() error {
	if s.state == InHunkBody {
		return s.closeBatch()
	}
	// Headers seen without a @@ line never form a batch.
	s.stats.Dropped += len(s.batch)
	s.batch = nil
	s.state = AwaitingMinus
	return nil
}

func (s *Scanner) closeBatch() error {
	b := Batch{Lines: s.batch}
	s.batch = nil
	s.state = AwaitingMinus
	s.stats.Batches++
	s.stats.Batched += len(b.Lines)
	if s.sink == nil {
		return nil
	}
	if err := s.sink.HandleBatch(b); err != nil {
		return fmt.Errorf("failed to handle hunk ending at line %d: %w", s.lineN, err)
	}
	return nil
}

func (s *Scanner) line(kind LineKind, text string) Line {
	return Line{Kind: kind, Text: text, Number: s.lineN}
}

func (s *Scanner) report(kind WarningKind, text string) {
	s.stats.Warnings++
	if s.warn != nil {
		s.warn(Warning{Kind: kind, Line: s.lineN, Text: text, State: s.state})
	}
}

func isHunkContent(text string) bool {
	switch text[0] {
	case '+', '-', ' ':
		return true
	}
	return false
}

func classifyBody(text string) (LineKind, bool) {
	switch text[0] {
	case '+':
		return KindAdded, true
	case '-':
		return KindRemoved, true
	case ' ':
		return KindContext, true
	}
	return KindOther, false
}

// ScanLines runs a fresh Scanner over r until it is exhausted. Lines have
// no length limit; a trailing "\n" or "\r\n" is not part of the line.
func ScanLines(r io.Reader, sink BatchSink, warn WarnFunc) (ScanStats, error) {
	s := NewScanner(sink, warn)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return s.Stats(), fmt.Errorf("failed to read input: %w", err)
		}
		if line != "" {
			if ferr := s.Feed(trimEOL(line)); ferr != nil {
				return s.Stats(), ferr
			}
		}
		if err == io.EOF {
			break
		}
	}
	err := s.Flush()
	return s.Stats(), err
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
