package hunkgrep

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
)

type Engine string

const (
	EngineRE2       Engine = "re2"
	EngineBacktrack Engine = "backtrack"
)

const backtrackTimeout = 2 * time.Second

func ParseEngine(s string) (Engine, error) {
	switch Engine(s) {
	case "", EngineRE2:
		return EngineRE2, nil
	case EngineBacktrack:
		return EngineBacktrack, nil
	}
	return EngineRE2, fmt.Errorf("%w: %q", ErrInvalidEngine, s)
}

// CompilePattern builds a Matcher for expr. An empty expr returns a nil
// Matcher, which the Filter treats as unset.
func CompilePattern(expr string, engine Engine, ignoreCase bool) (Matcher, error) {
	if expr == "" {
		return nil, nil
	}

	switch engine {
	case "", EngineRE2:
		if ignoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
		}
		return re, nil

	case EngineBacktrack:
		opts := regexp2.None
		if ignoreCase {
			opts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(expr, opts)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
		}
		re.MatchTimeout = backtrackTimeout
		return &backtrackMatcher{re: re}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidEngine, engine)
}

type backtrackMatcher struct {
	re *regexp2.Regexp
}

// MatchString treats a timed out match as no match.
func (m *backtrackMatcher) MatchString(s string) bool {
	ok, err := m.re.MatchString(s)
	return err == nil && ok
}
