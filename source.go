package hunkgrep

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

type SourceProvider struct {
	stdin         io.Reader
	readClipboard func() (string, error)
}

func NewSourceProvider() *SourceProvider {
	return &SourceProvider{stdin: os.Stdin, readClipboard: clipboard.ReadAll}
}

// Open returns the diff stream selected by cfg and a name for it. A named
// file wins over the clipboard, which wins over stdin.
func (sp *SourceProvider) Open(cfg *Config) (io.ReadCloser, string, error) {
	rc, name, err := sp.open(cfg)
	if err != nil || !cfg.Markdown {
		return rc, name, err
	}
	defer rc.Close()

	doc, err := io.ReadAll(rc)
	if err != nil {
		return nil, name, fmt.Errorf("failed to read %s: %w", name, err)
	}
	text, err := ExtractDiffText(doc)
	if err != nil {
		return nil, name, fmt.Errorf("failed to parse markdown from %s: %w", name, err)
	}
	return io.NopCloser(strings.NewReader(text)), name, nil
}

func (sp *SourceProvider) open(cfg *Config) (io.ReadCloser, string, error) {
	switch {
	case cfg.InputPath != "":
		f, err := os.Open(cfg.InputPath)
		if err != nil {
			return nil, cfg.InputPath, fmt.Errorf("can't open %s for reading: %w", cfg.InputPath, err)
		}
		return f, cfg.InputPath, nil

	case cfg.Clipboard:
		c, err := sp.readClipboard()
		if err != nil {
			return nil, "clipboard", fmt.Errorf("can't read clipboard: %w", err)
		}
		return io.NopCloser(strings.NewReader(c)), "clipboard", nil

	default:
		if sp.stdin == nil {
			return nil, "stdin", fmt.Errorf("can't open stdin for reading")
		}
		return io.NopCloser(sp.stdin), "stdin", nil
	}
}
