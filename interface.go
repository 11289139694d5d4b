package hunkgrep

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Grep filters a diff held in memory and returns the selected hunks.
// Diagnostics are discarded.
func Grep(content string, config Config) (string, error) {
	var out bytes.Buffer
	app, err := NewApp(&config, &out, io.Discard)
	if err != nil {
		return "", fmt.Errorf("failed to initialize hunkgrep app: %w", err)
	}

	if _, err := app.Run(strings.NewReader(content)); err != nil {
		return "", err
	}
	return out.String(), nil
}

// GrepHunks is Grep returning each selected hunk as its own batch.
func GrepHunks(content string, config Config) ([]Batch, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	filter, err := config.Filter()
	if err != nil {
		return nil, err
	}

	var hunks []Batch
	sink := BatchSinkFunc(func(b Batch) error {
		if filter.Selects(b) {
			hunks = append(hunks, b)
		}
		return nil
	})
	if _, err := ScanLines(strings.NewReader(content), sink, nil); err != nil {
		return nil, err
	}
	return hunks, nil
}
