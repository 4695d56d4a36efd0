// Package source reads the raw job array produced by the scrapers. Two
// forms are accepted: a plain JSON array (jobs.json) and the script form
// assigned to window.JOBS_DATA (jobs.js).
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/amishk599/jobboard/internal/model"
)

const jsGlobal = "window.JOBS_DATA"

// ErrNotArray is returned when the payload is not a JSON array of objects.
var ErrNotArray = errors.New("job data is not an array of objects")

// LoadFile reads raw records from path.
func LoadFile(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening job data: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// LoadFiles reads every path concurrently and returns their records
// concatenated in argument order. The first read error cancels the rest.
func LoadFiles(ctx context.Context, paths []string) ([]model.RawRecord, error) {
	parts := make([][]model.RawRecord, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := LoadFile(path)
			if err != nil {
				return err
			}
			parts[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []model.RawRecord
	for _, p := range parts {
		records = append(records, p...)
	}
	return records, nil
}

// Parse reads raw records from r. Non-object array elements are skipped.
func Parse(r io.Reader) ([]model.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading job data: %w", err)
	}
	data = stripScript(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}

	records := make([]model.RawRecord, 0, len(items))
	for _, item := range items {
		var rec model.RawRecord
		if err := json.Unmarshal(item, &rec); err != nil || rec == nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// stripScript turns `window.JOBS_DATA = [...];` into the bare array.
func stripScript(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte(jsGlobal)) {
		return trimmed
	}
	trimmed = bytes.TrimPrefix(trimmed, []byte(jsGlobal))
	trimmed = bytes.TrimSpace(trimmed)
	trimmed = bytes.TrimPrefix(trimmed, []byte("="))
	trimmed = bytes.TrimSpace(trimmed)
	trimmed = bytes.TrimSuffix(trimmed, []byte(";"))
	return trimmed
}

// Write stores records as a JSON array at jsonPath and as the script form
// at jsPath. Either path may be empty to skip that file.
func Write(records []model.RawRecord, jsonPath, jsPath string) error {
	if records == nil {
		records = []model.RawRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding job data: %w", err)
	}

	if jsonPath != "" {
		if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", jsonPath, err)
		}
	}
	if jsPath != "" {
		var b bytes.Buffer
		b.WriteString(jsGlobal + " = ")
		b.Write(data)
		b.WriteString(";")
		if err := os.WriteFile(jsPath, b.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", jsPath, err)
		}
	}
	return nil
}
