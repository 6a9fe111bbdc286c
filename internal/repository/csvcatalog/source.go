// Package csvcatalog reads assessment catalog records from a CSV export.
package csvcatalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/hireline/assessrec/internal/domain/catalog"
)

// Source reads catalog records from a CSV file with a header row.
type Source struct {
	path string
}

// New creates a CSV catalog source for the given file path.
func New(path string) *Source {
	return &Source{path: path}
}

// Records implements the ingest record source. Column order is taken from
// the header row; missing optional columns leave zero values.
func (s *Source) Records(ctx context.Context) ([]catalog.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are tolerated, missing cells read as empty

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"name", "url"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog missing required column %q", required)
		}
	}

	var records []catalog.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}

		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}

		records = append(records, parseRow(row, cols))
	}

	return records, nil
}

func parseRow(row []string, cols map[string]int) catalog.Record {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	duration, known := catalog.ParseDuration(cell("duration"))

	return catalog.Record{
		Name:          cell("name"),
		URL:           cell("url"),
		Description:   cell("description"),
		Duration:      duration,
		DurationKnown: known,
		RemoteTesting: catalog.ParseBool(cell("remote_testing")),
		AdaptiveIRT:   catalog.ParseBool(cell("adaptive_irt")),
		JobLevels:     catalog.NormalizeList(cell("job_levels")),
		Languages:     catalog.NormalizeList(cell("languages")),
		TestTypes:     catalog.NormalizeList(cell("test_type")),
	}
}
