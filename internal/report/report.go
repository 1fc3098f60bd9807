// Package report renders classified jobfolders as JSON or delimited text.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strings"

	"github.com/atomsim/jobtool/internal/domain"
)

// Format selects the output rendering
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrUnsupportedFormat is returned for format names outside the recognized set
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat parses a user-supplied format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Record is the JSON shape of one result. Status is omitted entirely in
// path-only output.
type Record struct {
	Path   string        `json:"path"`
	Status domain.Status `json:"status,omitempty"`
}

// Write renders results to w in the given format
func Write(w io.Writer, results iter.Seq[domain.JobResult], format Format, withStatus bool) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, results, withStatus)
	case FormatCSV:
		return WriteCSV(w, results, withStatus)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteJSON drains results and writes them as one indented JSON array.
// JSON needs its closing bracket, so this cannot stream; the whole sequence
// is materialized first.
func WriteJSON(w io.Writer, results iter.Seq[domain.JobResult], withStatus bool) error {
	records := []Record{}
	for r := range results {
		rec := Record{Path: posixPath(r.Path)}
		if withStatus {
			rec.Status = r.Status
		}
		records = append(records, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteCSV writes a header line followed by one line per result, emitting
// each line as the sequence produces it.
func WriteCSV(w io.Writer, results iter.Seq[domain.JobResult], withStatus bool) error {
	header := "path\n"
	if withStatus {
		header = "path, status\n"
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	for r := range results {
		line := posixPath(r.Path)
		if withStatus {
			line += ", " + r.Status.String()
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// posixPath renders an absolute path with forward slashes on every platform
func posixPath(path string) string {
	return filepath.ToSlash(path)
}
