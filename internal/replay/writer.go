package replay

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Writer emits replay records.
type Writer interface {
	Write(Record) error
	Flush() error
}

// Output formats accepted by NewWriter.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// NewWriter returns a writer for format ("json" or "csv").
func NewWriter(format string, w io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "jsonl":
		return NewJSONWriter(w), nil
	case FormatCSV:
		return NewCSVWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json or csv)", format)
	}
}

// JSONWriter writes one JSON object per line.
type JSONWriter struct {
	enc *json.Encoder
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{enc: json.NewEncoder(w)}
}

func (w *JSONWriter) Write(rec Record) error {
	return w.enc.Encode(rec)
}

func (w *JSONWriter) Flush() error { return nil }

// CSVHeader is the column layout written by CSVWriter.
var CSVHeader = []string{"frame", "is_correct", "score", "feedback", "count", "duration"}

// CSVWriter writes a header row followed by one row per record. count is
// blank for hold exercises and duration is blank for rep exercises.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (w *CSVWriter) Write(rec Record) error {
	if !w.wroteHeader {
		if err := w.w.Write(CSVHeader); err != nil {
			return err
		}
		w.wroteHeader = true
	}

	count, duration := "", ""
	if rec.Count != nil {
		count = strconv.Itoa(*rec.Count)
	}
	if rec.Duration != nil {
		duration = strconv.FormatFloat(*rec.Duration, 'f', 3, 64)
	}
	return w.w.Write([]string{
		strconv.Itoa(rec.Frame),
		strconv.FormatBool(rec.IsCorrect),
		strconv.Itoa(rec.Score),
		string(rec.Feedback),
		count,
		duration,
	})
}

func (w *CSVWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
