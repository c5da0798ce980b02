package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter writes JSON output.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
	}
}

// Write serializes the document as JSON.
func (w *JSONWriter) Write(data any) error {
	var output []byte
	var err error

	if w.pretty {
		output, err = json.MarshalIndent(data, "", w.indent)
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return nil
}

// Close flushes the writer.
func (w *JSONWriter) Close() error {
	return w.w.Flush()
}
