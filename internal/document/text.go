package document

import (
	"fmt"
	"io"
)

// TextWriter renders the list as plain UTF-8 text.
type TextWriter struct{}

func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

func (t *TextWriter) Write(w io.Writer, title string, lines []string) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (t *TextWriter) ContentType() string { return "text/plain; charset=utf-8" }

func (t *TextWriter) Extension() string { return "txt" }
