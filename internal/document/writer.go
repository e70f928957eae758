// Package document renders plain text lines into downloadable documents.
package document

import "io"

// DefaultLinesPerPage bounds how many lines a PDF page holds before a
// break.
const DefaultLinesPerPage = 40

// Writer renders a titled list of lines to an output stream.
type Writer interface {
	// Write renders the document. The title appears once at the top.
	Write(w io.Writer, title string, lines []string) error
	// ContentType is the MIME type of the rendered document.
	ContentType() string
	// Extension is the file extension without the dot.
	Extension() string
}

// ForFormat picks a writer by format name. Unknown formats fall back to
// PDF.
func ForFormat(format string) Writer {
	switch format {
	case "txt", "text":
		return NewTextWriter()
	default:
		return NewPDFWriter()
	}
}
