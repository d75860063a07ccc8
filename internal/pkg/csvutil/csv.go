// Package csvutil writes RFC 4180 CSV attachments with CRLF line endings.
package csvutil

import (
	"encoding/csv"
	"io"
	"strings"
)

// EscapeValue quotes a single CSV field when it contains a comma, quote or
// newline, doubling any embedded quotes.
func EscapeValue(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// WriteRows writes a header row followed by data rows, CRLF-terminated.
func WriteRows(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
