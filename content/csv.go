package content

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// processDelimited parses data as delimiter-separated values and renders a
// schema-plus-one-sample-row summary (§4.C).
func processDelimited(data []byte, delimiter rune, schemaName string) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1 // permit variable field counts

	headers, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errors.New("file has no headers")
		}
		return "", fmt.Errorf("reading headers: %w", err)
	}
	if len(headers) == 0 {
		return "", errors.New("file has no headers")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Schema (1 sample row):\n", schemaName)
	fmt.Fprintf(&b, "Headers: %s\n", strings.Join(headers, ", "))

	firstRow, err := r.Read()
	if errors.Is(err, io.EOF) {
		b.WriteString("(No data rows found)\n")
		return b.String(), nil
	}
	if err != nil {
		return "", fmt.Errorf("reading first data row: %w", err)
	}

	values := make([]string, len(firstRow))
	for i, field := range firstRow {
		values[i] = `"` + field + `"`
	}
	fmt.Fprintf(&b, "Sample: %s\n", strings.Join(values, ", "))

	remaining := 0
	for {
		_, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			break
		}
		remaining++
	}
	if remaining > 0 {
		fmt.Fprintf(&b, "... [%d more rows omitted]\n", remaining)
	}

	return b.String(), nil
}
