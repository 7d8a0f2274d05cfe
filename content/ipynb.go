package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

type notebook struct {
	Cells []notebookCell `json:"cells"`
}

// processJupyter parses a .ipynb file and renders a cell-count summary plus
// up to the first three code cells (§4.C).
func processJupyter(data []byte) (string, error) {
	var nb notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return "", fmt.Errorf("parsing .ipynb file as JSON: %w", err)
	}

	var codeCells []notebookCell
	var markdownCount, rawCount int
	for _, c := range nb.Cells {
		switch c.CellType {
		case "code":
			codeCells = append(codeCells, c)
		case "markdown":
			markdownCount++
		case "raw":
			rawCount++
		}
	}

	var b strings.Builder
	b.WriteString("Jupyter Notebook Summary:\n")
	fmt.Fprintf(&b, "Total cells: %d (%d code, %d markdown, %d raw)\n\n",
		len(nb.Cells), len(codeCells), markdownCount, rawCount)

	if len(codeCells) == 0 {
		b.WriteString("(No code cells found)\n")
		return b.String(), nil
	}

	maxShow := len(codeCells)
	if maxShow > 3 {
		maxShow = 3
	}

	for i := 0; i < maxShow; i++ {
		fmt.Fprintf(&b, "Code Cell #%d:\n", i+1)
		code := cellSource(codeCells[i].Source)
		b.WriteString("```python\n")
		b.WriteString(code)
		if !strings.HasSuffix(code, "\n") {
			b.WriteByte('\n')
		}
		b.WriteString("```\n\n")
	}

	if len(codeCells) > maxShow {
		fmt.Fprintf(&b, "... [%d more code cells omitted]\n", len(codeCells)-maxShow)
	}

	return b.String(), nil
}

// cellSource decodes a notebook cell's "source" field, which is either a
// plain string or an array of line strings to be joined.
func cellSource(raw json.RawMessage) string {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asArray []string
	if err := json.Unmarshal(raw, &asArray); err == nil {
		return strings.Join(asArray, "")
	}
	return "(Unable to extract source)"
}
