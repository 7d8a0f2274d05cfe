package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// jsonObjectKeysInOrder returns the top-level field names of a JSON object
// literal in the order they appear, erroring if line is not a JSON object.
func jsonObjectKeysInOrder(line string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("first line is not a JSON object")
	}

	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("malformed JSON object key")
		}
		keys = append(keys, key)

		// Skip the value, which may itself be a nested structure.
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// processJSONLines parses the first non-empty line as a JSON object and
// renders a schema-plus-one-sample-line summary (§4.C).
func processJSONLines(data []byte) (string, error) {
	text := processDefault(data)
	lines := strings.Split(text, "\n")

	var firstLine string
	var rest []string
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			firstLine = line
			rest = lines[i+1:]
			break
		}
	}
	if firstLine == "" {
		return "", errors.New("file is empty or has no valid lines")
	}

	fields, err := jsonObjectKeysInOrder(firstLine)
	if err != nil {
		return "", fmt.Errorf("parsing first line as JSON object: %w", err)
	}
	if len(fields) == 0 {
		return "", errors.New("JSON object has no fields")
	}

	remaining := 0
	for _, line := range rest {
		if strings.TrimSpace(line) != "" {
			remaining++
		}
	}

	var b strings.Builder
	b.WriteString("JSONL Schema (1 sample line):\n")
	fmt.Fprintf(&b, "Fields: %s\n", strings.Join(fields, ", "))
	fmt.Fprintf(&b, "Sample: %s\n", firstLine)
	if remaining > 0 {
		fmt.Fprintf(&b, "... [%d more lines omitted]\n", remaining)
	}
	return b.String(), nil
}
