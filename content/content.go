// Package content implements the per-extension strategy pattern that turns
// raw file bytes into LLM-friendly text (§4.C). The set of processors is
// closed: dispatch is a type switch over Kind, not an extensible registry
// (§9 "Dynamic dispatch over processors").
package content

import (
	"log"
	"strings"
	"unicode/utf8"
)

// Kind identifies which processor handles a given extension.
type Kind int

const (
	KindDefault Kind = iota
	KindCSV
	KindTSV
	KindJSONLines
	KindJupyter
)

// KindForExtension maps a lowercased extension (without the leading dot)
// to the processor that handles it.
func KindForExtension(extension string) Kind {
	switch strings.ToLower(extension) {
	case "csv":
		return KindCSV
	case "tsv":
		return KindTSV
	case "jsonl", "ndjson":
		return KindJSONLines
	case "ipynb":
		return KindJupyter
	default:
		return KindDefault
	}
}

// Process dispatches content to the processor for kind, falling back to the
// default processor (with a logged warning) on any processor error (§4.C,
// §7 Parse error).
func Process(kind Kind, data []byte, path string) string {
	var (
		out string
		err error
	)
	switch kind {
	case KindCSV:
		out, err = processDelimited(data, ',', "CSV")
	case KindTSV:
		out, err = processDelimited(data, '\t', "TSV")
	case KindJSONLines:
		out, err = processJSONLines(data)
	case KindJupyter:
		out, err = processJupyter(data)
	default:
		out, err = processDefault(data), nil
	}
	if err != nil {
		log.Printf("content: %s processing failed for %s: %v, falling back to default", kindName(kind), path, err)
		return processDefault(data)
	}
	return out
}

func kindName(k Kind) string {
	switch k {
	case KindCSV:
		return "CSV"
	case KindTSV:
		return "TSV"
	case KindJSONLines:
		return "JSONL"
	case KindJupyter:
		return "Jupyter notebook"
	default:
		return "default"
	}
}

// processDefault performs lossy UTF-8 decoding: invalid byte sequences are
// replaced with the Unicode replacement character, mirroring
// String::from_utf8_lossy in the original implementation.
func processDefault(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		b.WriteRune(r)
		data = data[size:]
	}
	return b.String()
}
