package content

import "bytes"

// sniffLimit bounds how much of a file is inspected for binary detection
// (§4.C "sniff the first ≤8 KiB").
const sniffLimit = 8 * 1024

var magicNumbers = [][]byte{
	{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, // PNG
	{0xFF, 0xD8, 0xFF},                               // JPEG
	{0x7F, 0x45, 0x4C, 0x46},                         // ELF
	{0x25, 0x50, 0x44, 0x46},                         // PDF
	{0x47, 0x49, 0x46, 0x38},                         // GIF87a/GIF89a
	{0x50, 0x4B, 0x03, 0x04},                         // ZIP (also docx/jar/etc.)
}

// IsBinary heuristically identifies binary content by sniffing the leading
// bytes: known magic numbers, NUL bytes, or a high density of non-text
// bytes (§4.C Binary detection).
func IsBinary(data []byte) bool {
	sample := data
	if len(sample) > sniffLimit {
		sample = sample[:sniffLimit]
	}
	if len(sample) == 0 {
		return false
	}

	for _, magic := range magicNumbers {
		if bytes.HasPrefix(sample, magic) {
			return true
		}
	}

	if bytes.IndexByte(sample, 0x00) >= 0 {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if isTextByte(b) {
			continue
		}
		nonText++
	}
	return float64(nonText)/float64(len(sample)) > 0.30
}

// isTextByte reports whether b is a printable ASCII character, common
// whitespace, or a UTF-8 continuation/lead byte (>= 0x80).
func isTextByte(b byte) bool {
	if b >= 0x20 && b < 0x7F {
		return true
	}
	switch b {
	case '\n', '\r', '\t', '\f', '\v', 0x1B:
		return true
	}
	return b >= 0x80
}
