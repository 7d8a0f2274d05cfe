package content

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a leading UTF-8 byte-order mark, if present (§6 Wrap
// format / §8 round-trip property).
func StripBOM(data []byte) []byte {
	if len(data) >= len(utf8BOM) &&
		data[0] == utf8BOM[0] && data[1] == utf8BOM[1] && data[2] == utf8BOM[2] {
		return data[len(utf8BOM):]
	}
	return data
}

// ContainsReplacementChar reports whether s contains the Unicode
// replacement character U+FFFD, used to detect failed/lossy decodes
// (§4.C, Invariant 6).
func ContainsReplacementChar(s string) bool {
	for _, r := range s {
		if r == '�' {
			return true
		}
	}
	return false
}
