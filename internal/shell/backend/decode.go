package backend

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// DecodeLine turns raw process output into loggable text. Invalid UTF-8 is
// replaced with U+FFFD and a trailing line terminator is dropped. It never fails.
func DecodeLine(b []byte) string {
	b = bytes.TrimRight(b, "\r\n")
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
