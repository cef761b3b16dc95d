// Package textutil normalizes CMakeLists contents before matching and after
// patching. All matching runs over LF-only UTF-8 text.
package textutil

import "bytes"

// NormalizeUTF8LF converts CRLF/CR to LF and ensures the output is valid
// UTF-8 by replacing invalid byte sequences with the Unicode replacement
// character.
func NormalizeUTF8LF(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return bytes.ToValidUTF8(b, []byte("�"))
}

// EnsureTrailingLF appends a single \n if not already present.
func EnsureTrailingLF(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] == '\n' {
		return b
	}
	return append(b, '\n')
}
