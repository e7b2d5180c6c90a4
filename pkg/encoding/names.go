// Package encoding provides text encoding utilities for the fixed-size,
// null-padded names used by WAD lumps, textures and flats.
package encoding

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// NameSize is the on-disk width of a lump, texture or flat name.
const NameSize = 8

// CP437ToUTF8 converts code page 437 bytes to a UTF-8 string.
// Returns the original bytes as a string if conversion fails.
func CP437ToUTF8(data []byte) string {
	result, _, err := transform.Bytes(charmap.CodePage437.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// UTF8ToCP437 converts a UTF-8 string to code page 437 bytes.
// Returns the original bytes if conversion fails.
func UTF8ToCP437(s string) []byte {
	result, _, err := transform.Bytes(charmap.CodePage437.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// TrimNullBytes removes everything from the first null byte on.
func TrimNullBytes(data []byte) []byte {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return data[:i]
	}
	return data
}

// FixedName decodes a fixed-size name field. The result stops at the first
// null byte and is upper-cased, since name lookups are case-insensitive.
func FixedName(data []byte) string {
	if len(data) > NameSize {
		data = data[:NameSize]
	}
	return NormalizeName(CP437ToUTF8(TrimNullBytes(data)))
}

// NormalizeName upper-cases a name and cuts it to NameSize characters.
func NormalizeName(name string) string {
	name = strings.ToUpper(name)
	if r := []rune(name); len(r) > NameSize {
		name = string(r[:NameSize])
	}
	return name
}

// PutFixedName encodes name into an 8-byte null-padded field.
func PutFixedName(name string) [NameSize]byte {
	var out [NameSize]byte
	copy(out[:], UTF8ToCP437(NormalizeName(name)))
	return out
}
