package wad

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/Faultbox/levelgeo/pkg/encoding"
)

// Writer assembles a WAD archive in memory. Lumps are written in the order
// they were added, followed by the directory.
type Writer struct {
	magic string
	names []string
	data  [][]byte
}

// NewWriter creates a writer for an archive with the given magic
// (MagicIWAD or MagicPWAD).
func NewWriter(magic string) *Writer {
	return &Writer{magic: magic}
}

// Add appends a lump. A nil data slice produces a zero-size marker lump.
func (w *Writer) Add(name string, data []byte) {
	w.names = append(w.names, name)
	w.data = append(w.data, data)
}

// WriteTo writes the archive to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	buf := new(bytes.Buffer)

	offset := int32(headerSize)
	entries := make([]dirEntry, len(w.names))
	for i, name := range w.names {
		entries[i] = dirEntry{
			FilePos: offset,
			Size:    int32(len(w.data[i])),
			Name:    encoding.PutFixedName(name),
		}
		offset += int32(len(w.data[i]))
	}

	var header Header
	copy(header.Magic[:], w.magic)
	header.NumLumps = int32(len(w.names))
	header.InfoTableOfs = offset

	binary.Write(buf, binary.LittleEndian, &header)
	for _, d := range w.data {
		buf.Write(d)
	}
	binary.Write(buf, binary.LittleEndian, entries)

	return buf.WriteTo(out)
}

// Bytes returns the encoded archive.
func (w *Writer) Bytes() []byte {
	buf := new(bytes.Buffer)
	w.WriteTo(buf)
	return buf.Bytes()
}
