package formats

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Faultbox/levelgeo/pkg/fixed"
)

// Blockmap grid geometry.
const (
	MapBlockUnits = 128                // cell size in map units
	MapBlockShift = fixed.FracBits + 7 // fixed -> cell index shift
	MapBlockSize  = MapBlockUnits << fixed.FracBits
)

const (
	blockmapHeaderWords = 4
	blockListEnd        = -1
)

// Blockmap format errors.
var (
	ErrTruncatedBlockmap = errors.New("truncated BLOCKMAP data")
)

// Blockmap is a BLOCKMAP lump normalized to host byte order.
//
// Words holds the whole lump, header included, so offsets stored in the
// per-cell table index Words directly.
type Blockmap struct {
	OriginX fixed.Fixed
	OriginY fixed.Fixed
	Width   int // columns
	Height  int // rows
	Words   []int16
}

// ParseBlockmap parses a BLOCKMAP lump. Only the header is validated; a
// cell table that disagrees with Width*Height is kept as-is and guarded at
// query time.
func ParseBlockmap(data []byte) (*Blockmap, error) {
	count := len(data) / 2
	if count < blockmapHeaderWords {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedBlockmap, len(data))
	}

	words := make([]int16, count)
	for i := range words {
		words[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}

	return &Blockmap{
		OriginX: fixed.FromInt(words[0]),
		OriginY: fixed.FromInt(words[1]),
		Width:   int(words[2]),
		Height:  int(words[3]),
		Words:   words,
	}, nil
}

// NumCells returns Width*Height.
func (b *Blockmap) NumCells() int {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}

// Offsets returns the per-cell offset table that follows the header.
// It is cut short when the lump holds fewer entries than NumCells.
func (b *Blockmap) Offsets() []int16 {
	end := blockmapHeaderWords + b.NumCells()
	if end > len(b.Words) {
		end = len(b.Words)
	}
	return b.Words[blockmapHeaderWords:end]
}

// CellOf returns the cell containing (x, y), and false when the point lies
// outside the grid.
func (b *Blockmap) CellOf(x, y fixed.Fixed) (col, row int, ok bool) {
	col = int((x - b.OriginX) >> MapBlockShift)
	row = int((y - b.OriginY) >> MapBlockShift)
	ok = col >= 0 && row >= 0 && col < b.Width && row < b.Height
	return col, row, ok
}

// CellLines returns the line numbers stored for a cell, up to the 0xFFFF
// terminator. The leading 0 written by node builders is returned like any
// other entry, as the collision code walks it as line 0. Offsets are read
// as unsigned so that lumps larger than 64KB address correctly; a cell whose
// list runs off the lump yields what was read before the end.
func (b *Blockmap) CellLines(col, row int) []int {
	if col < 0 || row < 0 || col >= b.Width || row >= b.Height {
		return nil
	}
	index := blockmapHeaderWords + row*b.Width + col
	if index >= len(b.Words) {
		return nil
	}

	var lines []int
	for i := int(uint16(b.Words[index])); i < len(b.Words); i++ {
		if b.Words[i] == blockListEnd {
			break
		}
		lines = append(lines, int(uint16(b.Words[i])))
	}
	return lines
}
