package level

import (
	"encoding/binary"

	"go.uber.org/zap"
)

// Values written over the missing tail of a short REJECT lump. They are
// the bytes that followed the matrix in memory when the lump was read
// into a buffer of its own size.
const (
	rejectPadTag    = 50       // allocation purge level
	rejectPadZoneID = 0x1d4a11 // zone block id
	rejectPadSize   = 16
	rejectPadFill   = 0xf00 // only the low byte survives the fill
)

// Reject is the sector visibility matrix. Bit a*n+b set means nothing in
// sector a can see sector b.
type Reject struct {
	Data       []byte
	NumSectors int
	Padded     bool // the lump was short and Data is a padded copy
}

// RejectSize returns the byte size of a matrix for numSectors sectors.
func RejectSize(numSectors int) int {
	return (numSectors*numSectors + 7) / 8
}

// Rejected reports whether sight checks from a to b can be skipped.
func (r *Reject) Rejected(a, b SectorID) bool {
	if a < 0 || b < 0 || int(a) >= r.NumSectors || int(b) >= r.NumSectors {
		return false
	}
	bit := int(a)*r.NumSectors + int(b)
	return r.Data[bit>>3]&(1<<(bit&7)) != 0
}

// PadRejectArray fills dest with the bytes found after an undersized
// REJECT buffer: the zone block header words, little end first. Anything
// past the 16 bytes of header is filled with 0xFF when padWithFF is set
// and with zero otherwise.
func PadRejectArray(dest []byte, totalLines int, padWithFF bool, log *zap.Logger) {
	var pad [rejectPadSize]byte
	binary.LittleEndian.PutUint32(pad[0:], uint32(((totalLines*4+3)&^3)+24))
	binary.LittleEndian.PutUint32(pad[4:], 0)
	binary.LittleEndian.PutUint32(pad[8:], rejectPadTag)
	binary.LittleEndian.PutUint32(pad[12:], rejectPadZoneID)

	n := copy(dest, pad[:])
	if len(dest) <= rejectPadSize {
		return
	}

	log.Warn("reject lump too short to pad",
		zap.Int("pad", len(dest)),
		zap.Int("max", rejectPadSize))

	fill := byte(rejectPadFill & 0xff)
	if padWithFF {
		fill = 0xff
	}
	for i := n; i < len(dest); i++ {
		dest[i] = fill
	}
}

// loadReject uses data directly when it covers every sector pair and
// otherwise returns a padded copy.
func (l *Level) loadReject(data []byte, padWithFF bool, log *zap.Logger) *Reject {
	n := len(l.Sectors)
	size := RejectSize(n)
	if len(data) >= size {
		return &Reject{Data: data[:size:size], NumSectors: n}
	}

	matrix := make([]byte, size)
	copy(matrix, data)
	PadRejectArray(matrix[len(data):], l.TotalLines, padWithFF, log)
	return &Reject{Data: matrix, NumSectors: n, Padded: true}
}
