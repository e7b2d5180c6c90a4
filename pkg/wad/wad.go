// Package wad provides reading functionality for Doom-engine WAD archives.
// The archive layout follows the community DOOM format reference:
// http://www.gamers.org/dhs/helpdocs/dmsp1666.html
package wad

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Faultbox/levelgeo/pkg/encoding"
)

// Archive identifiers.
const (
	MagicIWAD = "IWAD"
	MagicPWAD = "PWAD"
)

const (
	headerSize   = 12
	dirEntrySize = 16
)

// WAD format errors.
var (
	ErrInvalidMagic  = errors.New("invalid WAD magic: expected 'IWAD' or 'PWAD'")
	ErrTruncatedWAD  = errors.New("truncated WAD data")
	ErrLumpNotFound  = errors.New("lump not found")
	ErrLumpOutOfFile = errors.New("lump extends past end of file")
)

// Archive represents an opened WAD archive.
type Archive struct {
	name   string
	r      io.ReaderAt
	closer io.Closer
	header Header
	lumps  []Lump
	byName map[string]int
}

// Header contains the WAD file header.
type Header struct {
	Magic        [4]byte
	NumLumps     int32
	InfoTableOfs int32
}

type dirEntry struct {
	FilePos int32
	Size    int32
	Name    [encoding.NameSize]byte
}

// Lump describes one directory entry.
type Lump struct {
	Name   string
	Offset int64
	Size   int
}

// Open opens a WAD archive on disk for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	archive, err := NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	archive.name = path
	archive.closer = file

	return archive, nil
}

// NewReader reads the header and directory of a WAD held by r.
func NewReader(r io.ReaderAt, size int64) (*Archive, error) {
	archive := &Archive{
		name:   "<memory>",
		r:      r,
		byName: make(map[string]int),
	}

	if err := archive.readHeader(size); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if err := archive.readDirectory(size); err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	return archive, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func (a *Archive) readHeader(size int64) error {
	if size < headerSize {
		return ErrTruncatedWAD
	}

	sr := io.NewSectionReader(a.r, 0, headerSize)
	if err := binary.Read(sr, binary.LittleEndian, &a.header); err != nil {
		return fmt.Errorf("%w: %v", ErrTruncatedWAD, err)
	}

	magic := string(a.header.Magic[:])
	if magic != MagicIWAD && magic != MagicPWAD {
		return ErrInvalidMagic
	}

	if a.header.NumLumps < 0 || a.header.InfoTableOfs < 0 {
		return fmt.Errorf("invalid directory: %d lumps at %d", a.header.NumLumps, a.header.InfoTableOfs)
	}

	return nil
}

func (a *Archive) readDirectory(size int64) error {
	count := int64(a.header.NumLumps)
	offset := int64(a.header.InfoTableOfs)
	if offset+count*dirEntrySize > size {
		return fmt.Errorf("%w: directory of %d entries at %d", ErrTruncatedWAD, count, offset)
	}

	entries := make([]dirEntry, count)
	sr := io.NewSectionReader(a.r, offset, count*dirEntrySize)
	if err := binary.Read(sr, binary.LittleEndian, entries); err != nil {
		return fmt.Errorf("%w: %v", ErrTruncatedWAD, err)
	}

	a.lumps = make([]Lump, count)
	for i, e := range entries {
		lump := Lump{
			Name:   encoding.FixedName(e.Name[:]),
			Offset: int64(e.FilePos),
			Size:   int(e.Size),
		}
		if lump.Size < 0 || lump.Offset < 0 || lump.Offset+int64(lump.Size) > size {
			return fmt.Errorf("%w: %s (#%d)", ErrLumpOutOfFile, lump.Name, i)
		}
		a.lumps[i] = lump
		// Later entries override earlier ones with the same name.
		a.byName[lump.Name] = i
	}

	return nil
}

// Name returns the path the archive was opened from.
func (a *Archive) Name() string {
	return a.name
}

// IsIWAD reports whether the archive is a main game data file.
func (a *Archive) IsIWAD() bool {
	return string(a.header.Magic[:]) == MagicIWAD
}

// NumLumps returns the number of directory entries.
func (a *Archive) NumLumps() int {
	return len(a.lumps)
}

// Lump returns the directory entry for lump number num.
func (a *Archive) Lump(num int) (Lump, bool) {
	if num < 0 || num >= len(a.lumps) {
		return Lump{}, false
	}
	return a.lumps[num], true
}

// LumpNumForName returns the number of the last lump called name.
func (a *Archive) LumpNumForName(name string) (int, bool) {
	num, ok := a.byName[encoding.NormalizeName(name)]
	return num, ok
}

// Contains checks if a lump exists.
func (a *Archive) Contains(name string) bool {
	_, ok := a.LumpNumForName(name)
	return ok
}

// ReadLump reads the contents of lump number num.
func (a *Archive) ReadLump(num int) ([]byte, error) {
	lump, ok := a.Lump(num)
	if !ok {
		return nil, fmt.Errorf("%w: #%d", ErrLumpNotFound, num)
	}

	data := make([]byte, lump.Size)
	if lump.Size == 0 {
		return data, nil
	}
	if n, err := a.r.ReadAt(data, lump.Offset); n < len(data) {
		return nil, fmt.Errorf("reading lump %s: %w", lump.Name, err)
	}
	return data, nil
}

// Read reads a lump by name.
func (a *Archive) Read(name string) ([]byte, error) {
	num, ok := a.LumpNumForName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLumpNotFound, name)
	}
	return a.ReadLump(num)
}

// List returns all lump names in directory order.
func (a *Archive) List() []string {
	result := make([]string, len(a.lumps))
	for i, lump := range a.lumps {
		result[i] = lump.Name
	}
	return result
}

// Levels returns the sorted names of map marker lumps, recognised as any
// lump directly followed by a THINGS lump.
func (a *Archive) Levels() []string {
	var result []string
	for i := 1; i < len(a.lumps); i++ {
		if a.lumps[i].Name == "THINGS" {
			result = append(result, a.lumps[i-1].Name)
		}
	}
	sort.Strings(result)
	return result
}
