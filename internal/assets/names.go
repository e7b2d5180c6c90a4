package assets

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Faultbox/levelgeo/pkg/encoding"
)

// Name resolution errors.
var (
	ErrUnknownTexture  = errors.New("texture not found")
	ErrUnknownFlat     = errors.New("flat not found")
	ErrBadTextureTable = errors.New("malformed texture table")
)

// NoTexture is the id of the "-" placeholder used for untextured walls.
const NoTexture = 0

// NameTable resolves wall texture and flat names to numeric ids.
//
// Texture ids follow the order of TEXTURE1 then TEXTURE2, and the first
// definition of a name wins. Flat ids are lump numbers relative to the
// first lump after F_START, so a flat replaced by a later archive resolves
// to the replacement.
type NameTable struct {
	textures  map[string]int
	names     []string
	flats     *Manager
	firstFlat int
}

// NewNameTable builds the texture directory from the manager's
// TEXTURE1/TEXTURE2 lumps and locates the flat range.
func NewNameTable(m *Manager) (*NameTable, error) {
	t := &NameTable{
		textures: make(map[string]int),
		flats:    m,
	}

	for _, lump := range []string{"TEXTURE1", "TEXTURE2"} {
		num, ok := m.LumpNumForName(lump)
		if !ok {
			if lump == "TEXTURE1" {
				return nil, fmt.Errorf("%w: %s", ErrUnknownTexture, lump)
			}
			continue
		}
		data, err := m.ReadLump(num)
		if err != nil {
			return nil, err
		}
		names, err := parseTextureNames(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", lump, err)
		}
		for _, name := range names {
			t.add(name)
		}
	}

	start, ok := m.LumpNumForName("F_START")
	if !ok {
		return nil, fmt.Errorf("%w: F_START", ErrUnknownFlat)
	}
	t.firstFlat = start + 1

	return t, nil
}

func (t *NameTable) add(name string) {
	if _, dup := t.textures[name]; !dup {
		t.textures[name] = len(t.names)
	}
	t.names = append(t.names, name)
}

// parseTextureNames extracts the texture names from a TEXTURE1/TEXTURE2
// lump: a count, a table of offsets, then one record per texture starting
// with its 8-byte name.
func parseTextureNames(data []byte) ([]string, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadTextureTable, len(data))
	}
	count := int(int32(binary.LittleEndian.Uint32(data)))
	if count < 0 || 4+count*4 > len(data) {
		return nil, fmt.Errorf("%w: %d textures in %d bytes", ErrBadTextureTable, count, len(data))
	}

	names := make([]string, count)
	for i := range names {
		offset := int(int32(binary.LittleEndian.Uint32(data[4+i*4:])))
		if offset < 0 || offset+encoding.NameSize > len(data) {
			return nil, fmt.Errorf("%w: texture %d at offset %d", ErrBadTextureTable, i, offset)
		}
		names[i] = encoding.FixedName(data[offset : offset+encoding.NameSize])
	}
	return names, nil
}

// NumTextures returns the number of texture definitions.
func (t *NameTable) NumTextures() int {
	return len(t.names)
}

// TextureName returns the name of texture id.
func (t *NameTable) TextureName(id int) string {
	if id < 0 || id >= len(t.names) {
		return ""
	}
	return t.names[id]
}

// CheckTextureNumForName returns the id of a wall texture. Any name
// starting with '-' is the NoTexture placeholder.
func (t *NameTable) CheckTextureNumForName(name string) (int, bool) {
	if len(name) > 0 && name[0] == '-' {
		return NoTexture, true
	}
	id, ok := t.textures[encoding.NormalizeName(name)]
	return id, ok
}

// TextureNumForName returns the id of a wall texture or ErrUnknownTexture.
func (t *NameTable) TextureNumForName(name string) (int, error) {
	id, ok := t.CheckTextureNumForName(name)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownTexture, name)
	}
	return id, nil
}

// FlatNumForName returns the id of a floor or ceiling flat or
// ErrUnknownFlat.
func (t *NameTable) FlatNumForName(name string) (int, error) {
	num, ok := t.flats.LumpNumForName(name)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownFlat, name)
	}
	return num - t.firstFlat, nil
}
