package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Faultbox/levelgeo/pkg/encoding"
	"github.com/Faultbox/levelgeo/pkg/fixed"
)

// decodeRecords splits data into whole records of width size. Trailing
// bytes that do not make up a whole record are ignored.
func decodeRecords[T any](data []byte, size int) ([]T, error) {
	count := len(data) / size
	records := make([]T, count)
	if count == 0 {
		return records, nil
	}
	if err := binary.Read(bytes.NewReader(data[:count*size]), binary.LittleEndian, records); err != nil {
		return nil, fmt.Errorf("decode %d records of %d bytes: %w", count, size, err)
	}
	return records, nil
}

// DecodeVertexes decodes a VERTEXES lump.
func DecodeVertexes(data []byte) ([]Vertex, error) {
	raw, err := decodeRecords[rawVertex](data, VertexSize)
	if err != nil {
		return nil, err
	}
	vertexes := make([]Vertex, len(raw))
	for i, v := range raw {
		vertexes[i] = Vertex{
			X: fixed.FromInt(v.X),
			Y: fixed.FromInt(v.Y),
		}
	}
	return vertexes, nil
}

// DecodeSectors decodes a SECTORS lump.
func DecodeSectors(data []byte) ([]Sector, error) {
	raw, err := decodeRecords[rawSector](data, SectorSize)
	if err != nil {
		return nil, err
	}
	sectors := make([]Sector, len(raw))
	for i, s := range raw {
		sectors[i] = Sector{
			FloorHeight:   fixed.FromInt(s.FloorHeight),
			CeilingHeight: fixed.FromInt(s.CeilingHeight),
			FloorPic:      encoding.FixedName(s.FloorPic[:]),
			CeilingPic:    encoding.FixedName(s.CeilingPic[:]),
			LightLevel:    s.LightLevel,
			Special:       s.Special,
			Tag:           s.Tag,
		}
	}
	return sectors, nil
}

// DecodeSides decodes a SIDEDEFS lump.
func DecodeSides(data []byte) ([]Side, error) {
	raw, err := decodeRecords[rawSide](data, SideSize)
	if err != nil {
		return nil, err
	}
	sides := make([]Side, len(raw))
	for i, s := range raw {
		sides[i] = Side{
			TextureOffset: fixed.FromInt(s.TextureOffset),
			RowOffset:     fixed.FromInt(s.RowOffset),
			TopTexture:    encoding.FixedName(s.TopTexture[:]),
			BottomTexture: encoding.FixedName(s.BottomTexture[:]),
			MidTexture:    encoding.FixedName(s.MidTexture[:]),
			Sector:        s.Sector,
		}
	}
	return sides, nil
}

// DecodeLines decodes a LINEDEFS lump.
func DecodeLines(data []byte) ([]Line, error) {
	raw, err := decodeRecords[rawLine](data, LineSize)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, len(raw))
	for i, l := range raw {
		lines[i] = Line{
			V1:      l.V1,
			V2:      l.V2,
			Flags:   LineFlags(l.Flags),
			Special: l.Special,
			Tag:     l.Tag,
			SideNum: l.SideNum,
		}
	}
	return lines, nil
}

// DecodeSegs decodes a SEGS lump.
func DecodeSegs(data []byte) ([]Seg, error) {
	raw, err := decodeRecords[rawSeg](data, SegSize)
	if err != nil {
		return nil, err
	}
	segs := make([]Seg, len(raw))
	for i, s := range raw {
		segs[i] = Seg{
			V1:      s.V1,
			V2:      s.V2,
			Angle:   fixed.AngleFromShort(s.Angle),
			LineDef: s.LineDef,
			Side:    s.Side,
			Offset:  fixed.FromInt(s.Offset),
		}
	}
	return segs, nil
}

// DecodeSubSectors decodes a SSECTORS lump.
func DecodeSubSectors(data []byte) ([]SubSector, error) {
	raw, err := decodeRecords[rawSubSector](data, SubSectorSize)
	if err != nil {
		return nil, err
	}
	subsectors := make([]SubSector, len(raw))
	for i, s := range raw {
		subsectors[i] = SubSector(s)
	}
	return subsectors, nil
}

// DecodeNodes decodes a NODES lump.
func DecodeNodes(data []byte) ([]Node, error) {
	raw, err := decodeRecords[rawNode](data, NodeSize)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(raw))
	for i, n := range raw {
		node := Node{
			X:  fixed.FromInt(n.X),
			Y:  fixed.FromInt(n.Y),
			DX: fixed.FromInt(n.DX),
			DY: fixed.FromInt(n.DY),
		}
		for j := 0; j < 2; j++ {
			node.Children[j] = Child(n.Children[j])
			for k := 0; k < 4; k++ {
				node.BBox[j][k] = fixed.FromInt(n.BBox[j][k])
			}
		}
		nodes[i] = node
	}
	return nodes, nil
}

// DecodeThings decodes a THINGS lump.
func DecodeThings(data []byte) ([]Thing, error) {
	raw, err := decodeRecords[rawThing](data, ThingSize)
	if err != nil {
		return nil, err
	}
	things := make([]Thing, len(raw))
	for i, t := range raw {
		things[i] = Thing{
			X:       t.X,
			Y:       t.Y,
			Angle:   t.Angle,
			Type:    t.Type,
			Options: ThingOptions(t.Options),
		}
	}
	return things, nil
}
