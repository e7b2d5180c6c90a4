package formats

import (
	"github.com/Faultbox/levelgeo/pkg/encoding"
	"github.com/Faultbox/levelgeo/pkg/fixed"
)

// On-disk record widths in bytes.
const (
	VertexSize    = 4
	SectorSize    = 26
	SideSize      = 30
	LineSize      = 14
	SegSize       = 12
	SubSectorSize = 4
	NodeSize      = 28
	ThingSize     = 10
)

// Wire layouts, little-endian, no padding.

type rawVertex struct {
	X, Y int16
}

type rawSector struct {
	FloorHeight   int16
	CeilingHeight int16
	FloorPic      [encoding.NameSize]byte
	CeilingPic    [encoding.NameSize]byte
	LightLevel    int16
	Special       int16
	Tag           int16
}

type rawSide struct {
	TextureOffset int16
	RowOffset     int16
	TopTexture    [encoding.NameSize]byte
	BottomTexture [encoding.NameSize]byte
	MidTexture    [encoding.NameSize]byte
	Sector        int16
}

type rawLine struct {
	V1, V2  int16
	Flags   int16
	Special int16
	Tag     int16
	SideNum [2]int16
}

type rawSeg struct {
	V1, V2  int16
	Angle   int16
	LineDef int16
	Side    int16
	Offset  int16
}

type rawSubSector struct {
	NumSegs  int16
	FirstSeg int16
}

type rawNode struct {
	X, Y     int16
	DX, DY   int16
	BBox     [2][4]int16
	Children [2]uint16
}

type rawThing struct {
	X, Y    int16
	Angle   int16
	Type    int16
	Options int16
}

// Vertex is a decoded VERTEXES record.
type Vertex struct {
	X, Y fixed.Fixed
}

// Sector is a decoded SECTORS record. Surface names are upper-cased.
type Sector struct {
	FloorHeight   fixed.Fixed
	CeilingHeight fixed.Fixed
	FloorPic      string
	CeilingPic    string
	LightLevel    int16
	Special       int16
	Tag           int16
}

// Side is a decoded SIDEDEFS record.
type Side struct {
	TextureOffset fixed.Fixed
	RowOffset     fixed.Fixed
	TopTexture    string
	BottomTexture string
	MidTexture    string
	Sector        int16
}

// NoSide marks an absent side in Line.SideNum.
const NoSide = -1

// Line is a decoded LINEDEFS record.
type Line struct {
	V1, V2  int16
	Flags   LineFlags
	Special int16
	Tag     int16
	SideNum [2]int16 // NoSide when absent
}

// Seg is a decoded SEGS record.
type Seg struct {
	V1, V2  int16
	Angle   fixed.Angle
	LineDef int16
	Side    int16 // 0 = front of the line, 1 = back
	Offset  fixed.Fixed
}

// SubSector is a decoded SSECTORS record.
type SubSector struct {
	NumSegs  int16
	FirstSeg int16
}

// Node is a decoded NODES record. BBox[i] bounds Children[i].
type Node struct {
	X, Y     fixed.Fixed
	DX, DY   fixed.Fixed
	BBox     [2]fixed.Box
	Children [2]Child
}

// Thing is a decoded THINGS record. Values are passed through unscaled.
type Thing struct {
	X, Y    int16
	Angle   int16
	Type    int16
	Options ThingOptions
}

// Position returns the thing's location in fixed-point map space.
func (t Thing) Position() fixed.Point {
	return fixed.Point{X: fixed.FromInt(t.X), Y: fixed.FromInt(t.Y)}
}

// Facing returns the thing's facing angle.
func (t Thing) Facing() fixed.Angle {
	return fixed.AngleFromDegrees(int(t.Angle))
}
