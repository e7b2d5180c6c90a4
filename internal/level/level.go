// Package level builds the in-memory geometry of one map from its lumps.
//
// Entities live in dense per-kind slices on a Level. Cross references are
// typed indices into those slices, checked once when the level is linked.
package level

import (
	"github.com/google/uuid"

	"github.com/Faultbox/levelgeo/pkg/fixed"
	"github.com/Faultbox/levelgeo/pkg/formats"
)

// Entity handles.
type (
	VertexID    int32
	SectorID    int32
	SideID      int32
	LineID      int32
	SegID       int32
	SubSectorID int32
	NodeID      int32
)

// Absent references.
const (
	NoSector SectorID = -1
	NoSide   SideID   = -1
)

// MaxRadius is the largest thing radius, used to widen sector block boxes.
const MaxRadius = fixed.Fixed(32 << fixed.FracBits)

// Vertex is a map point.
type Vertex struct {
	X, Y fixed.Fixed
}

// Sector is a region of constant floor and ceiling.
type Sector struct {
	FloorHeight   fixed.Fixed
	CeilingHeight fixed.Fixed
	FloorPic      int
	CeilingPic    int
	LightLevel    int16
	Special       int16
	Tag           int16

	// Filled in by the aggregator.
	Lines    []LineID // window into the level's shared line buffer
	BBox     fixed.Box
	BlockBox [4]int // blockmap cells, indexed like BBox
	SoundOrg fixed.Point
}

// LineCount returns the number of lines bordering the sector.
func (s *Sector) LineCount() int {
	return len(s.Lines)
}

// Side is one face of a line.
type Side struct {
	TextureOffset fixed.Fixed
	RowOffset     fixed.Fixed
	TopTexture    int
	BottomTexture int
	MidTexture    int
	Sector        SectorID
}

// SlopeType classifies a line's direction for fast box tests.
type SlopeType uint8

// Slope classifications.
const (
	SlopeHorizontal SlopeType = iota
	SlopeVertical
	SlopePositive
	SlopeNegative
)

func (s SlopeType) String() string {
	switch s {
	case SlopeHorizontal:
		return "horizontal"
	case SlopeVertical:
		return "vertical"
	case SlopePositive:
		return "positive"
	case SlopeNegative:
		return "negative"
	}
	return "unknown"
}

// Line is a linedef with its derived fields.
type Line struct {
	V1, V2  VertexID
	DX, DY  fixed.Fixed
	Flags   formats.LineFlags
	Special int16
	Tag     int16
	SideNum [2]SideID

	Slope       SlopeType
	BBox        fixed.Box
	FrontSector SectorID
	BackSector  SectorID
}

// TwoSided reports whether the line carries the two-sided flag.
func (l *Line) TwoSided() bool {
	return l.Flags.Has(formats.LineTwoSided)
}

// Seg is the part of a line that lies in one subsector.
type Seg struct {
	V1, V2      VertexID
	Angle       fixed.Angle
	Offset      fixed.Fixed
	Line        LineID
	Side        SideID
	FrontSector SectorID
	BackSector  SectorID // NoSector unless the line is two-sided
}

// SubSector is a convex BSP leaf made of consecutive segs.
type SubSector struct {
	Sector   SectorID
	NumSegs  int
	FirstSeg SegID
}

// Segs returns the range of seg ids belonging to the subsector.
func (s *SubSector) Segs() (first, end SegID) {
	return s.FirstSeg, s.FirstSeg + SegID(s.NumSegs)
}

// Node is a BSP partition.
type Node struct {
	X, Y     fixed.Fixed
	DX, DY   fixed.Fixed
	BBox     [2]fixed.Box
	Children [2]formats.Child
}

// Level holds every entity table of one loaded map. Tables are owned by
// the level and dropped together by Release.
type Level struct {
	Name       string
	Generation uuid.UUID

	Vertexes   []Vertex
	Sectors    []Sector
	Sides      []Side
	Lines      []Line
	Segs       []Seg
	SubSectors []SubSector
	Nodes      []Node
	Things     []formats.Thing
	RiftSpots  [NumRiftSpots]formats.Thing

	Blockmap *Blockmap
	Reject   *Reject

	// TotalLines counts every line once plus each distinct back sector,
	// as tallied by the aggregator.
	TotalLines int
	lineBuffer []LineID
}

// Root returns the top of the BSP tree. A map without nodes is a single
// subsector.
func (l *Level) Root() formats.Child {
	if len(l.Nodes) == 0 {
		return formats.SubSectorFlag
	}
	return formats.Child(len(l.Nodes) - 1)
}

// Sector returns the sector with handle id, or nil for NoSector.
func (l *Level) Sector(id SectorID) *Sector {
	if id < 0 || int(id) >= len(l.Sectors) {
		return nil
	}
	return &l.Sectors[id]
}

// Released reports whether Release has been called.
func (l *Level) Released() bool {
	return l.Vertexes == nil && l.Sectors == nil && l.Blockmap == nil
}

// Release drops every table. The level must not be used afterwards.
func (l *Level) Release() {
	*l = Level{Name: l.Name, Generation: l.Generation}
}

// Stats summarises table sizes.
type Stats struct {
	Vertexes, Sectors, Sides, Lines int
	Segs, SubSectors, Nodes, Things int
	BlockmapWidth, BlockmapHeight   int
	RejectBytes                     int
	RejectPadded                    bool
}

// Stats returns the level's table sizes.
func (l *Level) Stats() Stats {
	s := Stats{
		Vertexes:   len(l.Vertexes),
		Sectors:    len(l.Sectors),
		Sides:      len(l.Sides),
		Lines:      len(l.Lines),
		Segs:       len(l.Segs),
		SubSectors: len(l.SubSectors),
		Nodes:      len(l.Nodes),
		Things:     len(l.Things),
	}
	if l.Blockmap != nil {
		s.BlockmapWidth = l.Blockmap.Width
		s.BlockmapHeight = l.Blockmap.Height
	}
	if l.Reject != nil {
		s.RejectBytes = len(l.Reject.Data)
		s.RejectPadded = l.Reject.Padded
	}
	return s
}
