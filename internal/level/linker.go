package level

import (
	"fmt"

	"github.com/Faultbox/levelgeo/pkg/fixed"
	"github.com/Faultbox/levelgeo/pkg/formats"
)

// Strife rift spots: thing types 118..127 mark player teleport targets.
const (
	NumRiftSpots   = 10
	riftSpotFirst  = 118
	riftSpotMarker = 1
)

func badIndex(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrBadIndex}, args...)...)
}

func (l *Level) loadVertexes(data []byte) error {
	raw, err := formats.DecodeVertexes(data)
	if err != nil {
		return err
	}
	l.Vertexes = make([]Vertex, len(raw))
	for i, v := range raw {
		l.Vertexes[i] = Vertex{X: v.X, Y: v.Y}
	}
	return nil
}

func (l *Level) loadSectors(data []byte, names TextureResolver) error {
	raw, err := formats.DecodeSectors(data)
	if err != nil {
		return err
	}
	l.Sectors = make([]Sector, len(raw))
	for i, s := range raw {
		floor, err := names.FlatNumForName(s.FloorPic)
		if err != nil {
			return fmt.Errorf("sector %d floor: %w", i, err)
		}
		ceiling, err := names.FlatNumForName(s.CeilingPic)
		if err != nil {
			return fmt.Errorf("sector %d ceiling: %w", i, err)
		}
		l.Sectors[i] = Sector{
			FloorHeight:   s.FloorHeight,
			CeilingHeight: s.CeilingHeight,
			FloorPic:      floor,
			CeilingPic:    ceiling,
			LightLevel:    s.LightLevel,
			Special:       s.Special,
			Tag:           s.Tag,
		}
	}
	return nil
}

func (l *Level) loadSides(data []byte, names TextureResolver) error {
	raw, err := formats.DecodeSides(data)
	if err != nil {
		return err
	}
	l.Sides = make([]Side, len(raw))
	for i, s := range raw {
		if int(s.Sector) < 0 || int(s.Sector) >= len(l.Sectors) {
			return badIndex("side %d sector %d of %d", i, s.Sector, len(l.Sectors))
		}
		side := Side{
			TextureOffset: s.TextureOffset,
			RowOffset:     s.RowOffset,
			Sector:        SectorID(s.Sector),
		}
		if side.TopTexture, err = names.TextureNumForName(s.TopTexture); err != nil {
			return fmt.Errorf("side %d top: %w", i, err)
		}
		if side.BottomTexture, err = names.TextureNumForName(s.BottomTexture); err != nil {
			return fmt.Errorf("side %d bottom: %w", i, err)
		}
		if side.MidTexture, err = names.TextureNumForName(s.MidTexture); err != nil {
			return fmt.Errorf("side %d middle: %w", i, err)
		}
		l.Sides[i] = side
	}
	return nil
}

func (l *Level) vertexID(v int16) (VertexID, bool) {
	return VertexID(v), v >= 0 && int(v) < len(l.Vertexes)
}

func (l *Level) loadLines(data []byte) error {
	raw, err := formats.DecodeLines(data)
	if err != nil {
		return err
	}
	l.Lines = make([]Line, len(raw))
	for i, r := range raw {
		v1, ok1 := l.vertexID(r.V1)
		v2, ok2 := l.vertexID(r.V2)
		if !ok1 || !ok2 {
			return badIndex("line %d vertexes %d,%d of %d", i, r.V1, r.V2, len(l.Vertexes))
		}

		ld := &l.Lines[i]
		ld.V1, ld.V2 = v1, v2
		ld.Flags = r.Flags
		ld.Special = r.Special
		ld.Tag = r.Tag

		a, b := l.Vertexes[v1], l.Vertexes[v2]
		ld.DX = b.X - a.X
		ld.DY = b.Y - a.Y
		switch {
		case ld.DX == 0:
			ld.Slope = SlopeVertical
		case ld.DY == 0:
			ld.Slope = SlopeHorizontal
		case fixed.Div(ld.DY, ld.DX) > 0:
			ld.Slope = SlopePositive
		default:
			ld.Slope = SlopeNegative
		}

		ld.BBox[fixed.BoxLeft], ld.BBox[fixed.BoxRight] = min(a.X, b.X), max(a.X, b.X)
		ld.BBox[fixed.BoxBottom], ld.BBox[fixed.BoxTop] = min(a.Y, b.Y), max(a.Y, b.Y)

		sectors := [2]*SectorID{&ld.FrontSector, &ld.BackSector}
		for s, num := range r.SideNum {
			if num == formats.NoSide {
				ld.SideNum[s] = NoSide
				*sectors[s] = NoSector
				continue
			}
			if num < 0 || int(num) >= len(l.Sides) {
				if s == 0 {
					return badIndex("line %d side %d of %d", i, num, len(l.Sides))
				}
				// A dangling back side is left for the seg linker, which
				// points it at side 0.
				ld.SideNum[s] = NoSide
				*sectors[s] = NoSector
				continue
			}
			ld.SideNum[s] = SideID(num)
			*sectors[s] = l.Sides[num].Sector
		}
	}
	return nil
}

func (l *Level) loadSubSectors(data []byte) error {
	raw, err := formats.DecodeSubSectors(data)
	if err != nil {
		return err
	}
	l.SubSectors = make([]SubSector, len(raw))
	for i, s := range raw {
		l.SubSectors[i] = SubSector{
			Sector:   NoSector,
			NumSegs:  int(s.NumSegs),
			FirstSeg: SegID(s.FirstSeg),
		}
	}
	return nil
}

func (l *Level) loadNodes(data []byte) error {
	raw, err := formats.DecodeNodes(data)
	if err != nil {
		return err
	}
	l.Nodes = make([]Node, len(raw))
	for i, n := range raw {
		for _, child := range n.Children {
			limit := len(l.Nodes)
			if child.IsSubSector() {
				limit = len(l.SubSectors)
			}
			if child.Index() >= limit {
				return badIndex("node %d child %#04x", i, uint16(child))
			}
		}
		l.Nodes[i] = Node{
			X:        n.X,
			Y:        n.Y,
			DX:       n.DX,
			DY:       n.DY,
			BBox:     n.BBox,
			Children: n.Children,
		}
	}
	return nil
}

func (l *Level) loadSegs(data []byte) error {
	raw, err := formats.DecodeSegs(data)
	if err != nil {
		return err
	}
	l.Segs = make([]Seg, len(raw))
	for i, r := range raw {
		v1, ok1 := l.vertexID(r.V1)
		v2, ok2 := l.vertexID(r.V2)
		if !ok1 || !ok2 {
			return badIndex("seg %d vertexes %d,%d of %d", i, r.V1, r.V2, len(l.Vertexes))
		}
		if r.LineDef < 0 || int(r.LineDef) >= len(l.Lines) {
			return badIndex("seg %d line %d of %d", i, r.LineDef, len(l.Lines))
		}
		if r.Side != 0 && r.Side != 1 {
			return badIndex("seg %d side selector %d", i, r.Side)
		}

		ld := &l.Lines[r.LineDef]
		side := ld.SideNum[r.Side]
		if side == NoSide {
			return badIndex("seg %d uses missing side %d of line %d", i, r.Side, r.LineDef)
		}

		seg := Seg{
			V1:          v1,
			V2:          v2,
			Angle:       r.Angle,
			Offset:      r.Offset,
			Line:        LineID(r.LineDef),
			Side:        side,
			FrontSector: l.Sides[side].Sector,
			BackSector:  NoSector,
		}
		if ld.TwoSided() {
			// Out of range back sides come from "glass hack" maps and are
			// pointed at side 0.
			back := ld.SideNum[r.Side^1]
			if back < 0 || int(back) >= len(l.Sides) {
				back = 0
			}
			seg.BackSector = l.Sides[back].Sector
		}
		l.Segs[i] = seg
	}
	return nil
}

// loadThings decodes the things and records rift spots. Every thing is
// kept, in file order, for the spawner.
func (l *Level) loadThings(data []byte) error {
	things, err := formats.DecodeThings(data)
	if err != nil {
		return err
	}
	l.Things = things
	for _, th := range l.Things {
		if n := int(th.Type) - riftSpotFirst; n >= 0 && n < NumRiftSpots {
			spot := th
			spot.Type = riftSpotMarker
			l.RiftSpots[n] = spot
		}
	}
	return nil
}
