package level

import (
	"github.com/Faultbox/levelgeo/pkg/fixed"
	"github.com/Faultbox/levelgeo/pkg/formats"
)

// groupLines resolves each subsector's sector, builds the per-sector line
// lists and computes sector bounding boxes. It needs the blockmap for the
// block boxes.
func (l *Level) groupLines() error {
	for i := range l.SubSectors {
		ss := &l.SubSectors[i]
		if ss.FirstSeg < 0 || ss.NumSegs < 0 || int(ss.FirstSeg)+ss.NumSegs > len(l.Segs) || int(ss.FirstSeg) >= len(l.Segs) {
			return badIndex("subsector %d segs %d+%d of %d", i, ss.FirstSeg, ss.NumSegs, len(l.Segs))
		}
		ss.Sector = l.Sides[l.Segs[ss.FirstSeg].Side].Sector
	}

	// Count lines per sector. A line whose back sector equals its front
	// sector is listed once.
	counts := make([]int, len(l.Sectors))
	total := 0
	for i := range l.Lines {
		ld := &l.Lines[i]
		total++
		if ld.FrontSector != NoSector {
			counts[ld.FrontSector]++
		}
		if ld.BackSector != NoSector && ld.BackSector != ld.FrontSector {
			counts[ld.BackSector]++
			total++
		}
	}
	l.TotalLines = total

	// One shared buffer, sliced per sector in sector order.
	size := 0
	for _, n := range counts {
		size += n
	}
	l.lineBuffer = make([]LineID, size)
	offset := 0
	for i := range l.Sectors {
		l.Sectors[i].Lines = l.lineBuffer[offset : offset : offset+counts[i]]
		offset += counts[i]
	}

	for i := range l.Lines {
		ld := &l.Lines[i]
		if ld.FrontSector != NoSector {
			s := &l.Sectors[ld.FrontSector]
			s.Lines = append(s.Lines, LineID(i))
		}
		if ld.BackSector != NoSector && ld.BackSector != ld.FrontSector {
			s := &l.Sectors[ld.BackSector]
			s.Lines = append(s.Lines, LineID(i))
		}
	}

	for i := range l.Sectors {
		l.boundSector(&l.Sectors[i])
	}
	return nil
}

// boundSector sets the sector's bounding box, sound origin and block box.
func (l *Level) boundSector(s *Sector) {
	s.BBox.Clear()
	for _, id := range s.Lines {
		ld := &l.Lines[id]
		v1, v2 := l.Vertexes[ld.V1], l.Vertexes[ld.V2]
		s.BBox.Add(v1.X, v1.Y)
		s.BBox.Add(v2.X, v2.Y)
	}
	s.SoundOrg = s.BBox.Center()

	bm := l.Blockmap
	block := int((s.BBox[fixed.BoxTop] - bm.OriginY + MaxRadius) >> formats.MapBlockShift)
	s.BlockBox[fixed.BoxTop] = min(block, bm.Height-1)

	block = int((s.BBox[fixed.BoxBottom] - bm.OriginY - MaxRadius) >> formats.MapBlockShift)
	s.BlockBox[fixed.BoxBottom] = max(block, 0)

	block = int((s.BBox[fixed.BoxRight] - bm.OriginX + MaxRadius) >> formats.MapBlockShift)
	s.BlockBox[fixed.BoxRight] = min(block, bm.Width-1)

	block = int((s.BBox[fixed.BoxLeft] - bm.OriginX - MaxRadius) >> formats.MapBlockShift)
	s.BlockBox[fixed.BoxLeft] = max(block, 0)
}
