package level

import (
	"github.com/Faultbox/levelgeo/pkg/fixed"
	"github.com/Faultbox/levelgeo/pkg/formats"
)

// Link is one entry in a blockmap cell's chain of things.
type Link struct {
	Thing int
	Next  *Link
}

// Blockmap is the collision grid plus one chain head per cell. The chains
// start empty and are maintained by whatever moves things around.
type Blockmap struct {
	*formats.Blockmap
	Links []*Link
}

func loadBlockmap(data []byte) (*Blockmap, error) {
	bm, err := formats.ParseBlockmap(data)
	if err != nil {
		return nil, err
	}
	return &Blockmap{
		Blockmap: bm,
		Links:    make([]*Link, bm.NumCells()),
	}, nil
}

// Head returns the first link of cell (col, row), or nil.
func (b *Blockmap) Head(col, row int) *Link {
	if i, ok := b.cell(col, row); ok {
		return b.Links[i]
	}
	return nil
}

// Push links thing at the front of cell (col, row). It reports false when
// the cell lies outside the grid.
func (b *Blockmap) Push(col, row, thing int) bool {
	i, ok := b.cell(col, row)
	if ok {
		b.Links[i] = &Link{Thing: thing, Next: b.Links[i]}
	}
	return ok
}

// LinesAt returns the lines listed for the cell containing (x, y).
func (b *Blockmap) LinesAt(x, y fixed.Fixed) []int {
	col, row, ok := b.CellOf(x, y)
	if !ok {
		return nil
	}
	return b.CellLines(col, row)
}

func (b *Blockmap) cell(col, row int) (int, bool) {
	if col < 0 || row < 0 || col >= b.Width || row >= b.Height {
		return 0, false
	}
	return row*b.Width + col, true
}
