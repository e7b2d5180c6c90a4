package level

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/Faultbox/levelgeo/internal/assets"
	"github.com/Faultbox/levelgeo/pkg/encoding"
	"github.com/Faultbox/levelgeo/pkg/wad"
)

type (
	tVertex struct{ x, y int16 }
	tSector struct{ floor, ceiling int16 }
	tSide   struct {
		top, bottom, mid string
		sector           int16
	}
	tLine struct {
		v1, v2, flags int16
		sides         [2]int16
	}
	tSeg       struct{ v1, v2, angle, line, side, offset int16 }
	tSubSector struct{ numSegs, firstSeg int16 }
	tNode      struct {
		x, y, dx, dy int16
		children     [2]uint16
	}
	tThing struct{ x, y, angle, typ, options int16 }
)

// testMap is a 128x128 room split down x=64 by a two-sided line into
// sector 0 (west) and sector 1 (east).
type testMap struct {
	vertexes   []tVertex
	sectors    []tSector
	sides      []tSide
	lines      []tLine
	segs       []tSeg
	subSectors []tSubSector
	nodes      []tNode
	things     []tThing
	blockmap   []byte
	reject     []byte

	skip string // lump left out by addTo
}

const twoSided = 4

func newTestMap() *testMap {
	return &testMap{
		vertexes: []tVertex{{0, 0}, {0, 128}, {64, 128}, {128, 128}, {128, 0}, {64, 0}},
		sectors:  []tSector{{0, 128}, {8, 96}},
		sides: []tSide{
			{"-", "-", "STARTAN3", 0},
			{"-", "-", "STARTAN3", 0},
			{"-", "-", "BROWN1", 1},
			{"-", "-", "BROWN1", 1},
			{"-", "-", "BROWN1", 1},
			{"-", "-", "STARTAN3", 0},
			{"-", "BROWN1", "-", 1},
			{"STARTAN3", "-", "-", 0},
		},
		lines: []tLine{
			{0, 1, 1, [2]int16{0, -1}},
			{1, 2, 1, [2]int16{1, -1}},
			{2, 3, 1, [2]int16{2, -1}},
			{3, 4, 1, [2]int16{3, -1}},
			{4, 5, 1, [2]int16{4, -1}},
			{5, 0, 1, [2]int16{5, -1}},
			{5, 2, twoSided, [2]int16{6, 7}},
		},
		segs: []tSeg{
			{0, 1, 16384, 0, 0, 0},
			{1, 2, 0, 1, 0, 0},
			{2, 5, -16384, 6, 1, 0},
			{5, 0, -32768, 5, 0, 0},
			{2, 3, 0, 2, 0, 0},
			{3, 4, -16384, 3, 0, 0},
			{4, 5, -32768, 4, 0, 0},
			{5, 2, 16384, 6, 0, 0},
		},
		subSectors: []tSubSector{{4, 0}, {4, 4}},
		nodes:      []tNode{{64, 0, 0, 128, [2]uint16{0x8001, 0x8000}}},
		things: []tThing{
			{32, 64, 90, 1, 7},
			{96, 64, 0, 120, 7},
			{100, 100, 180, 3004, 4},
		},
		blockmap: blockmapLump(-8, -8, 2, 2, [][]int16{{0, 1, 2, 3, 4, 5, 6}, {3, 4}, {1, 2}, {2, 3}}),
		reject:   []byte{0x06},
	}
}

func le(values ...any) []byte {
	buf := new(bytes.Buffer)
	for _, v := range values {
		binary.Write(buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

func name8(s string) [encoding.NameSize]byte {
	return encoding.PutFixedName(s)
}

// blockmapLump builds a BLOCKMAP lump with one list per cell, each
// starting with the 0 marker and ending with -1.
func blockmapLump(orgX, orgY int16, width, height int, cells [][]int16) []byte {
	words := []int16{orgX, orgY, int16(width), int16(height)}
	next := len(words) + len(cells)
	var lists []int16
	for _, cell := range cells {
		words = append(words, int16(next+len(lists)))
		lists = append(lists, 0)
		lists = append(lists, cell...)
		lists = append(lists, -1)
	}
	return le(append(words, lists...))
}

func (m *testMap) vertexLump() []byte {
	buf := new(bytes.Buffer)
	for _, v := range m.vertexes {
		buf.Write(le(v.x, v.y))
	}
	return buf.Bytes()
}

func (m *testMap) sectorLump() []byte {
	buf := new(bytes.Buffer)
	for _, s := range m.sectors {
		buf.Write(le(s.floor, s.ceiling, name8("FLOOR4_8"), name8("CEIL3_5"), int16(160), int16(0), int16(0)))
	}
	return buf.Bytes()
}

func (m *testMap) sideLump() []byte {
	buf := new(bytes.Buffer)
	for _, s := range m.sides {
		buf.Write(le(int16(0), int16(0), name8(s.top), name8(s.bottom), name8(s.mid), s.sector))
	}
	return buf.Bytes()
}

func (m *testMap) lineLump() []byte {
	buf := new(bytes.Buffer)
	for _, l := range m.lines {
		buf.Write(le(l.v1, l.v2, l.flags, int16(0), int16(0), l.sides))
	}
	return buf.Bytes()
}

func (m *testMap) segLump() []byte {
	buf := new(bytes.Buffer)
	for _, s := range m.segs {
		buf.Write(le(s.v1, s.v2, s.angle, s.line, s.side, s.offset))
	}
	return buf.Bytes()
}

func (m *testMap) subSectorLump() []byte {
	buf := new(bytes.Buffer)
	for _, s := range m.subSectors {
		buf.Write(le(s.numSegs, s.firstSeg))
	}
	return buf.Bytes()
}

func (m *testMap) nodeLump() []byte {
	buf := new(bytes.Buffer)
	for _, n := range m.nodes {
		buf.Write(le(n.x, n.y, n.dx, n.dy))
		buf.Write(le([2][4]int16{{128, 0, 0, 64}, {128, 0, 64, 128}}))
		buf.Write(le(n.children))
	}
	return buf.Bytes()
}

func (m *testMap) thingLump() []byte {
	buf := new(bytes.Buffer)
	for _, th := range m.things {
		buf.Write(le(th.x, th.y, th.angle, th.typ, th.options))
	}
	return buf.Bytes()
}

// addTo appends the map's lumps, in marker order, to w.
func (m *testMap) addTo(w *wad.Writer, marker string) {
	w.Add(marker, nil)
	for _, l := range []struct {
		name string
		data []byte
	}{
		{"THINGS", m.thingLump()},
		{"LINEDEFS", m.lineLump()},
		{"SIDEDEFS", m.sideLump()},
		{"VERTEXES", m.vertexLump()},
		{"SEGS", m.segLump()},
		{"SSECTORS", m.subSectorLump()},
		{"NODES", m.nodeLump()},
		{"SECTORS", m.sectorLump()},
		{"REJECT", m.reject},
		{"BLOCKMAP", m.blockmap},
	} {
		if l.name != m.skip {
			w.Add(l.name, l.data)
		}
	}
}

func textureLump(names ...string) []byte {
	buf := new(bytes.Buffer)
	buf.Write(le(int32(len(names))))
	base := 4 + 4*len(names)
	for i := range names {
		buf.Write(le(int32(base + i*22)))
	}
	for _, name := range names {
		buf.Write(le(name8(name), make([]byte, 14)))
	}
	return buf.Bytes()
}

// newTestManager returns a manager holding an IWAD with texture and flat
// definitions plus the given maps.
func newTestManager(t *testing.T, maps map[string]*testMap) *assets.Manager {
	t.Helper()
	w := wad.NewWriter(wad.MagicIWAD)
	w.Add("TEXTURE1", textureLump("AASTINKY", "STARTAN3", "BROWN1"))
	w.Add("F_START", nil)
	w.Add("FLOOR4_8", make([]byte, 4096))
	w.Add("CEIL3_5", make([]byte, 4096))
	w.Add("F_END", nil)
	for _, marker := range []string{"E1M1", "E1M2", "E1M3", "E1M4"} {
		if m, ok := maps[marker]; ok {
			m.addTo(w, marker)
		}
	}

	data := w.Bytes()
	archive, err := wad.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	m := assets.NewManager()
	m.Add(archive)
	return m
}

func newTestLoader(t *testing.T, maps map[string]*testMap, spawner Spawner, opts Options) (*Loader, *assets.Manager) {
	t.Helper()
	m := newTestManager(t, maps)
	names, err := assets.NewNameTable(m)
	if err != nil {
		t.Fatalf("NewNameTable: %v", err)
	}
	return NewLoader(m, names, spawner, opts), m
}

// testNames resolves the fixture's names without a WAD.
type testNames struct{}

func (testNames) TextureNumForName(name string) (int, error) {
	return map[string]int{"-": 0, "STARTAN3": 1, "BROWN1": 2}[name], nil
}

func (testNames) FlatNumForName(name string) (int, error) {
	return map[string]int{"FLOOR4_8": 0, "CEIL3_5": 1}[name], nil
}

// linked decodes and links m without going through a Loader.
func linked(t *testing.T, m *testMap) *Level {
	t.Helper()
	lvl := &Level{Name: "TEST"}
	var err error
	if lvl.Blockmap, err = loadBlockmap(m.blockmap); err != nil {
		t.Fatalf("loadBlockmap: %v", err)
	}
	if err := lvl.loadVertexes(m.vertexLump()); err != nil {
		t.Fatalf("loadVertexes: %v", err)
	}
	if err := lvl.loadSectors(m.sectorLump(), testNames{}); err != nil {
		t.Fatalf("loadSectors: %v", err)
	}
	if err := lvl.loadSides(m.sideLump(), testNames{}); err != nil {
		t.Fatalf("loadSides: %v", err)
	}
	if err := lvl.loadLines(m.lineLump()); err != nil {
		t.Fatalf("loadLines: %v", err)
	}
	if err := lvl.loadSubSectors(m.subSectorLump()); err != nil {
		t.Fatalf("loadSubSectors: %v", err)
	}
	if err := lvl.loadNodes(m.nodeLump()); err != nil {
		t.Fatalf("loadNodes: %v", err)
	}
	if err := lvl.loadSegs(m.segLump()); err != nil {
		t.Fatalf("loadSegs: %v", err)
	}
	return lvl
}
