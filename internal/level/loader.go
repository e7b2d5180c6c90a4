package level

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/levelgeo/internal/logger"
	"github.com/Faultbox/levelgeo/pkg/encoding"
	"github.com/Faultbox/levelgeo/pkg/formats"
)

// Level loading errors.
var (
	ErrMissingLump  = errors.New("missing lump")
	ErrBadIndex     = errors.New("index out of range")
	ErrNoSubSectors = errors.New("level has no subsectors")
)

// LoadError reports the level and lump a load failed on.
type LoadError struct {
	Level string
	Lump  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %s: %v", e.Level, e.Lump, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LumpSource supplies lump contents. CacheLump keeps data cached while
// tag holds it, until ReleaseLump or ReleaseTag for that tag.
type LumpSource interface {
	LumpNumForName(name string) (int, bool)
	LumpName(num int) string
	CacheLump(num int, tag string) ([]byte, error)
	ReleaseLump(num int, tag string)
	ReleaseTag(tag string) int
}

// TextureResolver maps wall texture and flat names to ids.
type TextureResolver interface {
	TextureNumForName(name string) (int, error)
	FlatNumForName(name string) (int, error)
}

// Spawner receives every thing of a freshly loaded level, in file order.
type Spawner interface {
	SpawnMapThing(l *Level, index int, th formats.Thing)
}

// SpawnFunc adapts a function to Spawner.
type SpawnFunc func(l *Level, index int, th formats.Thing)

// SpawnMapThing calls f.
func (f SpawnFunc) SpawnMapThing(l *Level, index int, th formats.Thing) {
	f(l, index, th)
}

// Lump positions relative to the map marker.
const (
	lumpThings = iota + 1
	lumpLineDefs
	lumpSideDefs
	lumpVertexes
	lumpSegs
	lumpSSectors
	lumpNodes
	lumpSectors
	lumpReject
	lumpBlockmap
)

var lumpNames = [...]string{
	lumpThings:   "THINGS",
	lumpLineDefs: "LINEDEFS",
	lumpSideDefs: "SIDEDEFS",
	lumpVertexes: "VERTEXES",
	lumpSegs:     "SEGS",
	lumpSSectors: "SSECTORS",
	lumpNodes:    "NODES",
	lumpSectors:  "SECTORS",
	lumpReject:   "REJECT",
	lumpBlockmap: "BLOCKMAP",
}

// Options configures a Loader.
type Options struct {
	// RejectPadWithFF selects 0xFF instead of 0x00 for the part of a short
	// REJECT lump not covered by the pad header.
	RejectPadWithFF bool

	Logger *zap.Logger
}

// Loader builds levels from lumps and keeps the current one.
type Loader struct {
	lumps   LumpSource
	names   TextureResolver
	spawner Spawner
	opts    Options
	log     *zap.Logger
	current *Level
}

// NewLoader creates a loader. spawner may be nil.
func NewLoader(lumps LumpSource, names TextureResolver, spawner Spawner, opts Options) *Loader {
	log := opts.Logger
	if log == nil {
		log = logger.Named("level")
	}
	return &Loader{
		lumps:   lumps,
		names:   names,
		spawner: spawner,
		opts:    opts,
		log:     log,
	}
}

// Current returns the installed level, or nil.
func (ld *Loader) Current() *Level {
	return ld.current
}

// stage is one step of a level load. Stages run in the order of the
// stages table; each may only depend on tables built before it.
type stage struct {
	lump int // offset from the marker, or 0 for stages that read no lump
	name string
	run  func(s *loadState, data []byte) (int, error)
}

var stages = []stage{
	{lumpBlockmap, "BLOCKMAP", (*loadState).blockmap},
	{lumpVertexes, "VERTEXES", (*loadState).vertexes},
	{lumpSectors, "SECTORS", (*loadState).sectors},
	{lumpSideDefs, "SIDEDEFS", (*loadState).sides},
	{lumpLineDefs, "LINEDEFS", (*loadState).lines},
	{lumpSSectors, "SSECTORS", (*loadState).subSectors},
	{lumpNodes, "NODES", (*loadState).nodes},
	{lumpSegs, "SEGS", (*loadState).segs},
	{0, "SSECTORS", (*loadState).group},
	{lumpReject, "REJECT", (*loadState).reject},
	{lumpThings, "THINGS", (*loadState).things},
}

type loadState struct {
	*Loader
	lvl    *Level
	marker int
	tag    string
	keep   bool // leave the current lump cached after its stage
}

// Load builds the level whose marker lump is called name, installs it as
// current and hands its things to the spawner. On failure the current
// level is left untouched and every lump cached for the attempt is
// released.
func (ld *Loader) Load(name string) (*Level, error) {
	name = encoding.NormalizeName(name)
	marker, ok := ld.lumps.LumpNumForName(name)
	if !ok {
		return nil, &LoadError{Level: name, Lump: name, Err: ErrMissingLump}
	}

	lvl := &Level{Name: name, Generation: uuid.New()}
	s := &loadState{
		Loader: ld,
		lvl:    lvl,
		marker: marker,
		tag:    lvl.Generation.String(),
	}

	log := ld.log.With(zap.String("map", name), zap.Stringer("generation", lvl.Generation))
	for _, st := range stages {
		count, err := s.runStage(st)
		if err != nil {
			ld.lumps.ReleaseTag(s.tag)
			log.Error("level load failed", zap.String("lump", st.name), zap.Error(err))
			return nil, err
		}
		log.Debug("stage done", zap.String("lump", st.name), zap.Int("count", count))
	}

	ld.Unload()
	ld.current = lvl

	st := lvl.Stats()
	log.Info("level loaded",
		zap.Int("vertexes", st.Vertexes),
		zap.Int("sectors", st.Sectors),
		zap.Int("lines", st.Lines),
		zap.Int("segs", st.Segs),
		zap.Int("subsectors", st.SubSectors),
		zap.Int("nodes", st.Nodes),
		zap.Int("things", st.Things),
		zap.Bool("reject_padded", st.RejectPadded))

	if ld.spawner != nil {
		for i, th := range lvl.Things {
			ld.spawner.SpawnMapThing(lvl, i, th)
		}
	}
	return lvl, nil
}

// Unload releases the current level and any lumps it still holds.
func (ld *Loader) Unload() {
	if ld.current == nil {
		return
	}
	released := ld.lumps.ReleaseTag(ld.current.Generation.String())
	ld.log.Debug("level unloaded",
		zap.String("map", ld.current.Name),
		zap.Int("lumps_released", released))
	ld.current.Release()
	ld.current = nil
}

func (s *loadState) runStage(st stage) (int, error) {
	var (
		num  = -1
		data []byte
	)
	if st.lump != 0 {
		num = s.marker + st.lump
		if got := s.lumps.LumpName(num); got != st.name {
			return 0, &LoadError{
				Level: s.lvl.Name,
				Lump:  st.name,
				Err:   fmt.Errorf("%w: found %q at %s+%d", ErrMissingLump, got, s.lvl.Name, st.lump),
			}
		}
		var err error
		if data, err = s.lumps.CacheLump(num, s.tag); err != nil {
			return 0, &LoadError{Level: s.lvl.Name, Lump: st.name, Err: err}
		}
	}

	s.keep = false
	count, err := st.run(s, data)
	if num >= 0 && !s.keep {
		s.lumps.ReleaseLump(num, s.tag)
	}
	if err != nil {
		return 0, &LoadError{Level: s.lvl.Name, Lump: st.name, Err: err}
	}
	return count, nil
}

func (s *loadState) blockmap(data []byte) (int, error) {
	bm, err := loadBlockmap(data)
	if err != nil {
		return 0, err
	}
	s.lvl.Blockmap = bm
	return bm.NumCells(), nil
}

func (s *loadState) vertexes(data []byte) (int, error) {
	err := s.lvl.loadVertexes(data)
	return len(s.lvl.Vertexes), err
}

func (s *loadState) sectors(data []byte) (int, error) {
	err := s.lvl.loadSectors(data, s.names)
	return len(s.lvl.Sectors), err
}

func (s *loadState) sides(data []byte) (int, error) {
	err := s.lvl.loadSides(data, s.names)
	return len(s.lvl.Sides), err
}

func (s *loadState) lines(data []byte) (int, error) {
	err := s.lvl.loadLines(data)
	return len(s.lvl.Lines), err
}

func (s *loadState) subSectors(data []byte) (int, error) {
	if err := s.lvl.loadSubSectors(data); err != nil {
		return 0, err
	}
	if len(s.lvl.SubSectors) == 0 {
		return 0, ErrNoSubSectors
	}
	return len(s.lvl.SubSectors), nil
}

func (s *loadState) nodes(data []byte) (int, error) {
	err := s.lvl.loadNodes(data)
	return len(s.lvl.Nodes), err
}

func (s *loadState) segs(data []byte) (int, error) {
	err := s.lvl.loadSegs(data)
	return len(s.lvl.Segs), err
}

func (s *loadState) group([]byte) (int, error) {
	err := s.lvl.groupLines()
	return s.lvl.TotalLines, err
}

func (s *loadState) reject(data []byte) (int, error) {
	s.lvl.Reject = s.lvl.loadReject(data, s.opts.RejectPadWithFF, s.log)
	s.keep = !s.lvl.Reject.Padded
	return len(s.lvl.Reject.Data), nil
}

func (s *loadState) things(data []byte) (int, error) {
	err := s.lvl.loadThings(data)
	return len(s.lvl.Things), err
}

// LevelName returns the marker lump name for a map: ExMy for episodic
// games, MAPxx for commercial ones.
func LevelName(episode, mapNum int, commercial bool) string {
	if commercial {
		return fmt.Sprintf("MAP%02d", mapNum)
	}
	return fmt.Sprintf("E%dM%d", episode, mapNum)
}
