// maptool is a CLI utility for inspecting and extracting WAD map data.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/levelgeo/internal/assets"
	"github.com/Faultbox/levelgeo/internal/config"
	"github.com/Faultbox/levelgeo/internal/level"
	"github.com/Faultbox/levelgeo/internal/logger"
	"github.com/Faultbox/levelgeo/pkg/formats"
	"github.com/Faultbox/levelgeo/pkg/wad"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "info":
		cmdInfo(args)
	case "list", "ls":
		cmdList(args)
	case "levels":
		cmdLevels(cfg)
	case "load":
		cmdLoad(cfg, args)
	case "reject":
		cmdReject(cfg, args)
	case "extract", "x":
		cmdExtract(cfg, args)
	case "config":
		cmdConfig(cfg, args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`maptool - WAD map geometry utility

Usage:
  maptool [flags] <command> [options]

Flags:
  -config <file>          Config file (default ./config.yaml)
  -wad <a.wad,b.wad>      WAD files, IWAD first
  -map <name>             Map to work on (E1M1, MAP01)
  -reject-pad-with-ff     Pad short REJECT lumps with 0xFF
  -debug                  Debug logging
  -log-file <file>        Also log to a file

Commands:
  info <file.wad>               Show archive information
  list <file.wad> [pattern]     List lumps (optional glob pattern)
  levels                        List maps in the configured WADs
  load [map]                    Load a map and print its tables
  reject [map]                  Print a map's reject matrix
  extract [map] <output.wad>    Write a map's lumps to a PWAD
  config [output.yaml]          Save the merged settings (default: user config)

Examples:
  maptool info doom2.wad
  maptool -wad doom2.wad levels
  maptool -wad doom2.wad,mymap.wad load MAP01
  maptool -wad doom.wad extract E1M1 e1m1.wad
  maptool -wad doom2.wad -map MAP07 config`)
}

// fatalf exits without running deferred calls, so the logger is
// flushed here.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	logger.Sync()
	os.Exit(1)
}

func cmdConfig(cfg *config.Config, args []string) {
	var (
		path string
		err  error
	)
	if len(args) > 0 {
		path = args[0]
		err = cfg.SaveTo(path)
	} else {
		path, err = cfg.Save()
	}
	if err != nil {
		fatalf("Error: %v", err)
	}
	fmt.Printf("Saved config to %s\n", path)
}

func openManager(cfg *config.Config) *assets.Manager {
	if err := cfg.Validate(); err != nil {
		fatalf("Error: %v", err)
	}
	m := assets.NewManager()
	for _, path := range cfg.Data.WADPaths {
		if err := m.AddArchive(path); err != nil {
			fatalf("Error: %v", err)
		}
		logger.Debug("archive added", zap.String("path", path))
	}
	return m
}

// mapArg returns the map named on the command line or the configured one.
func mapArg(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return strings.ToUpper(args[0])
	}
	return cfg.Level.Map
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fatalf("Usage: maptool info <file.wad>")
	}

	archive, err := wad.Open(args[0])
	if err != nil {
		fatalf("Error: %v", err)
	}
	defer archive.Close()

	var totalSize int
	for i := 0; i < archive.NumLumps(); i++ {
		lump, _ := archive.Lump(i)
		totalSize += lump.Size
	}

	kind := wad.MagicPWAD
	if archive.IsIWAD() {
		kind = wad.MagicIWAD
	}

	levels := archive.Levels()
	fmt.Printf("Archive: %s\n", args[0])
	fmt.Printf("Type:    %s\n", kind)
	fmt.Printf("Lumps:   %d\n", archive.NumLumps())
	fmt.Printf("Size:    %.2f MB\n", float64(totalSize)/(1024*1024))
	fmt.Printf("Maps:    %d\n", len(levels))
	if len(levels) > 0 {
		fmt.Printf("         %s\n", strings.Join(levels, " "))
	}
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N lumps (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatalf("Usage: maptool list <file.wad> [pattern]")
	}

	archive, err := wad.Open(fs.Arg(0))
	if err != nil {
		fatalf("Error: %v", err)
	}
	defer archive.Close()

	pattern := ""
	if fs.NArg() > 1 {
		pattern = strings.ToUpper(fs.Arg(1))
	}

	count := 0
	for i := 0; i < archive.NumLumps(); i++ {
		lump, _ := archive.Lump(i)
		if pattern != "" {
			matched, _ := filepath.Match(pattern, lump.Name)
			if !matched && !strings.Contains(lump.Name, pattern) {
				continue
			}
		}
		fmt.Printf("%5d  %-8s  %8d\n", i, lump.Name, lump.Size)
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}

	if pattern != "" {
		fmt.Fprintf(os.Stderr, "\n(%d lumps matched)\n", count)
	}
}

func cmdLevels(cfg *config.Config) {
	m := openManager(cfg)
	defer m.Close()

	levels := m.Levels()
	sort.Strings(levels)
	for _, name := range levels {
		num, _ := m.LumpNumForName(name)
		fmt.Printf("%-8s  %s\n", name, filepath.Base(m.ArchiveName(num)))
	}
	fmt.Fprintf(os.Stderr, "\n(%d maps)\n", len(levels))
}

// loadLevel loads one map with the full lump and name stack. The returned
// counts tally spawned things by type.
func loadLevel(cfg *config.Config, m *assets.Manager, name string) (*level.Level, map[int16]int) {
	names, err := assets.NewNameTable(m)
	if err != nil {
		fatalf("Error: %v", err)
	}

	counts := make(map[int16]int)
	spawner := level.SpawnFunc(func(_ *level.Level, _ int, th formats.Thing) {
		counts[th.Type]++
	})

	loader := level.NewLoader(m, names, spawner, level.Options{
		RejectPadWithFF: cfg.Level.RejectPadWithFF,
		Logger:          logger.Named("level"),
	})
	lvl, err := loader.Load(name)
	if err != nil {
		logger.Error("load failed", zap.Error(err))
		fatalf("Error: %v", err)
	}
	return lvl, counts
}

func cmdLoad(cfg *config.Config, args []string) {
	m := openManager(cfg)
	defer m.Close()

	lvl, counts := loadLevel(cfg, m, mapArg(cfg, args))
	st := lvl.Stats()

	fmt.Printf("Map:        %s (%s)\n", lvl.Name, lvl.Generation)
	fmt.Printf("Vertexes:   %d\n", st.Vertexes)
	fmt.Printf("Sectors:    %d\n", st.Sectors)
	fmt.Printf("Sides:      %d\n", st.Sides)
	fmt.Printf("Lines:      %d (%d sector references)\n", st.Lines, lvl.TotalLines)
	fmt.Printf("Segs:       %d\n", st.Segs)
	fmt.Printf("SubSectors: %d\n", st.SubSectors)
	fmt.Printf("Nodes:      %d (root %#04x)\n", st.Nodes, uint16(lvl.Root()))
	fmt.Printf("Blockmap:   %dx%d at (%v, %v)\n", st.BlockmapWidth, st.BlockmapHeight,
		lvl.Blockmap.OriginX, lvl.Blockmap.OriginY)
	fmt.Printf("Reject:     %d bytes", st.RejectBytes)
	if st.RejectPadded {
		fmt.Print(" (padded)")
	}
	fmt.Println()
	fmt.Printf("Things:     %d\n", st.Things)
	for _, th := range lvl.Things {
		if th.Type < 1 || th.Type > 4 {
			continue
		}
		pos, facing := th.Position().Vec2(), th.Facing()
		dir := facing.Direction()
		fmt.Printf("  player %d start (%.0f, %.0f) facing %.0f° (%.2f, %.2f)\n",
			th.Type, pos.X, pos.Y, facing.Degrees(), dir.X, dir.Y)
	}

	type typeStat struct {
		typ   int16
		count int
	}
	var stats []typeStat
	for typ, count := range counts {
		stats = append(stats, typeStat{typ, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].typ < stats[j].typ
	})
	for i, s := range stats {
		if i == 10 {
			fmt.Printf("  ... %d more types\n", len(stats)-i)
			break
		}
		fmt.Printf("  type %-5d %d\n", s.typ, s.count)
	}
}

func cmdReject(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("reject", flag.ExitOnError)
	maxSectors := fs.Int("max", 64, "Print the matrix only up to this many sectors")
	fs.Parse(args)

	m := openManager(cfg)
	defer m.Close()

	lvl, _ := loadLevel(cfg, m, mapArg(cfg, fs.Args()))
	r := lvl.Reject
	n := r.NumSectors

	rejected := 0
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if r.Rejected(level.SectorID(a), level.SectorID(b)) {
				rejected++
			}
		}
	}
	fmt.Printf("Map %s: %d sectors, %d bytes, %d of %d pairs rejected\n",
		lvl.Name, n, len(r.Data), rejected, n*n)
	if r.Padded {
		fmt.Println("REJECT lump was short and has been padded")
	}

	if n > *maxSectors {
		return
	}
	for a := 0; a < n; a++ {
		var row strings.Builder
		for b := 0; b < n; b++ {
			if r.Rejected(level.SectorID(a), level.SectorID(b)) {
				row.WriteByte('#')
			} else {
				row.WriteByte('.')
			}
		}
		fmt.Printf("%4d %s\n", a, row.String())
	}
}

// mapLumps are the lumps following a map marker, in directory order.
var mapLumps = []string{
	"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS",
	"SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP",
}

func cmdExtract(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fatalf("Usage: maptool extract [map] <output.wad>")
	}
	output := args[len(args)-1]
	name := mapArg(cfg, args[:len(args)-1])

	m := openManager(cfg)
	defer m.Close()

	marker, err := m.GetNumForName(name)
	if err != nil {
		fatalf("Error: %v", err)
	}

	w := wad.NewWriter(wad.MagicPWAD)
	w.Add(name, nil)
	for i, lump := range mapLumps {
		num := marker + i + 1
		if got := m.LumpName(num); got != lump {
			fatalf("Error: %s: expected %s at +%d, found %q", name, lump, i+1, got)
		}
		data, err := m.ReadLump(num)
		if err != nil {
			fatalf("Error reading %s: %v", lump, err)
		}
		w.Add(lump, data)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		fatalf("Error creating directory: %v", err)
	}
	f, err := os.Create(output)
	if err != nil {
		fatalf("Error: %v", err)
	}
	n, err := w.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fatalf("Error writing %s: %v", output, err)
	}

	fmt.Printf("Extracted: %s -> %s (%d bytes)\n", name, output, n)
}
