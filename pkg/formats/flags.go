package formats

import "strings"

// LineFlags holds the LINEDEFS flags field.
type LineFlags int16

// Line flags.
const (
	LineBlocking      LineFlags = 1 << iota // solid for players and monsters
	LineBlockMonsters                       // solid for monsters only
	LineTwoSided                            // has a back side
	LineDontPegTop                          // upper texture unpegged
	LineDontPegBottom                       // lower texture unpegged
	LineSecret                              // drawn as one-sided on the automap
	LineSoundBlock                          // blocks sound propagation
	LineDontDraw                            // never drawn on the automap
	LineMapped                              // already seen on the automap
	LineJumpOver                            // Strife: railing, can be jumped
	LineBlockFloaters                       // Strife: blocks floating monsters
	LineTranslucent1                        // Strife: 25% translucent
	LineTranslucent2                        // Strife: 75% translucent
)

var lineFlagNames = []string{
	"blocking", "blockmonsters", "twosided", "dontpegtop", "dontpegbottom",
	"secret", "soundblock", "dontdraw", "mapped", "jumpover",
	"blockfloaters", "translucent1", "translucent2",
}

// Has reports whether all bits of flag are set.
func (f LineFlags) Has(flag LineFlags) bool {
	return f&flag == flag
}

// String lists the set flags separated by '|'.
func (f LineFlags) String() string {
	var names []string
	for i, name := range lineFlagNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ThingOptions holds the THINGS options field.
type ThingOptions int16

// Thing options.
const (
	ThingSkill1and2      ThingOptions = 1 << iota // present on easy skills
	ThingSkill3                                   // present on medium skill
	ThingSkill4and5                               // present on hard skills
	ThingAmbush                                   // deaf until it sees a player
	ThingMultiplayerOnly                          // not spawned in single player
)

// Has reports whether all bits of opt are set.
func (o ThingOptions) Has(opt ThingOptions) bool {
	return o&opt == opt
}

// SubSectorFlag marks a node child as a sub-sector reference.
const SubSectorFlag Child = 0x8000

// Child is a BSP node child reference: a node index, or a sub-sector index
// when SubSectorFlag is set.
type Child uint16

// IsSubSector reports whether the child refers to a sub-sector.
func (c Child) IsSubSector() bool {
	return c&SubSectorFlag != 0
}

// Index returns the referenced node or sub-sector index.
func (c Child) Index() int {
	return int(c &^ SubSectorFlag)
}
