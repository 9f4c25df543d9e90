// Package sqpath hashes logical FFXIV asset paths ("music/ffxiv/foo.scd")
// into the index hash and on-disk index2 filename that locates them inside
// a sqpack repository.
package sqpath

import (
	"fmt"
	"hash/crc32"
	"path"
	"strconv"
	"strings"

	"github.com/sqpack-tools/sqex/sqerr"
)

// jamcrcTable implements CRC-32/JAMCRC: IEEE polynomial, reflected in/out,
// but with no final XOR (the stdlib's IEEE table always XORs the result
// with 0xFFFFFFFF, so callers must undo it — see Hash below).
var jamcrcTable = crc32.MakeTable(crc32.IEEE)

// Hash computes the index2 hash used to locate p within an index file. The
// input is lowercased first, matching the case-insensitive path comparison
// FFXIV itself uses.
func Hash(p string) uint32 {
	lower := strings.ToLower(p)
	return ^crc32.Checksum([]byte(lower), jamcrcTable)
}

// Category is the first path segment of a logical asset path, naming the
// index file family it belongs to.
type Category uint8

// Category values and their index-filename hex prefixes, pinned exactly.
const (
	CategoryCommon     Category = 0x00
	CategoryBGCommon   Category = 0x01
	CategoryBG         Category = 0x02
	CategoryCut        Category = 0x03
	CategoryChara      Category = 0x04
	CategoryShader     Category = 0x05
	CategoryUI         Category = 0x06
	CategorySound      Category = 0x07
	CategoryVFX        Category = 0x08
	CategoryUIScript   Category = 0x09
	CategoryEXD        Category = 0x0a
	CategoryGameScript Category = 0x0b
	CategoryMusic      Category = 0x0c
	CategorySqpackTest Category = 0x12
	CategoryDebug      Category = 0x13
)

var categoryNames = map[string]Category{
	"common":       CategoryCommon,
	"bgcommon":     CategoryBGCommon,
	"bg":           CategoryBG,
	"cut":          CategoryCut,
	"chara":        CategoryChara,
	"shader":       CategoryShader,
	"ui":           CategoryUI,
	"sound":        CategorySound,
	"vfx":          CategoryVFX,
	"ui_script":    CategoryUIScript,
	"exd":          CategoryEXD,
	"game_script":  CategoryGameScript,
	"music":        CategoryMusic,
	"_sqpack_test": CategorySqpackTest,
	"_debug":       CategoryDebug,
}

// String returns the logical path segment for c, or "" if c is unknown.
func (c Category) String() string {
	for name, v := range categoryNames {
		if v == c {
			return name
		}
	}
	return ""
}

// Expansion is the second path segment of a logical asset path, naming the
// game expansion the asset belongs to.
type Expansion uint8

// Expansion values and their index-filename hex prefixes, pinned exactly.
const (
	ExpansionFFXIV          Expansion = 0x00
	ExpansionHeavensward    Expansion = 0x01
	ExpansionStormblood     Expansion = 0x02
	ExpansionShadowbringers Expansion = 0x03
	ExpansionEndwalker      Expansion = 0x04
)

var expansionNames = map[string]Expansion{
	"ffxiv": ExpansionFFXIV,
	"ex1":   ExpansionHeavensward,
	"ex2":   ExpansionStormblood,
	"ex3":   ExpansionShadowbringers,
	"ex4":   ExpansionEndwalker,
}

// String returns the logical path segment for e, or "" if e is unknown.
func (e Expansion) String() string {
	for name, v := range expansionNames {
		if v == e {
			return name
		}
	}
	return ""
}

// Locator identifies which sqpack index/dat file pair a logical path
// belongs to: its category, expansion, and the numeric part index parsed
// out of the filename.
type Locator struct {
	Category   Category
	Expansion  Expansion
	PartNumber uint8
}

// Parse derives the Locator for a logical asset path such as
// "music/ex3/BGM_EX3_Event_05.scd". It returns an *sqerr.InvalidSqPathError
// if any of the three segments are missing or unrecognized.
func Parse(logicalPath string) (Locator, error) {
	segments := strings.Split(logicalPath, "/")
	if len(segments) < 3 {
		return Locator{}, &sqerr.InvalidSqPathError{
			Path:   logicalPath,
			Reason: "expected at least 3 path segments",
		}
	}

	category, ok := categoryNames[segments[0]]
	if !ok {
		return Locator{}, &sqerr.InvalidSqPathError{
			Path:   logicalPath,
			Reason: fmt.Sprintf("unknown category %q", segments[0]),
		}
	}

	expansion, ok := expansionNames[segments[1]]
	if !ok {
		return Locator{}, &sqerr.InvalidSqPathError{
			Path:   logicalPath,
			Reason: fmt.Sprintf("unknown expansion %q", segments[1]),
		}
	}

	partNumber := parsePartNumber(segments[2])

	return Locator{Category: category, Expansion: expansion, PartNumber: partNumber}, nil
}

// parsePartNumber extracts the numeric part index from a filename such as
// "001_something.ext" or "0fe_uwu.owo", defaulting to 0 for filenames
// with no leading hex part (e.g. "root.exl") or one that does not fit in a
// byte (e.g. "165_dfghds.yss").
func parsePartNumber(filename string) uint8 {
	part, _, _ := strings.Cut(filename, "_")
	v, err := strconv.ParseUint(part, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

// IndexFileName returns the base index2 filename for this locator, e.g.
// "0c0300.win32.index2".
func (l Locator) IndexFileName() string {
	return fmt.Sprintf("%02x%02x%02x.win32.index2", byte(l.Category), byte(l.Expansion), l.PartNumber)
}

// DataFileName returns the base data filename for the given data file id
// within this locator's category/expansion/part, e.g. "0c0300.win32.dat1".
func (l Locator) DataFileName(dataFileID uint8) string {
	return fmt.Sprintf("%02x%02x%02x.win32.dat%d", byte(l.Category), byte(l.Expansion), l.PartNumber, dataFileID)
}

// IndexPath joins sqpackRoot with this locator's expansion directory and
// index filename, e.g. sqpackRoot/ex3/0c0300.win32.index2.
func (l Locator) IndexPath(sqpackRoot string) string {
	return path.Join(sqpackRoot, l.Expansion.String(), l.IndexFileName())
}

// DataPath joins sqpackRoot with this locator's expansion directory and
// data filename for the given data file id.
func (l Locator) DataPath(sqpackRoot string, dataFileID uint8) string {
	return path.Join(sqpackRoot, l.Expansion.String(), l.DataFileName(dataFileID))
}
