package tui

import (
	"strings"
	"sync"
)

// Some terminals/fonts render box-drawing and ballot glyphs poorly, so the row
// markers come in a Unicode and an ASCII flavour.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference(v string) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphChecked() string   { return pick("☑", "[x]") }
func glyphUnchecked() string { return pick("☐", "[ ]") }
func glyphSkipped() string   { return pick("–", " - ") }
func glyphNote() string      { return pick("·", " . ") }
func glyphGroup() string     { return pick("▾", " v ") }
func glyphGroupDone() string { return pick("✓", "ok ") }
func glyphCursor() string    { return pick("›", ">") }
func glyphHRule() string     { return pick("─", "-") }
