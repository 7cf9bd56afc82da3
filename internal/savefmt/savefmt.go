// Package savefmt holds the static naming and layout rules of each supported
// save-storage convention. It is a pure lookup table with no filesystem access.
package savefmt

import (
	"fmt"
	"strings"
)

// SaveFormat identifies a platform's save-storage convention.
type SaveFormat string

const (
	Project64   SaveFormat = "project64"
	Mupen64Plus SaveFormat = "mupen64plus"
	Everdrive   SaveFormat = "everdrive"
)

// ParseFormat resolves a user-supplied format name, case-insensitively.
func ParseFormat(s string) (SaveFormat, error) {
	switch SaveFormat(strings.ToLower(s)) {
	case Project64:
		return Project64, nil
	case Mupen64Plus:
		return Mupen64Plus, nil
	case Everdrive:
		return Everdrive, nil
	default:
		return "", fmt.Errorf("unknown save format %q (want project64, mupen64plus or everdrive)", s)
	}
}

func (f SaveFormat) String() string {
	return string(f)
}

// SaveKind is the category of persistent data a cartridge or controller holds.
// A cartridge uses at most one of Eeprom/Sram/FlashRam plus zero or more
// controller pak slots.
type SaveKind uint8

const (
	Eeprom SaveKind = iota
	Sram
	FlashRam
	ControllerPak1
	ControllerPak2
	ControllerPak3
	ControllerPak4
)

var saveKindNames = []string{
	"eeprom",
	"sram",
	"flashram",
	"controller_pak_1",
	"controller_pak_2",
	"controller_pak_3",
	"controller_pak_4",
}

// AllKinds lists every save kind in a stable processing order.
var AllKinds = []SaveKind{
	Eeprom,
	Sram,
	FlashRam,
	ControllerPak1,
	ControllerPak2,
	ControllerPak3,
	ControllerPak4,
}

func (k SaveKind) String() string {
	return saveKindNames[k]
}

// IsControllerPak reports whether the kind is a controller pak slot.
func (k SaveKind) IsControllerPak() bool {
	return k >= ControllerPak1 && k <= ControllerPak4
}

// Slot returns the controller pak slot number (1..4), or 0 for cartridge kinds.
func (k SaveKind) Slot() int {
	if !k.IsControllerPak() {
		return 0
	}
	return int(k-ControllerPak1) + 1
}

// UsesGameSubfolder reports whether the format keeps each game's saves in a
// dedicated per-game subfolder rather than flat under the save root.
func (f SaveFormat) UsesGameSubfolder() bool {
	return f == Project64
}

// Extension returns the file extension (with leading dot) the format uses for
// the given kind. ok is false when the format has no per-file representation
// for the kind, such as controller pak slots on Mupen64Plus where pak data
// lives inside the consolidated .srm file.
func (f SaveFormat) Extension(k SaveKind) (ext string, ok bool) {
	switch f {
	case Everdrive:
		switch k {
		case Eeprom:
			return ".eep", true
		case Sram:
			return ".srm", true
		case FlashRam:
			return ".fla", true
		default:
			return ".mpk", true
		}
	case Project64:
		switch k {
		case Eeprom:
			return ".eep", true
		case Sram:
			return ".sra", true
		case FlashRam:
			return ".fla", true
		default:
			return ".mpk", true
		}
	case Mupen64Plus:
		// One consolidated file per game holds eeprom, sram and flashram.
		if k.IsControllerPak() {
			return "", false
		}
		return ".srm", true
	}
	panic(fmt.Sprintf("savefmt: unknown format %q", f))
}

// ControllerPakSuffix returns the filename suffix inserted before the
// extension for the given pak slot. Project64 names every slot explicitly;
// Everdrive leaves slot 1 bare.
func (f SaveFormat) ControllerPakSuffix(slot int) string {
	if slot == 1 && f != Project64 {
		return ""
	}
	return fmt.Sprintf("_Cont_%d", slot)
}

// StripRegionTags removes parenthesized and bracketed release tags, such as
// "(USA)" or "[!]", from a canonical game name. Subfolder-layout formats name
// their per-game folders after the bare title.
func StripRegionTags(name string) string {
	var b strings.Builder
	depth := 0
	for _, r := range name {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(strings.Join(strings.Fields(b.String()), " "))
}
