// Package hue implements the subtractive color algebra the whole game is
// built on. A color is a set of the three primary pigments packed into the
// low bits of a byte, so mixing is a bitwise OR, barrier subtraction is a
// bit clear, and coverage checks are a masked compare. All values are
// immutable; every operation returns a new Color.
package hue

import "strings"

// Color is a set of primary pigments. The zero value None is the colorless
// state (empty inventory slot, uncolored entity).
type Color uint8

const (
	None   Color = 0
	Red    Color = 1 << 0
	Yellow Color = 1 << 1
	Blue   Color = 1 << 2

	Orange = Red | Yellow
	Green  = Yellow | Blue
	Purple = Red | Blue
	Black  = Red | Yellow | Blue
)

// Primaries lists the three primary pigments in canonical order.
var Primaries = []Color{Red, Yellow, Blue}

// Combine mixes two colors subtractively (pigment union): Red+Yellow gives
// Orange, mixing all three gives Black. Commutative and idempotent, with
// None as the identity.
func Combine(a, b Color) Color {
	return a | b
}

// Subtract removes toRemove's pigments from source. Pigments not present in
// source are ignored, so subtracting is always total: Subtract(Red, Blue)
// is still Red, Subtract(Orange, Red) is Yellow.
func Subtract(source, toRemove Color) Color {
	return source &^ toRemove
}

// Contains reports whether inv covers every pigment of required. Extra
// pigments in inv never hurt: Black contains everything, and everything
// contains None.
func Contains(inv, required Color) bool {
	return inv&required == required
}

// CanPassThrough reports whether an entity whose combined color is combined
// may phase through a barrier of the given color. A None barrier blocks
// nobody.
func CanPassThrough(combined, barrier Color) bool {
	return Contains(combined, barrier)
}

// PrimaryCount returns how many primary pigments the color carries (0 to 3).
func (c Color) PrimaryCount() int {
	n := 0
	for _, p := range Primaries {
		if c&p != 0 {
			n++
		}
	}
	return n
}

// IsNone reports whether the color carries no pigment at all.
func (c Color) IsNone() bool { return c == None }

// IsPrimary reports whether the color is exactly one pigment.
func (c Color) IsPrimary() bool { return c.PrimaryCount() == 1 }

// IsSecondary reports whether the color is a mix of exactly two pigments.
func (c Color) IsSecondary() bool { return c.PrimaryCount() == 2 }

// IsBlack reports whether the color carries all three pigments.
func (c Color) IsBlack() bool { return c == Black }

// Split decomposes the color into its primary pigments in canonical order.
// None yields an empty slice.
func (c Color) Split() []Color {
	out := make([]Color, 0, 3)
	for _, p := range Primaries {
		if c&p != 0 {
			out = append(out, p)
		}
	}
	return out
}

// String returns the lowercase color name used in level files and logs.
func (c Color) String() string {
	switch c {
	case None:
		return "none"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	case Green:
		return "green"
	case Purple:
		return "purple"
	case Black:
		return "black"
	default:
		return "invalid"
	}
}

// Char returns a single character representation of the color for ASCII
// rendering. Black is K (print notation); None is a blank.
func (c Color) Char() rune {
	switch c {
	case Red:
		return 'R'
	case Yellow:
		return 'Y'
	case Blue:
		return 'B'
	case Orange:
		return 'O'
	case Green:
		return 'G'
	case Purple:
		return 'P'
	case Black:
		return 'K'
	default:
		return ' '
	}
}

// ParseColor converts a level-file string to a Color.
// Returns None and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, true
	case "red", "r":
		return Red, true
	case "yellow", "y":
		return Yellow, true
	case "blue", "b":
		return Blue, true
	case "orange", "o":
		return Orange, true
	case "green", "g":
		return Green, true
	case "purple", "p":
		return Purple, true
	case "black", "k":
		return Black, true
	default:
		return None, false
	}
}

// AllColors returns every distinct color value including None, in mask order.
func AllColors() []Color {
	return []Color{None, Red, Yellow, Orange, Blue, Purple, Green, Black}
}
