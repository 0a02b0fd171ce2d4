package study

import (
	"fmt"
	"strconv"
)

// DefaultColor is used when a task or note references a subject that no
// longer exists.
const DefaultColor = "blue"

// Palette maps the fixed subject/theme color names to their accent hex
// values.
var Palette = map[string]string{
	"blue":   "#2563eb",
	"red":    "#DC2626",
	"green":  "#16A34A",
	"orange": "#EA580C",
	"purple": "#7C3AED",
}

// ColorNames lists the palette in presentation order.
var ColorNames = []string{"blue", "red", "green", "orange", "purple"}

// ValidColor reports whether name is part of the fixed palette.
func ValidColor(name string) bool {
	_, ok := Palette[name]
	return ok
}

// AccentHex resolves a color name to its hex value, falling back to the
// default color for unknown names.
func AccentHex(name string) string {
	if hex, ok := Palette[name]; ok {
		return hex
	}
	return Palette[DefaultColor]
}

// ShadowFor derives the translucent shadow color used alongside an accent,
// as an rgba() string at 0.4 alpha.
func ShadowFor(hex string) string {
	r, g, b := hexRGB(hex)
	return fmt.Sprintf("rgba(%d,%d,%d,0.4)", r, g, b)
}

func hexRGB(hex string) (r, g, b int) {
	parse := func(s string) int {
		n, _ := strconv.ParseInt(s, 16, 32)
		return int(n)
	}
	switch len(hex) {
	case 4: // #rgb
		r = parse(string(hex[1]) + string(hex[1]))
		g = parse(string(hex[2]) + string(hex[2]))
		b = parse(string(hex[3]) + string(hex[3]))
	case 7: // #rrggbb
		r = parse(hex[1:3])
		g = parse(hex[3:5])
		b = parse(hex[5:7])
	}
	return r, g, b
}
