// Package modes is the canonical registry for the twelve AI personality modes.
// Accent colors, emoji, display labels and the score color buckets all live
// here so the compositor, caption builder and API handlers cannot drift apart.
package modes

import (
	"fmt"
	"image/color"
)

// Mode identifies the AI personality that produced a score result.
type Mode string

// The twelve personality modes.
const (
	Nice      Mode = "nice"
	Roast     Mode = "roast"
	Honest    Mode = "honest"
	Savage    Mode = "savage"
	Rizz      Mode = "rizz"
	Celeb     Mode = "celeb"
	Aura      Mode = "aura"
	Chaos     Mode = "chaos"
	Y2K       Mode = "y2k"
	Villain   Mode = "villain"
	Coquette  Mode = "coquette"
	Hypebeast Mode = "hypebeast"
)

// Info describes how a mode is presented.
type Info struct {
	Label  string
	Emoji  string
	Accent string // hex accent color used for the card glow
}

// DefaultAccent is used for modes without an explicit accent tuple.
const DefaultAccent = "#a78bfa"

// registry holds the per-mode presentation table. Eight modes carry an
// explicit accent; the rest fall back to DefaultAccent.
var registry = map[Mode]Info{
	Nice:      {Label: "Nice", Emoji: "💖", Accent: "#ff9ecb"},
	Roast:     {Label: "Roast", Emoji: "🔥", Accent: "#ff5c33"},
	Honest:    {Label: "Honest", Emoji: "🪞", Accent: DefaultAccent},
	Savage:    {Label: "Savage", Emoji: "💀", Accent: "#c084fc"},
	Rizz:      {Label: "Rizz", Emoji: "😏", Accent: "#f472b6"},
	Celeb:     {Label: "Celeb Judge", Emoji: "🎭", Accent: "#ffd700"},
	Aura:      {Label: "Aura", Emoji: "🔮", Accent: DefaultAccent},
	Chaos:     {Label: "Chaos", Emoji: "🌀", Accent: "#34d399"},
	Y2K:       {Label: "Y2K", Emoji: "📼", Accent: "#67e8f9"},
	Villain:   {Label: "Villain", Emoji: "🦹", Accent: "#8b5cf6"},
	Coquette:  {Label: "Coquette", Emoji: "🎀", Accent: DefaultAccent},
	Hypebeast: {Label: "Hypebeast", Emoji: "👟", Accent: DefaultAccent},
}

// All returns every known mode in declaration order.
func All() []Mode {
	return []Mode{Nice, Roast, Honest, Savage, Rizz, Celeb, Aura, Chaos, Y2K, Villain, Coquette, Hypebeast}
}

// Valid reports whether m names a known mode.
func Valid(m Mode) bool {
	_, ok := registry[m]
	return ok
}

// Lookup returns the presentation info for a mode. Unknown modes get the
// default accent and the raw mode string as label so rendering never fails
// on a new backend mode the client has not learned yet.
func Lookup(m Mode) Info {
	if info, ok := registry[m]; ok {
		return info
	}
	return Info{Label: string(m), Emoji: "✨", Accent: DefaultAccent}
}

// Score color buckets shared by the compositor and every screen surface.
const (
	ColorGold   = "#ffd700"
	ColorOrange = "#ff8c42"
	ColorCyan   = "#22d3ee"
	ColorAmber  = "#fbbf24"
	ColorRed    = "#f87171"
)

// ScoreColor maps an overall score to its display color.
// The bucketing is fixed: >=85 gold, >=75 orange, >=60 cyan, >=40 amber,
// below 40 red.
func ScoreColor(overall int) string {
	switch {
	case overall >= 85:
		return ColorGold
	case overall >= 75:
		return ColorOrange
	case overall >= 60:
		return ColorCyan
	case overall >= 40:
		return ColorAmber
	default:
		return ColorRed
	}
}

// PercentileFraming returns the footer copy for a percentile value. Scores
// at or above 50 brag, scores below self-deprecate. This is cosmetic copy,
// not a statistical claim.
func PercentileFraming(overall, percentile int) string {
	if overall >= 50 {
		return fmt.Sprintf("Better than %d%% of fits today", percentile)
	}
	return fmt.Sprintf("Worse than %d%% of fits today", percentile)
}

// ParseHex converts a #rrggbb string into a color.RGBA. Invalid input
// returns opaque black, matching canvas fillStyle behavior.
func ParseHex(hex string) color.RGBA {
	var r, g, b uint8
	if len(hex) == 7 && hex[0] == '#' {
		if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{A: 0xff}
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
