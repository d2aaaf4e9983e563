// Package sharecard composes the promotional PNG card for a score result.
// Layout is produced as a flat list of draw instructions by a pure function,
// then rasterized by Renderer; the layout math never touches a canvas.
package sharecard

import (
	"fmt"
	"math/rand"

	"github.com/fitrate/fitrate/internal/modes"
	"github.com/fitrate/fitrate/internal/types"
)

// Anchor selects horizontal text alignment around the instruction's X.
type Anchor int

// Text anchors.
const (
	AnchorLeft Anchor = iota
	AnchorCenter
	AnchorRight
)

// Instruction is a single drawing operation. The renderer executes
// instructions in order; alpha of zero is treated as fully opaque.
type Instruction interface{ instruction() }

// LinearGradient fills a rectangle with a vertical two-stop gradient.
type LinearGradient struct {
	X, Y, W, H  float64
	Top, Bottom string
}

// RadialGlow paints a soft radial tint fading to transparent.
type RadialGlow struct {
	CX, CY, R float64
	Hex       string
	Alpha     float64
}

// Line strokes a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Hex            string
	Alpha          float64
}

// RoundedRect fills a rounded rectangle.
type RoundedRect struct {
	X, Y, W, H, Radius float64
	Hex                string
	Alpha              float64
}

// Text draws a single line of text anchored at (X, Y) vertical-center.
type Text struct {
	X, Y    float64
	Content string
	Size    float64
	Hex     string
	Alpha   float64
	Bold    bool
	Align   Anchor
}

// Ring strokes a circular progress arc starting at 12 o'clock, clockwise.
// SweepDeg of 0 draws no arc; 360 closes the circle. The track underneath
// is always a full circle.
type Ring struct {
	CX, CY, R  float64
	Width      float64
	SweepDeg   float64
	Hex        string
	TrackHex   string
	TrackAlpha float64
}

// Photo places the user photo cover-fit inside a rounded rectangle.
type Photo struct {
	X, Y, W, H, Radius float64
}

// Scene is the complete declarative description of one card.
type Scene struct {
	W, H         int
	Instructions []Instruction
}

// Measurer reports rendered text width in pixels for layout decisions.
type Measurer interface {
	MeasureString(s string, size float64, bold bool) float64
}

// Fallback background gradient when the request carries no card DNA.
const (
	fallbackGradientTop    = "#1b1033"
	fallbackGradientBottom = "#0b0618"
)

var sharePrompts = []string{
	"Drop your fit 👇",
	"Can you beat this?",
	"Rate mine, I'll rate yours",
	"Your turn. Cook.",
}

// RandomPrompt picks one decorative share-trigger line. Purely cosmetic,
// no seeding requirement.
func RandomPrompt() string {
	return sharePrompts[rand.Intn(len(sharePrompts))]
}

// BuildScene lays out a card for the request. The prompt is the
// share-trigger line, already chosen by the caller.
func BuildScene(req *types.ShareCardRequest, m Measurer, prompt string) *Scene {
	w, h := req.Format.Dimensions()
	fw, fh := float64(w), float64(h)
	story := req.Format != types.FormatFeed
	scores := &req.Scores
	info := modes.Lookup(scores.Mode)
	scoreHex := modes.ScoreColor(scores.Overall)

	s := &Scene{W: w, H: h}
	add := func(ins Instruction) { s.Instructions = append(s.Instructions, ins) }

	// Background and mode glow.
	top, bottom := fallbackGradientTop, fallbackGradientBottom
	if req.DNA != nil && req.DNA.GradientTop != "" && req.DNA.GradientBottom != "" {
		top, bottom = req.DNA.GradientTop, req.DNA.GradientBottom
	}
	add(&LinearGradient{W: fw, H: fh, Top: top, Bottom: bottom})
	add(&RadialGlow{CX: fw / 2, CY: fh * 0.28, R: fw * 0.55, Hex: info.Accent, Alpha: 0.35})

	// Header band.
	headerY := fh * 0.055
	if story {
		headerY = fh * 0.075
	}
	if req.DailyChallenge != nil {
		label := fmt.Sprintf("⚡ #%d OF %d TODAY", req.DailyChallenge.Rank, req.DailyChallenge.Participants)
		pw := m.MeasureString(label, 30, true) + 64
		add(&RoundedRect{X: fw/2 - pw/2, Y: headerY - 28, W: pw, H: 56, Radius: 28, Hex: info.Accent, Alpha: 0.9})
		add(&Text{X: fw / 2, Y: headerY, Content: label, Size: 30, Hex: "#0b0618", Bold: true, Align: AnchorCenter})
	} else {
		label := "TODAY'S FIT VERDICT"
		lw := m.MeasureString(label, 32, true)
		gap := lw/2 + 40
		add(&Line{X1: fw * 0.1, Y1: headerY, X2: fw/2 - gap, Y2: headerY, Width: 3, Hex: "#ffffff", Alpha: 0.35})
		add(&Line{X1: fw/2 + gap, Y1: headerY, X2: fw * 0.9, Y2: headerY, Width: 3, Hex: "#ffffff", Alpha: 0.35})
		add(&Text{X: fw / 2, Y: headerY, Content: label, Size: 32, Hex: "#ffffff", Alpha: 0.85, Bold: true, Align: AnchorCenter})
	}

	// Vertical rhythm. The feed square has far less height than the story
	// portrait, so every gap below the ring shrinks with it; the trailing
	// pill and badges must clear the footer block.
	ringR := 130.0
	ringCY := fh * 0.215
	panelGap, panelH := 38.0, 236.0
	barGap, barStep := 38.0, 42.0
	pillGap, badgeGap := 24.0, 52.0
	if story {
		ringR = 190
		ringCY = fh * 0.23
		panelGap, panelH = 60, 360
		barGap, barStep = 50, 48
		pillGap, badgeGap = 30, 70
	}
	add(&Ring{
		CX: fw / 2, CY: ringCY, R: ringR, Width: 26,
		SweepDeg:   float64(scores.Overall) / 100 * 360,
		Hex:        scoreHex,
		TrackHex:   "#ffffff",
		TrackAlpha: 0.12,
	})
	add(&Text{X: fw / 2, Y: ringCY - 14, Content: fmt.Sprintf("%d", scores.Overall), Size: ringR * 0.85, Hex: scoreHex, Bold: true, Align: AnchorCenter})
	add(&Text{X: fw / 2, Y: ringCY + ringR*0.52, Content: "/100", Size: 36, Hex: "#ffffff", Alpha: 0.6, Align: AnchorCenter})

	// Verdict panel: wrapped text left, photo right.
	panelY := ringCY + ringR + panelGap
	add(&RoundedRect{X: 80, Y: panelY, W: fw - 160, H: panelH, Radius: 32, Hex: "#000000", Alpha: 0.35})

	textX := 120.0
	textMax := fw/2 - 80
	ty := panelY + 60
	for _, line := range Wrap(m, scores.Verdict, 50, true, textMax) {
		add(&Text{X: textX, Y: ty, Content: line, Size: 50, Hex: "#ffffff", Bold: true})
		ty += 58
	}
	if scores.Tagline != "" {
		ty += 8
		for _, line := range Wrap(m, fmt.Sprintf("“%s”", scores.Tagline), 30, false, textMax) {
			add(&Text{X: textX, Y: ty, Content: line, Size: 30, Hex: "#ffffff", Alpha: 0.75})
			ty += 40
		}
	}
	identity := fmt.Sprintf("%s %s", info.Emoji, info.Label)
	if scores.CelebrityJudge != "" {
		identity = fmt.Sprintf("%s Judged by %s", info.Emoji, scores.CelebrityJudge)
	}
	for _, line := range Wrap(m, identity, 26, false, textMax) {
		ty += 38
		add(&Text{X: textX, Y: ty, Content: line, Size: 26, Hex: info.Accent})
	}

	photoW := fw/2 - 180
	add(&Photo{X: fw/2 + 80, Y: panelY + 30, W: photoW, H: panelH - 60, Radius: 24})

	// Metric bars.
	style, risk, intent := scores.Metrics()
	barY := panelY + panelH + barGap
	barW := fw - 360
	for _, bar := range []struct {
		label string
		value int
	}{{"STYLE", style}, {"RISK", risk}, {"INTENT", intent}} {
		add(&Text{X: 100, Y: barY, Content: bar.label, Size: 24, Hex: "#ffffff", Alpha: 0.6, Bold: true})
		add(&RoundedRect{X: 240, Y: barY - 7, W: barW, H: 14, Radius: 7, Hex: "#ffffff", Alpha: 0.12})
		if bar.value > 0 {
			add(&RoundedRect{X: 240, Y: barY - 7, W: barW * float64(bar.value) / 100, H: 14, Radius: 7, Hex: scoreHex})
		}
		add(&Text{X: 240 + barW + 24, Y: barY, Content: fmt.Sprintf("%d", bar.value), Size: 24, Hex: "#ffffff", Alpha: 0.8})
		barY += barStep
	}

	// Share trigger pill.
	pillY := barY + pillGap
	pw := m.MeasureString(prompt, 28, true) + 72
	add(&RoundedRect{X: fw/2 - pw/2, Y: pillY - 26, W: pw, H: 52, Radius: 26, Hex: "#ffffff", Alpha: 0.1})
	add(&Text{X: fw / 2, Y: pillY, Content: prompt, Size: 28, Hex: "#ffffff", Alpha: 0.9, Bold: true, Align: AnchorCenter})

	// DNA badges, up to two, centered side by side.
	if req.DNA != nil {
		var labels []string
		if req.DNA.TimeOfDay != "" {
			labels = append(labels, req.DNA.TimeOfDay)
		}
		if req.DNA.Streak != "" {
			labels = append(labels, req.DNA.Streak)
		}
		if len(labels) > 2 {
			labels = labels[:2]
		}
		if len(labels) > 0 {
			badgeY := pillY + badgeGap
			const pad, gap = 36.0, 16.0
			total := gap * float64(len(labels)-1)
			widths := make([]float64, len(labels))
			for i, l := range labels {
				widths[i] = m.MeasureString(l, 24, false) + pad
				total += widths[i]
			}
			x := fw/2 - total/2
			for i, l := range labels {
				add(&RoundedRect{X: x, Y: badgeY - 22, W: widths[i], H: 44, Radius: 22, Hex: info.Accent, Alpha: 0.25})
				add(&Text{X: x + widths[i]/2, Y: badgeY, Content: l, Size: 24, Hex: "#ffffff", Alpha: 0.9, Align: AnchorCenter})
				x += widths[i] + gap
			}
		}
	}

	// Footer: event overlay, percentile framing, branding.
	footerY := fh - 64
	if req.Event != nil {
		add(&Text{
			X: fw / 2, Y: footerY - 96,
			Content: fmt.Sprintf("%s · #%d of %d", req.Event.EventName, req.Event.Rank, req.Event.Participants),
			Size:    26, Hex: info.Accent, Align: AnchorCenter,
		})
	}
	add(&Text{
		X: fw / 2, Y: footerY - 48,
		Content: modes.PercentileFraming(scores.Overall, scores.PercentileOrDefault()),
		Size:    28, Hex: "#ffffff", Alpha: 0.7, Align: AnchorCenter,
	})
	add(&Text{X: fw / 2, Y: footerY, Content: "FITRATE.APP", Size: 30, Hex: "#ffffff", Alpha: 0.5, Bold: true, Align: AnchorCenter})

	return s
}

func (*LinearGradient) instruction() {}
func (*RadialGlow) instruction()     {}
func (*Line) instruction()           {}
func (*RoundedRect) instruction()    {}
func (*Text) instruction()           {}
func (*Ring) instruction()           {}
func (*Photo) instruction()          {}
