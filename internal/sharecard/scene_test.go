package sharecard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitrate/fitrate/internal/modes"
	"github.com/fitrate/fitrate/internal/types"
)

// fakeMeasurer approximates text width as a fixed fraction of the font size
// per character, which is enough for layout assertions.
type fakeMeasurer struct{}

func (fakeMeasurer) MeasureString(s string, size float64, bold bool) float64 {
	return float64(len([]rune(s))) * size * 0.55
}

func baseRequest(overall int) *types.ShareCardRequest {
	return &types.ShareCardRequest{
		Scores: types.ScoreResult{Overall: overall, Verdict: "Clean lines, strong silhouette", Tagline: "no notes", Mode: modes.Nice},
		Format: types.FormatFeed,
		UserID: "u-1",
	}
}

func findRing(t *testing.T, s *Scene) *Ring {
	t.Helper()
	for _, ins := range s.Instructions {
		if ring, ok := ins.(*Ring); ok {
			return ring
		}
	}
	t.Fatal("scene has no ring instruction")
	return nil
}

func textContents(s *Scene) []string {
	var out []string
	for _, ins := range s.Instructions {
		if txt, ok := ins.(*Text); ok {
			out = append(out, txt.Content)
		}
	}
	return out
}

func TestBuildScene_Dimensions(t *testing.T) {
	req := baseRequest(80)
	s := BuildScene(req, fakeMeasurer{}, "Drop your fit 👇")
	assert.Equal(t, 1080, s.W)
	assert.Equal(t, 1080, s.H)

	req.Format = types.FormatStory
	s = BuildScene(req, fakeMeasurer{}, "Drop your fit 👇")
	assert.Equal(t, 1080, s.W)
	assert.Equal(t, 1920, s.H)
}

func TestBuildScene_RingSweepProportionalToScore(t *testing.T) {
	tests := []struct {
		overall int
		want    float64
	}{
		{0, 0},
		{25, 90},
		{50, 180},
		{92, 331.2},
		{100, 360},
	}

	for _, tt := range tests {
		s := BuildScene(baseRequest(tt.overall), fakeMeasurer{}, "p")
		ring := findRing(t, s)
		assert.InDelta(t, tt.want, ring.SweepDeg, 0.0001, "overall=%d", tt.overall)
	}
}

func TestBuildScene_RingColorFollowsScoreBuckets(t *testing.T) {
	for _, tt := range []struct {
		overall int
		want    string
	}{{90, modes.ColorGold}, {78, modes.ColorOrange}, {65, modes.ColorCyan}, {45, modes.ColorAmber}, {10, modes.ColorRed}} {
		s := BuildScene(baseRequest(tt.overall), fakeMeasurer{}, "p")
		assert.Equal(t, tt.want, findRing(t, s).Hex, "overall=%d", tt.overall)
	}
}

func TestBuildScene_RingTrackIsFaintFullCircle(t *testing.T) {
	ring := findRing(t, BuildScene(baseRequest(70), fakeMeasurer{}, "p"))
	assert.Equal(t, "#ffffff", ring.TrackHex)
	assert.InDelta(t, 0.12, ring.TrackAlpha, 0.0001)
}

func TestBuildScene_PercentileFraming(t *testing.T) {
	req := baseRequest(80)
	p := 91
	req.Scores.Percentile = &p
	got := textContents(BuildScene(req, fakeMeasurer{}, "p"))
	assert.Contains(t, got, "Better than 91% of fits today")

	req = baseRequest(30)
	p = 88
	req.Scores.Percentile = &p
	got = textContents(BuildScene(req, fakeMeasurer{}, "p"))
	assert.Contains(t, got, "Worse than 88% of fits today")
}

func TestBuildScene_DailyChallengeReplacesHeaderRule(t *testing.T) {
	req := baseRequest(80)
	req.DailyChallenge = &types.DailyChallengeContext{Rank: 4, Participants: 1287}
	got := textContents(BuildScene(req, fakeMeasurer{}, "p"))
	assert.Contains(t, got, "⚡ #4 OF 1287 TODAY")
	assert.NotContains(t, got, "TODAY'S FIT VERDICT")
}

func TestBuildScene_DefaultHeader(t *testing.T) {
	got := textContents(BuildScene(baseRequest(80), fakeMeasurer{}, "p"))
	assert.Contains(t, got, "TODAY'S FIT VERDICT")
}

func TestBuildScene_EventOverlay(t *testing.T) {
	req := baseRequest(80)
	req.Event = &types.EventContext{EventName: "DENIM WEEK", Rank: 3, Participants: 812}
	got := textContents(BuildScene(req, fakeMeasurer{}, "p"))
	assert.Contains(t, got, "DENIM WEEK · #3 of 812")
}

func TestBuildScene_CelebrityJudgeIdentityLine(t *testing.T) {
	req := baseRequest(90)
	req.Scores.Mode = modes.Celeb
	req.Scores.CelebrityJudge = "Anna Wintour"
	got := textContents(BuildScene(req, fakeMeasurer{}, "p"))
	assert.Contains(t, got, "🎭 Judged by Anna Wintour")
}

func TestBuildScene_DNAGradientOverridesFallback(t *testing.T) {
	req := baseRequest(80)
	req.DNA = &types.CardDNA{GradientTop: "#112233", GradientBottom: "#445566"}
	s := BuildScene(req, fakeMeasurer{}, "p")

	grad, ok := s.Instructions[0].(*LinearGradient)
	require.True(t, ok, "first instruction should be the background gradient")
	assert.Equal(t, "#112233", grad.Top)
	assert.Equal(t, "#445566", grad.Bottom)
}

func TestBuildScene_DNABadgesCappedAtTwo(t *testing.T) {
	req := baseRequest(80)
	req.DNA = &types.CardDNA{TimeOfDay: "🌙 Night Owl", Streak: "🔥 7 day streak"}
	got := textContents(BuildScene(req, fakeMeasurer{}, "p"))
	assert.Contains(t, got, "🌙 Night Owl")
	assert.Contains(t, got, "🔥 7 day streak")
}

func TestBuildScene_MetricBarsUsePartialFill(t *testing.T) {
	req := baseRequest(80)
	v := 50
	req.Scores.ColorEnergy = &v
	s := BuildScene(req, fakeMeasurer{}, "p")

	// The half-value fill bar should be exactly half the track width.
	barW := 1080.0 - 360
	found := false
	for _, ins := range s.Instructions {
		if rect, ok := ins.(*RoundedRect); ok && rect.X == 240 && rect.W == barW/2 {
			found = true
		}
	}
	assert.True(t, found, "expected a fill bar at half track width")
}

func TestBuildScene_ZeroMetricSkipsFillBar(t *testing.T) {
	s := BuildScene(baseRequest(0), fakeMeasurer{}, "p")
	got := textContents(s)
	assert.Contains(t, got, "0")
	// A zero score still renders the track and the ring, never a fill arc.
	assert.Zero(t, findRing(t, s).SweepDeg)
}

func TestBuildScene_PromptAppears(t *testing.T) {
	got := textContents(BuildScene(baseRequest(80), fakeMeasurer{}, "Can you beat this?"))
	assert.Contains(t, got, "Can you beat this?")
}

func TestBuildScene_AlwaysBrands(t *testing.T) {
	got := textContents(BuildScene(baseRequest(55), fakeMeasurer{}, "p"))
	assert.Contains(t, got, "FITRATE.APP")
}

// assertInsideCanvas fails if any drawable instruction extends past the
// scene bounds. The radial glow is exempt: it fades to transparent and
// bleeds past the edge on purpose.
func assertInsideCanvas(t *testing.T, s *Scene, m Measurer) {
	t.Helper()
	w, h := float64(s.W), float64(s.H)

	inside := func(desc string, x0, y0, x1, y1 float64) {
		t.Helper()
		assert.GreaterOrEqual(t, x0, 0.0, "%s left edge", desc)
		assert.GreaterOrEqual(t, y0, 0.0, "%s top edge", desc)
		assert.LessOrEqual(t, x1, w, "%s right edge", desc)
		assert.LessOrEqual(t, y1, h, "%s bottom edge", desc)
	}

	for _, ins := range s.Instructions {
		switch v := ins.(type) {
		case *RoundedRect:
			inside(fmt.Sprintf("rect at y=%.1f", v.Y), v.X, v.Y, v.X+v.W, v.Y+v.H)
		case *Text:
			tw := m.MeasureString(v.Content, v.Size, v.Bold)
			x0 := v.X
			switch v.Align {
			case AnchorCenter:
				x0 = v.X - tw/2
			case AnchorRight:
				x0 = v.X - tw
			}
			inside(fmt.Sprintf("text %q", v.Content), x0, v.Y-v.Size/2, x0+tw, v.Y+v.Size/2)
		case *Ring:
			r := v.R + v.Width/2
			inside("ring", v.CX-r, v.CY-r, v.CX+r, v.CY+r)
		case *Photo:
			inside("photo", v.X, v.Y, v.X+v.W, v.Y+v.H)
		case *Line:
			inside("line", min(v.X1, v.X2), min(v.Y1, v.Y2), max(v.X1, v.X2), max(v.Y1, v.Y2))
		}
	}
}

func TestBuildScene_InstructionsFitCanvas(t *testing.T) {
	m := fakeMeasurer{}
	for _, format := range []types.ShareFormat{types.FormatFeed, types.FormatStory} {
		t.Run(string(format), func(t *testing.T) {
			req := baseRequest(92)
			req.Format = format
			req.Scores.Mode = modes.Celeb
			req.Scores.CelebrityJudge = "Anna Wintour"
			req.Event = &types.EventContext{EventName: "DENIM WEEK", Rank: 3, Participants: 812}
			req.DNA = &types.CardDNA{
				GradientTop:    "#112233",
				GradientBottom: "#445566",
				TimeOfDay:      "🌙 Night Owl",
				Streak:         "🔥 7 day streak",
			}
			assertInsideCanvas(t, BuildScene(req, m, "Rate mine, I'll rate yours"), m)

			// Daily-challenge header variant.
			req.DailyChallenge = &types.DailyChallengeContext{Rank: 4, Participants: 1287}
			assertInsideCanvas(t, BuildScene(req, m, "Rate mine, I'll rate yours"), m)
		})
	}
}

func TestBuildScene_BadgesClearFooterOnFeed(t *testing.T) {
	req := baseRequest(80)
	req.DNA = &types.CardDNA{TimeOfDay: "🌙 Night Owl", Streak: "🔥 7 day streak"}
	s := BuildScene(req, fakeMeasurer{}, "p")

	// The footer block starts at the percentile line; badges must sit above
	// it so both render on the square canvas.
	footerTop := float64(s.H) - 64 - 48 - 14
	for _, ins := range s.Instructions {
		if txt, ok := ins.(*Text); ok && (txt.Content == "🌙 Night Owl" || txt.Content == "🔥 7 day streak") {
			assert.Less(t, txt.Y+22, footerTop, "badge %q", txt.Content)
		}
	}
}

func TestRandomPrompt_FromPool(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[RandomPrompt()] = true
	}
	for p := range seen {
		assert.Contains(t, sharePrompts, p)
	}
}
