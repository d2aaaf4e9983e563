package sharecard

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitrate/fitrate/internal/modes"
	"github.com/fitrate/fitrate/internal/types"
)

func testPhoto(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestRenderer_MeasureString(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	short := r.MeasureString("hi", 30, false)
	long := r.MeasureString("hello there friend", 30, false)
	assert.Greater(t, long, short)

	big := r.MeasureString("hi", 60, false)
	assert.Greater(t, big, short)
}

func TestRenderer_Render_FullScene(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	req := baseRequest(92)
	scene := BuildScene(req, r, "Drop your fit 👇")
	img, err := r.Render(scene, testPhoto(600, 800))
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, 1080, b.Dx())
	assert.Equal(t, 1080, b.Dy())
}

func TestRenderer_Render_StoryDimensions(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	req := baseRequest(40)
	req.Format = types.FormatStory
	img, err := r.Render(BuildScene(req, r, "p"), testPhoto(600, 800))
	require.NoError(t, err)

	assert.Equal(t, 1080, img.Bounds().Dx())
	assert.Equal(t, 1920, img.Bounds().Dy())
}

func TestRenderer_Render_MissingPhoto(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	scene := BuildScene(baseRequest(70), r, "p")
	_, err = r.Render(scene, nil)
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, renderErr.Error(), "no photo")
}

func TestCoverResize_Landscape(t *testing.T) {
	got := coverResize(testPhoto(800, 400), 300, 300)
	assert.Equal(t, 300, got.Bounds().Dx())
	assert.Equal(t, 300, got.Bounds().Dy())
}

func TestCoverResize_Portrait(t *testing.T) {
	got := coverResize(testPhoto(400, 800), 300, 200)
	assert.Equal(t, 300, got.Bounds().Dx())
	assert.Equal(t, 200, got.Bounds().Dy())
}

func TestCoverResize_DegenerateSource(t *testing.T) {
	got := coverResize(image.NewRGBA(image.Rect(0, 0, 0, 0)), 100, 100)
	assert.Equal(t, 100, got.Bounds().Dx())
	assert.Equal(t, 100, got.Bounds().Dy())
}

func TestAlphaOrOpaque(t *testing.T) {
	assert.Equal(t, 1.0, alphaOrOpaque(0))
	assert.Equal(t, 1.0, alphaOrOpaque(-0.5))
	assert.Equal(t, 1.0, alphaOrOpaque(2))
	assert.Equal(t, 0.35, alphaOrOpaque(0.35))
}

func TestGenerate_ProducesDecodablePNG(t *testing.T) {
	req := baseRequest(88)
	card, err := Generate(context.Background(), req, testPhoto(500, 700))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(card.PNG))
	require.NoError(t, err)
	assert.Equal(t, 1080, img.Bounds().Dx())
	assert.Equal(t, 1080, img.Bounds().Dy())

	assert.Equal(t, "fitrate-88-feed.png", card.FileName)
	assert.Contains(t, card.Caption, "ref=u-1")
	assert.Equal(t, "https://fitrate.app?ref=u-1", card.URL)
}

func TestGenerate_InvalidRequest(t *testing.T) {
	req := baseRequest(88)
	req.UserID = ""
	_, err := Generate(context.Background(), req, testPhoto(100, 100))
	assert.Error(t, err)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, baseRequest(88), testPhoto(100, 100))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_CelebCard(t *testing.T) {
	req := baseRequest(95)
	req.Scores.Mode = modes.Celeb
	req.Scores.CelebrityJudge = "Anna Wintour"
	card, err := Generate(context.Background(), req, testPhoto(500, 700))
	require.NoError(t, err)
	assert.Contains(t, card.Caption, "Anna Wintour")
}
