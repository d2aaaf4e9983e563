package sharecard

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/fitrate/fitrate/internal/modes"
)

// Renderer rasterizes a Scene onto an RGBA canvas. It is safe for
// concurrent use; font faces are cached behind a mutex.
type Renderer struct {
	fonts *fontCache
}

// NewRenderer creates a renderer with the embedded Go font family loaded.
func NewRenderer() (*Renderer, error) {
	fonts, err := newFontCache()
	if err != nil {
		return nil, &RenderError{Message: "failed to load fonts", Cause: err}
	}
	return &Renderer{fonts: fonts}, nil
}

// MeasureString implements Measurer using the renderer's font faces.
func (r *Renderer) MeasureString(s string, size float64, bold bool) float64 {
	face, err := r.fonts.face(size, bold)
	if err != nil {
		// Rough estimate keeps layout alive if a face fails to build.
		return float64(len([]rune(s))) * size * 0.55
	}
	return float64(font.MeasureString(face, s)) / 64
}

// Render executes every instruction in order and returns the finished image.
// The photo argument backs Photo instructions; it may be nil only when the
// scene contains none.
func (r *Renderer) Render(scene *Scene, photo image.Image) (image.Image, error) {
	dc := gg.NewContext(scene.W, scene.H)

	for _, ins := range scene.Instructions {
		switch v := ins.(type) {
		case *LinearGradient:
			grad := gg.NewLinearGradient(v.X, v.Y, v.X, v.Y+v.H)
			grad.AddColorStop(0, modes.ParseHex(v.Top))
			grad.AddColorStop(1, modes.ParseHex(v.Bottom))
			dc.SetFillStyle(grad)
			dc.DrawRectangle(v.X, v.Y, v.W, v.H)
			dc.Fill()

		case *RadialGlow:
			c := modes.ParseHex(v.Hex)
			inner := c
			inner.A = uint8(alphaOrOpaque(v.Alpha) * 255)
			outer := c
			outer.A = 0
			grad := gg.NewRadialGradient(v.CX, v.CY, 0, v.CX, v.CY, v.R)
			grad.AddColorStop(0, inner)
			grad.AddColorStop(1, outer)
			dc.SetFillStyle(grad)
			dc.DrawRectangle(v.CX-v.R, v.CY-v.R, v.R*2, v.R*2)
			dc.Fill()

		case *Line:
			setColor(dc, v.Hex, v.Alpha)
			dc.SetLineWidth(v.Width)
			dc.DrawLine(v.X1, v.Y1, v.X2, v.Y2)
			dc.Stroke()

		case *RoundedRect:
			setColor(dc, v.Hex, v.Alpha)
			dc.DrawRoundedRectangle(v.X, v.Y, v.W, v.H, v.Radius)
			dc.Fill()

		case *Text:
			face, err := r.fonts.face(v.Size, v.Bold)
			if err != nil {
				return nil, &RenderError{Message: "failed to build font face", Cause: err}
			}
			dc.SetFontFace(face)
			setColor(dc, v.Hex, v.Alpha)
			ax := 0.0
			switch v.Align {
			case AnchorCenter:
				ax = 0.5
			case AnchorRight:
				ax = 1
			}
			dc.DrawStringAnchored(v.Content, v.X, v.Y, ax, 0.5)

		case *Ring:
			dc.SetLineWidth(v.Width)
			setColor(dc, v.TrackHex, v.TrackAlpha)
			dc.DrawCircle(v.CX, v.CY, v.R)
			dc.Stroke()
			if v.SweepDeg > 0 {
				setColor(dc, v.Hex, 1)
				dc.SetLineCapRound()
				start := -math.Pi / 2 // 12 o'clock, sweeping clockwise
				dc.DrawArc(v.CX, v.CY, v.R, start, start+gg.Radians(v.SweepDeg))
				dc.Stroke()
			}

		case *Photo:
			if photo == nil {
				return nil, &RenderError{Message: "scene contains a photo instruction but no photo was provided"}
			}
			fitted := coverResize(photo, int(v.W), int(v.H))
			dc.Push()
			dc.DrawRoundedRectangle(v.X, v.Y, v.W, v.H, v.Radius)
			dc.Clip()
			dc.DrawImage(fitted, int(v.X), int(v.Y))
			dc.ResetClip()
			dc.Pop()
		}
	}

	return dc.Image(), nil
}

// coverResize scales the source to fill w x h, cropping the overflow axis
// around the center instead of letterboxing.
func coverResize(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 || w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}

	// Pick the crop of the source with the destination's aspect ratio.
	crop := b
	if srcW*h > srcH*w {
		cropW := srcH * w / h
		x0 := b.Min.X + (srcW-cropW)/2
		crop = image.Rect(x0, b.Min.Y, x0+cropW, b.Max.Y)
	} else if srcW*h < srcH*w {
		cropH := srcW * h / w
		y0 := b.Min.Y + (srcH-cropH)/2
		crop = image.Rect(b.Min.X, y0, b.Max.X, y0+cropH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Over, nil)
	return dst
}

// setColor applies a hex fill/stroke color with the instruction alpha.
func setColor(dc *gg.Context, hex string, alpha float64) {
	c := modes.ParseHex(hex)
	a := alphaOrOpaque(alpha)
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, a)
}

// alphaOrOpaque treats the zero value as fully opaque so scene builders
// only have to set alpha when they want translucency.
func alphaOrOpaque(a float64) float64 {
	if a <= 0 {
		return 1
	}
	if a > 1 {
		return 1
	}
	return a
}
