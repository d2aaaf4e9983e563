package sharecard

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/fitrate/fitrate/internal/caption"
	"github.com/fitrate/fitrate/internal/types"
)

// Card is the ephemeral share payload: the encoded image plus the caption
// and referral URL that accompany it. Callers hand it to whatever share
// surface they have and then drop it.
type Card struct {
	PNG      []byte
	FileName string
	Caption  string
	URL      string
}

var (
	rendererOnce sync.Once
	renderer     *Renderer
	rendererErr  error
)

func defaultRenderer() (*Renderer, error) {
	rendererOnce.Do(func() {
		renderer, rendererErr = NewRenderer()
	})
	return renderer, rendererErr
}

// Generate renders a share card for the request. The photo must already be
// decoded; use imagefetch to load it from a path or URL. There are no side
// effects beyond transient canvas allocation.
func Generate(ctx context.Context, req *types.ShareCardRequest, photo image.Image) (*Card, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := defaultRenderer()
	if err != nil {
		return nil, err
	}

	scene := BuildScene(req, r, RandomPrompt())
	img, err := r.Render(scene, photo)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &EncodeError{Cause: err}
	}

	text, err := caption.Build(&req.Scores, req.UserID)
	if err != nil {
		return nil, err
	}

	return &Card{
		PNG:      buf.Bytes(),
		FileName: fmt.Sprintf("fitrate-%d-%s.png", req.Scores.Overall, req.Format),
		Caption:  text,
		URL:      caption.ShareURL(req.UserID),
	}, nil
}
