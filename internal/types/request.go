package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ShareFormat selects the output canvas dimensions.
type ShareFormat string

// Supported share formats.
const (
	FormatFeed  ShareFormat = "feed"  // 1080x1080 square
	FormatStory ShareFormat = "story" // 1080x1920 portrait
)

// Dimensions returns the pixel size for the format. Anything that is not
// feed renders as story, matching the frontend's "square or portrait" split.
func (f ShareFormat) Dimensions() (w, h int) {
	if f == FormatFeed {
		return 1080, 1080
	}
	return 1080, 1920
}

// CardDNA is an optional cosmetic variation payload. Purely decorative;
// no field is validated beyond being well-formed JSON.
type CardDNA struct {
	GradientTop    string `json:"gradientTop,omitempty"`
	GradientBottom string `json:"gradientBottom,omitempty"`
	TimeOfDay      string `json:"timeOfDay,omitempty"`
	Streak         string `json:"streak,omitempty"`
}

// EventContext carries weekly event rank info for the card overlay.
type EventContext struct {
	EventName    string `json:"eventName"`
	Rank         int    `json:"rank"`
	Participants int    `json:"participants"`
}

// DailyChallengeContext carries daily challenge rank info for the header pill.
type DailyChallengeContext struct {
	Rank         int `json:"rank"`
	Participants int `json:"participants"`
}

// ShareCardRequest is everything the compositor needs to produce one card.
// The user photo travels separately as a decoded image so the request stays
// serializable.
type ShareCardRequest struct {
	Scores         ScoreResult            `json:"scores" validate:"required"`
	Format         ShareFormat            `json:"shareFormat" validate:"required,oneof=feed story"`
	UserID         string                 `json:"userId" validate:"required"`
	ImageSource    string                 `json:"imageSource,omitempty"`
	Event          *EventContext          `json:"eventContext,omitempty"`
	DailyChallenge *DailyChallengeContext `json:"dailyChallengeContext,omitempty"`
	DNA            *CardDNA               `json:"cardDNA,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a share card request against its field constraints.
func (r *ShareCardRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid share card request: %w", err)
	}
	return nil
}
