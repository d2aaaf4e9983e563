package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fitrate/fitrate/internal/imagefetch"
	"github.com/fitrate/fitrate/internal/schemas"
	"github.com/fitrate/fitrate/internal/sharecard"
	"github.com/fitrate/fitrate/internal/types"
)

var (
	renderScoresPath string
	renderPhoto      string
	renderFormat     string
	renderUserID     string
	renderOut        string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a share card PNG from a score result",
	Long: `Render a share card locally without starting the server.

The scores file is a JSON score result as produced by the rating backend.
The photo may be a local file path or an http(s) URL.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderScoresPath, "scores", "", "Path to score result JSON file (required)")
	renderCmd.Flags().StringVar(&renderPhoto, "photo", "", "Outfit photo path or URL (required)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "feed", "Card format: feed or story")
	renderCmd.Flags().StringVar(&renderUserID, "user", "", "User id for the referral link (required)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "Output PNG path (default: generated file name)")
	_ = renderCmd.MarkFlagRequired("scores")
	_ = renderCmd.MarkFlagRequired("photo")
	_ = renderCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	doc, err := os.ReadFile(renderScoresPath)
	if err != nil {
		return fmt.Errorf("failed to read scores file: %w", err)
	}
	if err := schemas.ValidateScoreResult(doc); err != nil {
		return err
	}

	var scores types.ScoreResult
	if err := json.Unmarshal(doc, &scores); err != nil {
		return fmt.Errorf("failed to parse scores JSON: %w", err)
	}

	photo, err := imagefetch.Load(ctx, renderPhoto, nil)
	if err != nil {
		return err
	}

	req := &types.ShareCardRequest{
		Scores: scores,
		Format: types.ShareFormat(renderFormat),
		UserID: renderUserID,
	}
	card, err := sharecard.Generate(ctx, req, photo)
	if err != nil {
		return err
	}

	out := renderOut
	if out == "" {
		out = card.FileName
	}
	if err := os.WriteFile(out, card.PNG, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", out, len(card.PNG))
	fmt.Printf("Caption: %s\n", card.Caption)
	return nil
}
