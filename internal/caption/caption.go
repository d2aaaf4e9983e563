// Package caption builds the share caption that accompanies a generated
// card. Templates are stored as JSON and embedded at compile time.
package caption

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/fitrate/fitrate/internal/modes"
	"github.com/fitrate/fitrate/internal/types"
)

//go:embed templates.json
var templateFiles embed.FS

// ShareBaseURL is the canonical share/referral link target.
const ShareBaseURL = "https://fitrate.app"

var (
	loadOnce  sync.Once
	templates map[string]string
	loadErr   error
)

// ShareURL returns the referral link for a user.
func ShareURL(userID string) string {
	return fmt.Sprintf("%s?ref=%s", ShareBaseURL, userID)
}

// Build produces the caption for a score result. Every caption embeds the
// referral URL; mode-specific templates win over the default, and scores
// below 50 prefer a self-deprecating variant when one exists.
func Build(scores *types.ScoreResult, userID string) (string, error) {
	tpls, err := load()
	if err != nil {
		return "", err
	}

	key := string(scores.Mode)
	if _, ok := tpls[key]; !ok {
		key = "default"
	}
	if scores.Overall < 50 {
		if _, ok := tpls[key+"_low"]; ok {
			key += "_low"
		}
	} else if scores.Overall >= 85 {
		if _, ok := tpls[key+"_high"]; ok {
			key += "_high"
		}
	}

	judge := scores.CelebrityJudge
	if judge == "" {
		judge = modes.Lookup(scores.Mode).Label
	}

	return Format(tpls[key], map[string]string{
		"Score": fmt.Sprintf("%d", scores.Overall),
		"Judge": judge,
		"URL":   ShareURL(userID),
	}), nil
}

// Format replaces placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// load parses the embedded template file once.
func load() (map[string]string, error) {
	loadOnce.Do(func() {
		data, err := templateFiles.ReadFile("templates.json")
		if err != nil {
			loadErr = fmt.Errorf("failed to read caption templates: %w", err)
			return
		}
		if err := json.Unmarshal(data, &templates); err != nil {
			loadErr = fmt.Errorf("failed to parse caption templates: %w", err)
		}
	})
	return templates, loadErr
}
