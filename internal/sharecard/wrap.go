package sharecard

import "strings"

// Wrap splits text into lines no wider than maxWidth pixels using greedy
// packing: words are appended until the line would overflow, then a new
// line starts. A single word wider than maxWidth gets its own line rather
// than being split mid-word.
func Wrap(m Measurer, text string, size float64, bold bool, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.MeasureString(candidate, size, bold) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
