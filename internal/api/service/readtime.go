package service

import (
	"math"
	"regexp"
	"strings"
)

const wordsPerMinute = 200

var markupTags = regexp.MustCompile(`<[^>]+>`)

// ComputeReadTime estimates reading minutes from visible text, stripping any
// markup tags first. Never returns less than 1.
func ComputeReadTime(content string) int {
	plain := markupTags.ReplaceAllString(content, " ")
	words := len(strings.Fields(plain))
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
