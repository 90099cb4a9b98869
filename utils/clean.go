package utils

import (
	"regexp"
	"strings"
)

var unsafeFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// CleanFileName makes a title safe to use as a file or directory name.
func CleanFileName(input string) string {
	cleaned := unsafeFileChars.ReplaceAllString(input, "_")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimRight(cleaned, ".")
	if cleaned == "" {
		return "untitled"
	}
	return cleaned
}
