package main

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const roundTo = 10 * time.Millisecond

// displayTitle derives a readable material title from an archive path:
// "Bricks090_2K-PNG.zip" becomes "Bricks090 2K PNG".
func displayTitle(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}

	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return base
	}
	caser := cases.Title(language.Und, cases.NoLower)
	return caser.String(title)
}
