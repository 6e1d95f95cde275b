package utils

import "strings"

// censorWords is the block list applied to user-facing free text. Matching is
// case-insensitive and whole-word.
var censorWords = map[string]struct{}{
	"ass": {}, "asshole": {}, "bastard": {}, "bitch": {}, "bullshit": {},
	"crap": {}, "cunt": {}, "damn": {}, "dick": {}, "fuck": {},
	"fucking": {}, "motherfucker": {}, "piss": {}, "prick": {},
	"shit": {}, "slut": {}, "twat": {}, "whore": {},
}

// CensorProfanity replaces blocked words with asterisks, preserving
// surrounding punctuation and whitespace.
func CensorProfanity(text string) string {
	if text == "" {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		word := text[start:end]
		if _, bad := censorWords[strings.ToLower(word)]; bad {
			b.WriteString(strings.Repeat("*", 4))
		} else {
			b.WriteString(word)
		}
		start = -1
	}
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		b.WriteRune(r)
	}
	flush(len(text))
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '\'' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
