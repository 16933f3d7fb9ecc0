package services

import "strings"

// TokenizePlatforms splits a game's denormalized platform field into
// individual platform names: split on commas, trim surrounding whitespace,
// drop empty tokens. No case folding and no dedup within a record — a game
// that lists the same platform twice is counted twice. Every report path
// that distributes by platform must go through this function so the
// interactive view and the exports count identically.
func TokenizePlatforms(platform string) []string {
	parts := strings.Split(platform, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}
