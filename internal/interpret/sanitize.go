package interpret

import "strings"

// Rand is the randomness source for emoticon injection. *math/rand.Rand
// satisfies it; tests pin it with a stub.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// sanitizeLine makes one LCD line displayable: ASCII only, bounded length,
// with an occasional emoticon when there is room. line2 selects the second
// line's fallback text and the higher emoticon chance.
func sanitizeLine(text, mood string, line2 bool, rng Rand) string {
	var b strings.Builder
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	clean := strings.TrimSpace(b.String())
	if clean == "" {
		if line2 {
			clean = fallbackDots
		} else {
			clean = fallbackName
		}
	}
	// Pure ASCII from here on, so byte indexing is safe.
	if len(clean) > lcdTextLimit {
		clean = clean[:lcdTextLimit]
	}
	chance := 0.3
	if line2 {
		chance = 0.7
	}
	// Operand order is load-bearing: the chance roll is consumed only
	// when the line has room, and a glyph-heavy line still consumes it.
	if len(clean) < lcdTextLimit && rng.Float64() < chance && !strings.ContainsAny(clean, "^<>") {
		set := emoticons[mood]
		if len(set) == 0 {
			set = emoticons[MoodNeutral]
		}
		clean = clean + " " + set[rng.Intn(len(set))]
	}
	if len(clean) > lcdHardLimit {
		clean = clean[:lcdHardLimit]
	}
	return clean
}
