package glyphfall

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

// Alphabet is the fixed set of glyphs particles are drawn from.
type Alphabet []rune

// Built-in alphabets.
var (
	AlphabetKatakana = Alphabet([]rune("アァカサタナハマヤャラワガザダバパイィキシチニヒミリギジヂビピウゥクスツヌフムユュルグズヅブプエェケセテネヘメレゲゼデベペオォコソトノホモヨョロヲゴゾドボポヴッン"))
	AlphabetGreek    = Alphabet([]rune("ΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩαβγδεζηθικλμνξοπρστυφχψω"))
	AlphabetLatin    = Alphabet([]rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"))
	AlphabetDigits   = Alphabet([]rune("0123456789"))
)

var namedAlphabets = map[string]Alphabet{
	"katakana": AlphabetKatakana,
	"greek":    AlphabetGreek,
	"latin":    AlphabetLatin,
	"digits":   AlphabetDigits,
}

// AlphabetNames returns the names accepted by LookupAlphabet, sorted.
func AlphabetNames() []string {
	names := make([]string, 0, len(namedAlphabets))
	for n := range namedAlphabets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupAlphabet resolves a named alphabet. Matching is case-insensitive.
func LookupAlphabet(name string) (Alphabet, error) {
	a, ok := namedAlphabets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("glyphfall: unknown alphabet %q (want one of %s)",
			name, strings.Join(AlphabetNames(), ", "))
	}
	return a, nil
}

// Random returns a uniformly chosen glyph. An empty alphabet yields '?'.
func (a Alphabet) Random(rng *rand.Rand) rune {
	if len(a) == 0 {
		return '?'
	}
	return a[rng.IntN(len(a))]
}

// Contains reports whether r is part of the alphabet.
func (a Alphabet) Contains(r rune) bool {
	for _, g := range a {
		if g == r {
			return true
		}
	}
	return false
}
