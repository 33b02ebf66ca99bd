package glyphfall

import "testing"

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#0ca3a3", ColorTeal},
		{"0ca3a3", ColorTeal},
		{"#000000", Color{0, 0, 0, 1}},
		{"#ffffff80", Color{1, 1, 1, 128.0 / 255}},
		{"  #FF0000 ", Color{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if err != nil {
			t.Errorf("ParseHexColor(%q) error: %v", tt.in, err)
			continue
		}
		assertNear(t, tt.in+".R", got.R, tt.want.R)
		assertNear(t, tt.in+".G", got.G, tt.want.G)
		assertNear(t, tt.in+".B", got.B, tt.want.B)
		assertNear(t, tt.in+".A", got.A, tt.want.A)
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#fff", "#12345", "#gggggg", "teal"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Errorf("ParseHexColor(%q) should fail", in)
		}
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	if c.R != 128 || c.G != 64 || c.B != 0 || c.A != 128 {
		t.Errorf("toRGBA = %+v, want {128 64 0 128}", c)
	}
}

func TestRangeRandom(t *testing.T) {
	rng := testRNG()
	r := Range{10, 24}
	for i := 0; i < 1000; i++ {
		v := r.Random(rng)
		if v < 10 || v >= 24 {
			t.Fatalf("Random() = %f, outside [10, 24)", v)
		}
	}

	// Equal min/max.
	r2 := Range{5, 5}
	for i := 0; i < 10; i++ {
		if r2.Random(rng) != 5 {
			t.Fatal("Random() with Min==Max should return Min")
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if EventResize.String() != "resize" || EventPointerMove.String() != "pointermove" {
		t.Error("unexpected event names")
	}
	if EventType(99).String() != "unknown" {
		t.Error("out-of-range event should be unknown")
	}
}

func TestLookupAlphabet(t *testing.T) {
	a, err := LookupAlphabet(" Katakana ")
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(AlphabetKatakana) {
		t.Errorf("len = %d, want %d", len(a), len(AlphabetKatakana))
	}
	if _, err := LookupAlphabet("klingon"); err == nil {
		t.Error("expected error for unknown alphabet")
	}
}

func TestAlphabetNamesSorted(t *testing.T) {
	got := AlphabetNames()
	want := []string{"digits", "greek", "katakana", "latin"}
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
}

func TestAlphabetRandomCoversAllGlyphs(t *testing.T) {
	rng := testRNG()
	seen := make(map[rune]int)
	for i := 0; i < 2000; i++ {
		g := AlphabetDigits.Random(rng)
		if !AlphabetDigits.Contains(g) {
			t.Fatalf("glyph %q not in alphabet", g)
		}
		seen[g]++
	}
	if len(seen) != len(AlphabetDigits) {
		t.Errorf("saw %d distinct glyphs, want %d", len(seen), len(AlphabetDigits))
	}
	for g, n := range seen {
		// Expected 200 each; a uniform pick stays well inside this band.
		if n < 120 || n > 280 {
			t.Errorf("glyph %q drawn %d times, not uniform", g, n)
		}
	}
}

func TestAlphabetRandomEmpty(t *testing.T) {
	if got := Alphabet(nil).Random(testRNG()); got != '?' {
		t.Errorf("empty alphabet Random = %q, want '?'", got)
	}
}

func TestKatakanaIsSyllabary(t *testing.T) {
	for _, r := range AlphabetKatakana {
		if r < 0x30A0 || r > 0x30FF {
			t.Errorf("glyph %q (U+%04X) outside the katakana block", r, r)
		}
	}
}
