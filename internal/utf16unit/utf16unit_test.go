package utf16unit_test

import (
	"testing"

	"github.com/cwbudde/go-scanlex/internal/scanengine"
	"github.com/cwbudde/go-scanlex/internal/utf16unit"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"a==b",
		"emoji: \U0001F600",
		"line\nbreak",
	}
	for _, s := range cases {
		units, err := utf16unit.Encode(s)
		if err != nil {
			t.Fatalf("Encode(%q) returned error: %v", s, err)
		}
		back, err := utf16unit.Decode(units)
		if err != nil {
			t.Fatalf("Decode after Encode(%q) returned error: %v", s, err)
		}
		if back != s {
			t.Fatalf("round trip mismatch: got %q, want %q", back, s)
		}
	}
}

func TestEncodeSurrogatePair(t *testing.T) {
	// U+1F600 lies outside the BMP and must encode as a surrogate pair:
	// two UTF-16 code units, not one.
	units, err := utf16unit.Encode("\U0001F600")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("got %d code units, want 2 (a surrogate pair)", len(units))
	}
}

// TestConvertVocabularyDrivesUint16Engine confirms a rune-keyed vocabulary,
// once converted, recognizes the same tokens when the engine is
// instantiated over uint16 rather than rune.
func TestConvertVocabularyDrivesUint16Engine(t *testing.T) {
	cfg := scanengine.Configuration[rune]{
		Root: scanengine.Vocabulary[rune]{
			Singles: []scanengine.SingleElementSpec[rune]{
				{ID: "Eq", Element: '='},
				{ID: "Plus", Element: '+'},
			},
			Multis: []scanengine.MultiElementSpec[rune]{
				{ID: "EqEq", Elements: []rune("==")},
			},
		},
	}

	cfg16, err := utf16unit.ConvertVocabulary(cfg)
	if err != nil {
		t.Fatalf("ConvertVocabulary returned error: %v", err)
	}

	const src = "a==b+c"
	text, err := utf16unit.Encode(src)
	if err != nil {
		t.Fatalf("Encode(%q) returned error: %v", src, err)
	}

	e := scanengine.New(cfg16)
	e.InitString(text)

	type emitted struct {
		id    string
		token string
	}
	var got []emitted
	for {
		r := e.ContinueExecution()
		if r == scanengine.ResultNone {
			break
		}
		var tok *scanengine.Token
		switch r {
		case scanengine.ResultOnThenBeforeTokenProcessed:
			tok = e.OnTokenProcessedToken()
		case scanengine.ResultStopAndFinalOnTokenProcessed:
			tok = e.BeforeTokenProcessedToken()
		}
		if tok != nil {
			literal, err := utf16unit.Decode(text[tok.Start : tok.Start+tok.Length])
			if err != nil {
				t.Fatalf("Decode token literal returned error: %v", err)
			}
			got = append(got, emitted{id: tok.ID, token: literal})
		}
		if r == scanengine.ResultStopAndFinalOnTokenProcessed {
			break
		}
	}

	want := []emitted{
		{id: "EqEq", token: "=="},
		{id: "Plus", token: "+"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d emissions %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("emission %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
