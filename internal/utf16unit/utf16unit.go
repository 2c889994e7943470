// Package utf16unit adapts between Go strings and a stream of UTF-16 code
// units ([]uint16) — the prototypical scanengine.Engine element type
// spec.md §1 names alongside byte. Grounded in the teacher's
// internal/interp/encoding.go, which already reaches for
// golang.org/x/text/encoding/unicode and golang.org/x/text/transform to
// move between UTF-16 byte streams and UTF-8 strings; this package stops
// at the code-unit slice the engine operates on, and Decode turns such a
// slice back into a string.
package utf16unit

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/cwbudde/go-scanlex/internal/scanengine"
)

// Encode converts s into native-endian UTF-16 code units, one element per
// scanengine.Engine[uint16] input position. Surrogate pairs are preserved
// as two code units, matching how the engine's element-by-element model
// expects multi-element tokens to align.
func Encode(s string) ([]uint16, error) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	raw, _, err := transform.Bytes(encoder, []byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding to UTF-16: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("encoding to UTF-16: odd byte length %d", len(raw))
	}
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
	}
	return units, nil
}

// Decode converts a stream of UTF-16 code units back to a Go string.
func Decode(units []uint16) (string, error) {
	raw := make([]byte, len(units)*2)
	for i, u := range units {
		raw[2*i] = byte(u)
		raw[2*i+1] = byte(u >> 8)
	}
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	utf8Data, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("decoding from UTF-16: %w", err)
	}
	return string(utf8Data), nil
}

// ConvertVocabulary re-encodes a rune-keyed vocabulary into one keyed by
// UTF-16 code units, so a vocabulary file authored once (in rune elements)
// can drive a scanengine.Engine[uint16] as well as the default
// scanengine.Engine[rune]. A single-element rune spec whose code point lies
// outside the BMP encodes to a surrogate pair and is promoted to a
// multi-element uint16 spec; every other spec keeps its single/multi shape.
func ConvertVocabulary(cfg scanengine.Configuration[rune]) (scanengine.Configuration[uint16], error) {
	root, err := convertVocabulary(cfg.Root)
	if err != nil {
		return scanengine.Configuration[uint16]{}, err
	}

	limits := make([]scanengine.Limit[uint16], 0, len(cfg.Limits))
	for _, l := range cfg.Limits {
		v, err := convertVocabulary(l.Vocabulary)
		if err != nil {
			return scanengine.Configuration[uint16]{}, err
		}
		limits = append(limits, scanengine.Limit[uint16]{Name: l.Name, Vocabulary: v})
	}

	return scanengine.Configuration[uint16]{Root: root, Limits: limits}, nil
}

func convertVocabulary(v scanengine.Vocabulary[rune]) (scanengine.Vocabulary[uint16], error) {
	var out scanengine.Vocabulary[uint16]

	for _, s := range v.Singles {
		units, err := Encode(string(s.Element))
		if err != nil {
			return out, fmt.Errorf("encoding single-element token %q: %w", s.ID, err)
		}
		if len(units) == 1 {
			out.Singles = append(out.Singles, scanengine.SingleElementSpec[uint16]{ID: s.ID, Element: units[0]})
		} else {
			out.Multis = append(out.Multis, scanengine.MultiElementSpec[uint16]{ID: s.ID, Elements: units})
		}
	}

	for _, m := range v.Multis {
		units, err := Encode(string(m.Elements))
		if err != nil {
			return out, fmt.Errorf("encoding multi-element token %q: %w", m.ID, err)
		}
		out.Multis = append(out.Multis, scanengine.MultiElementSpec[uint16]{ID: m.ID, Elements: units})
	}

	return out, nil
}
