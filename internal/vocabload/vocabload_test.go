package vocabload_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-scanlex/internal/tokerr"
	"github.com/cwbudde/go-scanlex/internal/vocabload"
)

func TestParseRootVocabulary(t *testing.T) {
	data := []byte(`
singles:
  - id: Plus
    element: "+"
  - id: Eq
    element: "="
multis:
  - id: EqEq
    elements: "=="
`)
	cfg, err := vocabload.Parse(data, "inline")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cfg.Root.Singles) != 2 || len(cfg.Root.Multis) != 1 {
		t.Fatalf("got %d singles, %d multis, want 2, 1", len(cfg.Root.Singles), len(cfg.Root.Multis))
	}
	if cfg.Root.Multis[0].ID != "EqEq" || string(cfg.Root.Multis[0].Elements) != "==" {
		t.Fatalf("got multi %+v, want EqEq/==", cfg.Root.Multis[0])
	}
}

func TestParseWithLimit(t *testing.T) {
	data := []byte(`
singles:
  - id: LBrace
    element: "{"
limits:
  - name: STR
    singles:
      - id: Quote
        element: "\""
`)
	cfg, err := vocabload.Parse(data, "inline")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cfg.Limits) != 1 || cfg.Limits[0].Name != "STR" {
		t.Fatalf("got limits %+v, want one named STR", cfg.Limits)
	}
	if len(cfg.Limits[0].Vocabulary.Singles) != 1 || cfg.Limits[0].Vocabulary.Singles[0].ID != "Quote" {
		t.Fatalf("got STR singles %+v, want one Quote", cfg.Limits[0].Vocabulary.Singles)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := vocabload.Parse([]byte("singles: [unterminated"), "inline")
	if err == nil {
		t.Fatal("expected an error for malformed YAML, got nil")
	}
	if _, ok := err.(*tokerr.ConfigError); !ok {
		t.Fatalf("got error of type %T, want *tokerr.ConfigError", err)
	}
}

func TestParseRejectsDuplicateID(t *testing.T) {
	data := []byte(`
singles:
  - id: Plus
    element: "+"
  - id: Plus
    element: "-"
`)
	_, err := vocabload.Parse(data, "inline")
	if err == nil || !strings.Contains(err.Error(), "duplicate token id") {
		t.Fatalf("got error %v, want a duplicate-id error", err)
	}
}

func TestParseRejectsWrongSingleLength(t *testing.T) {
	data := []byte(`
singles:
  - id: Bad
    element: "++"
`)
	_, err := vocabload.Parse(data, "inline")
	if err == nil || !strings.Contains(err.Error(), "exactly one element") {
		t.Fatalf("got error %v, want a single-element-length error", err)
	}
}

func TestParseRejectsShortMulti(t *testing.T) {
	data := []byte(`
multis:
  - id: Bad
    elements: "x"
`)
	_, err := vocabload.Parse(data, "inline")
	if err == nil || !strings.Contains(err.Error(), "at least two elements") {
		t.Fatalf("got error %v, want an at-least-two-elements error", err)
	}
}

func TestParseRejectsEmptyID(t *testing.T) {
	data := []byte(`
singles:
  - id: ""
    element: "+"
`)
	_, err := vocabload.Parse(data, "inline")
	if err == nil || !strings.Contains(err.Error(), "missing an id") {
		t.Fatalf("got error %v, want a missing-id error", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := vocabload.Load("../../testdata/vocab/operators.yaml")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Root.Singles) != 3 || len(cfg.Root.Multis) != 2 {
		t.Fatalf("got %d singles, %d multis, want 3, 2", len(cfg.Root.Singles), len(cfg.Root.Multis))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := vocabload.Load("../../testdata/vocab/does-not-exist.yaml")
	if err == nil {
		t.Fatal("expected an error for a missing file, got nil")
	}
}
