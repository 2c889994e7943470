// Package vocabload compiles a declarative vocabulary description into the
// scanengine.Configuration the recognition engine consumes. spec.md §1
// treats this compiler as an external collaborator it only describes the
// shape of; this package is that collaborator, built the way the retrieved
// pack loads configuration: unmarshal YAML into a plain struct, then
// validate it by hand.
package vocabload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/go-scanlex/internal/scanengine"
	"github.com/cwbudde/go-scanlex/internal/tokerr"
)

// singleDef and multiDef mirror one entry of a vocabulary's single- or
// multi-element token list in the YAML source.
type singleDef struct {
	ID      string `yaml:"id"`
	Element string `yaml:"element"`
}

type multiDef struct {
	ID       string `yaml:"id"`
	Elements string `yaml:"elements"`
}

type vocabDef struct {
	Singles []singleDef `yaml:"singles"`
	Multis  []multiDef  `yaml:"multis"`
}

type limitDef struct {
	Name string `yaml:"name"`
	vocabDef `yaml:",inline"`
}

// document is the top-level YAML shape: a root vocabulary plus named
// limits, each a sub-vocabulary of the same shape.
type document struct {
	vocabDef `yaml:",inline"`
	Limits   []limitDef `yaml:"limits"`
}

// Load reads and compiles a vocabulary file from disk.
func Load(path string) (scanengine.Configuration[rune], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scanengine.Configuration[rune]{}, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse compiles a vocabulary document already read into memory. file is
// used only for error messages and may be empty.
func Parse(data []byte, file string) (scanengine.Configuration[rune], error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return scanengine.Configuration[rune]{}, tokerr.NewConfigError(tokerr.Position{}, err.Error(), string(data), file)
	}

	seen := make(map[string]struct{})

	root, err := compileVocab(doc.vocabDef, string(data), file, seen)
	if err != nil {
		return scanengine.Configuration[rune]{}, err
	}

	limits := make([]scanengine.Limit[rune], 0, len(doc.Limits))
	for _, ld := range doc.Limits {
		if ld.Name == "" {
			return scanengine.Configuration[rune]{}, tokerr.NewConfigError(tokerr.Position{}, "limit with empty name", string(data), file)
		}
		v, err := compileVocab(ld.vocabDef, string(data), file, seen)
		if err != nil {
			return scanengine.Configuration[rune]{}, err
		}
		limits = append(limits, scanengine.Limit[rune]{Name: ld.Name, Vocabulary: v})
	}

	return scanengine.Configuration[rune]{Root: root, Limits: limits}, nil
}

func compileVocab(def vocabDef, source, file string, seen map[string]struct{}) (scanengine.Vocabulary[rune], error) {
	var vocab scanengine.Vocabulary[rune]

	for _, s := range def.Singles {
		if err := checkID(s.ID, source, file, seen); err != nil {
			return vocab, err
		}
		elems := []rune(s.Element)
		if len(elems) != 1 {
			return vocab, tokerr.NewConfigError(tokerr.Position{}, fmt.Sprintf("single-element token %q must have exactly one element, got %d", s.ID, len(elems)), source, file)
		}
		vocab.Singles = append(vocab.Singles, scanengine.SingleElementSpec[rune]{ID: s.ID, Element: elems[0]})
	}

	for _, m := range def.Multis {
		if err := checkID(m.ID, source, file, seen); err != nil {
			return vocab, err
		}
		elems := []rune(m.Elements)
		if len(elems) < 2 {
			return vocab, tokerr.NewConfigError(tokerr.Position{}, fmt.Sprintf("multi-element token %q must have at least two elements, got %d", m.ID, len(elems)), source, file)
		}
		vocab.Multis = append(vocab.Multis, scanengine.MultiElementSpec[rune]{ID: m.ID, Elements: elems})
	}

	return vocab, nil
}

func checkID(id, source, file string, seen map[string]struct{}) error {
	if id == "" {
		return tokerr.NewConfigError(tokerr.Position{}, "token spec missing an id", source, file)
	}
	if _, dup := seen[id]; dup {
		return tokerr.NewConfigError(tokerr.Position{}, fmt.Sprintf("duplicate token id %q", id), source, file)
	}
	seen[id] = struct{}{}
	return nil
}
