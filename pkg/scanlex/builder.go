package scanlex

// VocabBuilder assembles a Vocabulary[rune] in Go, for callers who would
// rather construct one in code than load it from YAML via
// internal/vocabload.
type VocabBuilder struct {
	vocab Vocabulary[rune]
}

// NewVocabBuilder returns an empty builder.
func NewVocabBuilder() *VocabBuilder {
	return &VocabBuilder{}
}

// Single registers a single-element token.
func (b *VocabBuilder) Single(id string, element rune) *VocabBuilder {
	b.vocab.Singles = append(b.vocab.Singles, SingleElementSpec[rune]{ID: id, Element: element})
	return b
}

// Multi registers a multi-element token. elements must have length >= 2.
func (b *VocabBuilder) Multi(id string, elements string) *VocabBuilder {
	b.vocab.Multis = append(b.vocab.Multis, MultiElementSpec[rune]{ID: id, Elements: []rune(elements)})
	return b
}

// Build returns the assembled vocabulary.
func (b *VocabBuilder) Build() Vocabulary[rune] {
	return b.vocab
}

// ConfigBuilder assembles a full Configuration[rune]: a root vocabulary
// plus named limits.
type ConfigBuilder struct {
	root   Vocabulary[rune]
	limits []Limit[rune]
}

// NewConfigBuilder starts a configuration rooted at root.
func NewConfigBuilder(root Vocabulary[rune]) *ConfigBuilder {
	return &ConfigBuilder{root: root}
}

// WithLimit adds a named sub-vocabulary reachable via Engine.EnterTokenLimit.
func (c *ConfigBuilder) WithLimit(name string, vocab Vocabulary[rune]) *ConfigBuilder {
	c.limits = append(c.limits, Limit[rune]{Name: name, Vocabulary: vocab})
	return c
}

// Build returns the assembled configuration.
func (c *ConfigBuilder) Build() Configuration[rune] {
	return Configuration[rune]{Root: c.root, Limits: c.limits}
}
