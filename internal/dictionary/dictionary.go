// Package dictionary loads the versioned skill, section, and keyword lookup
// tables used by extraction and scoring. The tables are data, not logic:
// they are embedded in the binary, validated against a JSON Schema at load
// time, and exposed through an immutable Dictionary that is safe to share
// across concurrent requests without locking.
package dictionary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/callen/resume-analyzer/internal/schemas"
)

//go:embed dictionary.json
var embeddedData []byte

//go:embed schema.json
var embeddedSchema []byte

// Category is one named bucket of the skill dictionary. Term order is
// load order and is significant: the first category that contains a term
// owns it.
type Category struct {
	Name  string   `json:"name"`
	Terms []string `json:"terms"`
}

// Section is a standard resume section and the synonyms that mark its presence.
type Section struct {
	Name     string   `json:"name"`
	Synonyms []string `json:"synonyms"`
}

type dictionaryFile struct {
	Version               int               `json:"version"`
	Categories            []Category        `json:"categories"`
	Display               map[string]string `json:"display"`
	Sections              []Section         `json:"sections"`
	CertificationKeywords []string          `json:"certification_keywords"`
	Stopwords             []string          `json:"stopwords"`
}

// Dictionary is the read-only lookup structure built from the data file.
// All accessors return copies; the underlying tables are never mutated
// after Load.
type Dictionary struct {
	version    int
	categories []Category
	display    map[string]string
	sections   []Section
	certWords  []string
	stopwords  map[string]struct{}
	termOwner  map[string]string // lowercase term -> owning category
}

// Load parses and validates dictionary data. The data must satisfy the
// embedded JSON Schema; a term claimed by more than one category is owned
// by the category declared first.
func Load(data []byte) (*Dictionary, error) {
	if err := schemas.ValidateBytes(embeddedSchema, data); err != nil {
		return nil, fmt.Errorf("invalid dictionary data: %w", err)
	}

	var file dictionaryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary data: %w", err)
	}

	d := &Dictionary{
		version:    file.Version,
		categories: file.Categories,
		display:    file.Display,
		sections:   file.Sections,
		certWords:  file.CertificationKeywords,
		stopwords:  make(map[string]struct{}, len(file.Stopwords)),
		termOwner:  make(map[string]string),
	}
	if d.display == nil {
		d.display = map[string]string{}
	}
	for _, w := range file.Stopwords {
		d.stopwords[strings.ToLower(w)] = struct{}{}
	}
	for _, cat := range file.Categories {
		for _, term := range cat.Terms {
			key := strings.ToLower(term)
			if _, taken := d.termOwner[key]; !taken {
				d.termOwner[key] = cat.Name
			}
		}
	}

	return d, nil
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the process-wide dictionary built from the embedded data
// file. The embedded data is validated by the test suite; if it cannot be
// loaded the binary is unusable, so Default panics rather than threading an
// error through every caller.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := Load(embeddedData)
		if err != nil {
			panic(fmt.Sprintf("dictionary: embedded data is invalid: %v", err))
		}
		defaultDict = d
	})
	return defaultDict
}

// Version returns the data file version.
func (d *Dictionary) Version() int {
	return d.version
}

// Categories returns category names in declaration order.
func (d *Dictionary) Categories() []string {
	names := make([]string, len(d.categories))
	for i, cat := range d.categories {
		names[i] = cat.Name
	}
	return names
}

// Terms returns the ordered terms of a category, or nil for an unknown category.
func (d *Dictionary) Terms(category string) []string {
	for _, cat := range d.categories {
		if cat.Name == category {
			out := make([]string, len(cat.Terms))
			copy(out, cat.Terms)
			return out
		}
	}
	return nil
}

// AllTerms returns every term in category order, then term order within
// each category. Terms repeated across categories appear once, owned by
// the first category.
func (d *Dictionary) AllTerms() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, cat := range d.categories {
		for _, term := range cat.Terms {
			key := strings.ToLower(term)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}

// Find returns the category owning the given term, matched case-insensitively.
func (d *Dictionary) Find(term string) (category string, ok bool) {
	category, ok = d.termOwner[strings.ToLower(term)]
	return category, ok
}

// Canonical returns the display form of a dictionary term: an explicit
// override from the data file when one exists, otherwise each
// space-separated word capitalized ("machine learning" -> "Machine
// Learning", "node.js" -> "Node.js").
func (d *Dictionary) Canonical(term string) string {
	key := strings.ToLower(term)
	if display, ok := d.display[key]; ok {
		return display
	}
	words := strings.Fields(key)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Sections returns the standard sections in declaration order.
func (d *Dictionary) Sections() []Section {
	out := make([]Section, len(d.sections))
	for i, s := range d.sections {
		syn := make([]string, len(s.Synonyms))
		copy(syn, s.Synonyms)
		out[i] = Section{Name: s.Name, Synonyms: syn}
	}
	return out
}

// CertificationKeywords returns the substrings that mark a line as a
// certification mention.
func (d *Dictionary) CertificationKeywords() []string {
	out := make([]string, len(d.certWords))
	copy(out, d.certWords)
	return out
}

// IsStopword reports whether the word is excluded from keyword extraction
// and similarity vocabulary.
func (d *Dictionary) IsStopword(word string) bool {
	_, ok := d.stopwords[strings.ToLower(word)]
	return ok
}
