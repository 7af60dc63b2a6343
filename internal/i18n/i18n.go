package i18n

import (
	"embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Base is the language the source strings are written in
const Base = "en"

//go:embed *.yaml
var tables embed.FS

var supported = []string{Base, "ru"}

// Translator maps an English UI string to the active language
type Translator interface {
	T(key string) string
}

// Languages returns the supported language codes, base language first
func Languages() []string {
	return slices.Clone(supported)
}

// Dictionary is a Translator backed by an embedded YAML table. Keys are the
// English strings; a missing key translates to itself.
type Dictionary struct {
	lang    string
	entries map[string]string
}

// NewDictionary loads the table for lang
func NewDictionary(lang string) (*Dictionary, error) {
	if !slices.Contains(supported, lang) {
		return nil, fmt.Errorf("unsupported language %q", lang)
	}
	d := &Dictionary{lang: lang, entries: map[string]string{}}
	if lang == Base {
		return d, nil
	}

	data, err := tables.ReadFile(lang + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("reading %s table: %w", lang, err)
	}
	if err := yaml.Unmarshal(data, &d.entries); err != nil {
		return nil, fmt.Errorf("parsing %s table: %w", lang, err)
	}
	return d, nil
}

// MustDictionary is NewDictionary for languages known to be supported
func MustDictionary(lang string) *Dictionary {
	d, err := NewDictionary(lang)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Dictionary) Lang() string {
	return d.lang
}

func (d *Dictionary) T(key string) string {
	if v, ok := d.entries[key]; ok && v != "" {
		return v
	}
	return key
}

// Next returns the language that follows lang in the supported list,
// wrapping around. Used by the language toggle.
func Next(lang string) string {
	i := slices.Index(supported, lang)
	return supported[(i+1)%len(supported)]
}
