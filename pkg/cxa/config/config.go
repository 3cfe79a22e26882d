// Package config loads the fixed resources the pipeline depends on:
// the theme taxonomy, the stop-word list and the sentiment lexicon.
// A missing or unparsable resource is fatal at load time, because every
// downstream guarantee assumes these are present; per-record problems
// are handled inside the pipeline instead.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/keywords"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/sentiment"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/themes"
)

// Loader assembles the pipeline components from resource files. Empty
// paths fall back to the embedded defaults.
type Loader struct {
	TaxonomyPath  string
	StopwordsPath string
	LexiconPath   string
}

// Components holds the loaded stage components, ready to hand to the
// engine.
type Components struct {
	Analyzer  *sentiment.Analyzer
	Extractor *keywords.Extractor
	Taxonomy  *themes.Taxonomy
}

// Load resolves every resource. Any configured path that cannot be
// loaded fails the whole call.
func (l Loader) Load() (*Components, error) {
	c := &Components{
		Analyzer:  sentiment.NewAnalyzer(nil),
		Extractor: keywords.NewExtractor(nil),
		Taxonomy:  themes.Default(),
	}

	if l.LexiconPath != "" {
		lex, err := LoadLexicon(l.LexiconPath)
		if err != nil {
			return nil, err
		}
		c.Analyzer = sentiment.NewAnalyzer(lex)
	}
	if l.StopwordsPath != "" {
		stops, err := LoadStopwords(l.StopwordsPath)
		if err != nil {
			return nil, err
		}
		c.Extractor = keywords.NewExtractor(stops)
	}
	if l.TaxonomyPath != "" {
		tax, err := LoadTaxonomy(l.TaxonomyPath)
		if err != nil {
			return nil, err
		}
		c.Taxonomy = tax
	}
	return c, nil
}

// TaxonomyFile is the on-disk taxonomy layout.
type TaxonomyFile struct {
	Themes []themes.Theme `yaml:"themes"`
}

// LoadTaxonomy loads and validates a theme taxonomy from a YAML file.
func LoadTaxonomy(path string) (*themes.Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file TaxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	return themes.New(file.Themes)
}

// StopwordsFile is the on-disk stop-word list layout.
type StopwordsFile struct {
	Terms []string `yaml:"terms"`
}

// LoadStopwords loads a stop-word list from a YAML file.
func LoadStopwords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file StopwordsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse stopwords %s: %w", path, err)
	}
	if len(file.Terms) == 0 {
		return nil, fmt.Errorf("stopwords %s: no terms", path)
	}
	return file.Terms, nil
}

// LoadLexicon loads a sentiment lexicon from a tab-separated file
// (term<TAB>valence per line, '#' comments).
func LoadLexicon(path string) (sentiment.Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lex, err := sentiment.ParseLexicon(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return lex, nil
}
