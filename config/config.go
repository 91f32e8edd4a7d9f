// Package config loads versesim settings from TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/versesim/ngram"
	"golang.org/x/text/unicode/norm"
)

// Defaults match the original search dialog.
const (
	DefaultN             = 3
	DefaultMinSimilarity = 20.0
	DefaultScript        = "arabic"
	DefaultDatabase      = "versesim.db"
)

// ErrInvalidConfig is returned when a config fails to decode or validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the top-level configuration.
type Config struct {
	Database Database `toml:"database"`
	Search   Search   `toml:"search"`
}

// Database locates the verse store.
type Database struct {
	Path string `toml:"path"`
}

// Search holds the search defaults.
type Search struct {
	N               int     `toml:"n"`
	MinSimilarity   float64 `toml:"min_similarity"`
	Script          string  `toml:"script"`        // arabic, latin, letters or a Unicode script name
	Normalization   string  `toml:"normalization"` // empty, NFC, NFD, NFKC or NFKD
	StripDiacritics bool    `toml:"strip_diacritics"`
	Workers         int     `toml:"workers"`
	Limit           int     `toml:"limit"` // 0 means unlimited
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: Database{Path: DefaultDatabase},
		Search: Search{
			N:             DefaultN,
			MinSimilarity: DefaultMinSimilarity,
			Script:        DefaultScript,
			Workers:       1,
		},
	}
}

// Load reads a TOML file on top of the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	s := c.Search
	if s.N < 1 {
		return fmt.Errorf("%w: search.n must be at least 1, got %d", ErrInvalidConfig, s.N)
	}
	if s.MinSimilarity < 0 || s.MinSimilarity > 100 {
		return fmt.Errorf("%w: search.min_similarity must be between 0 and 100, got %g", ErrInvalidConfig, s.MinSimilarity)
	}
	if s.Workers < 1 {
		return fmt.Errorf("%w: search.workers must be at least 1, got %d", ErrInvalidConfig, s.Workers)
	}
	if s.Limit < 0 {
		return fmt.Errorf("%w: search.limit cannot be negative, got %d", ErrInvalidConfig, s.Limit)
	}
	if _, ok := ngram.ClassifierByName(s.Script); !ok {
		return fmt.Errorf("%w: unknown search.script %q", ErrInvalidConfig, s.Script)
	}
	if _, _, err := s.form(); err != nil {
		return err
	}
	return nil
}

// Normalizer builds the text normalizer described by the search settings.
func (s Search) Normalizer() (*ngram.Normalizer, error) {
	classify, ok := ngram.ClassifierByName(s.Script)
	if !ok {
		return nil, fmt.Errorf("%w: unknown search.script %q", ErrInvalidConfig, s.Script)
	}
	opts := []ngram.NormalizerOption{ngram.WithClassifier(classify)}

	form, useForm, err := s.form()
	if err != nil {
		return nil, err
	}
	if useForm {
		opts = append(opts, ngram.WithForm(form))
	}
	if s.StripDiacritics {
		opts = append(opts, ngram.WithDiacriticsStripped())
	}
	return ngram.NewNormalizer(opts...), nil
}

func (s Search) form() (norm.Form, bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s.Normalization)) {
	case "":
		return 0, false, nil
	case "NFC":
		return norm.NFC, true, nil
	case "NFD":
		return norm.NFD, true, nil
	case "NFKC":
		return norm.NFKC, true, nil
	case "NFKD":
		return norm.NFKD, true, nil
	}
	return 0, false, fmt.Errorf("%w: unknown search.normalization %q", ErrInvalidConfig, s.Normalization)
}
