package ngram

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Classifier reports whether a rune belongs to the comparable character class.
// Whitespace is always treated as comparable regardless of the classifier.
type Classifier func(r rune) bool

// Predefined classifiers.
var (
	// Arabic accepts runes of the Arabic script.
	Arabic = Scripts(unicode.Arabic)

	// Latin accepts runes of the Latin script.
	Latin = Scripts(unicode.Latin)

	// Letters accepts any Unicode letter.
	Letters Classifier = unicode.IsLetter
)

// Scripts builds a Classifier accepting runes from any of the given range tables.
func Scripts(tables ...*unicode.RangeTable) Classifier {
	return func(r rune) bool {
		return unicode.In(r, tables...)
	}
}

// ClassifierByName resolves a classifier from its configuration name.
// Known names are "arabic", "latin" and "letters". Any other name is looked up
// in unicode.Scripts ignoring case, so "han" and "Han" both resolve.
func ClassifierByName(name string) (Classifier, bool) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(name) {
	case "arabic", "":
		return Arabic, true
	case "latin":
		return Latin, true
	case "letters":
		return Letters, true
	}
	for script, table := range unicode.Scripts {
		if strings.EqualFold(script, name) {
			return Scripts(table), true
		}
	}
	return nil, false
}

// Normalizer reduces text to its comparable characters.
// A Normalizer is immutable after construction and safe for concurrent use.
type Normalizer struct {
	classify        Classifier
	form            norm.Form
	useForm         bool
	stripDiacritics bool
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithClassifier sets the comparable character class.
// Default is Arabic. A nil classifier keeps the default.
func WithClassifier(c Classifier) NormalizerOption {
	return func(n *Normalizer) {
		if c != nil {
			n.classify = c
		}
	}
}

// WithForm applies a Unicode normalization form before filtering.
func WithForm(form norm.Form) NormalizerOption {
	return func(n *Normalizer) {
		n.form = form
		n.useForm = true
	}
}

// WithDiacriticsStripped removes Arabic vowel marks and tatweel, so vocalized
// and plain spellings of a verse compare equal.
func WithDiacriticsStripped() NormalizerOption {
	return func(n *Normalizer) {
		n.stripDiacritics = true
	}
}

// NewNormalizer creates a Normalizer. Without options it keeps Arabic letters
// and whitespace only.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{classify: Arabic}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Default is the Arabic normalizer used by the package-level helpers.
var Default = NewNormalizer()

// Normalize drops every rune outside the comparable class, collapses runs of
// whitespace to a single space and trims both ends.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	if n.useForm {
		text = n.form.String(text)
	}

	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if n.stripDiacritics && isArabicMark(r) {
			continue
		}
		if !n.classify(r) {
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Grams normalizes text and returns its n-grams.
func (n *Normalizer) Grams(text string, size int) []string {
	return Generate(n.Normalize(text), size)
}

// isArabicMark matches harakat, superscript alef and tatweel.
func isArabicMark(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670 || r == 0x0640
}

// Normalize normalizes text with the Default normalizer.
func Normalize(text string) string {
	return Default.Normalize(text)
}
