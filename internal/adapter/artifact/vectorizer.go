package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/service"
)

// Vectorizer kinds
const (
	KindTfidf = "tfidf"
	KindCount = "count"
)

// defaultTokenPattern matches runs of two or more word characters
const defaultTokenPattern = `[\p{L}\p{N}_]{2,}`

const (
	normL1   = "l1"
	normL2   = "l2"
	normNone = "none"
)

type vectorizerParams struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Lowercase    *bool          `json:"lowercase"`
	StripAccents bool           `json:"strip_accents"`
	TokenPattern string         `json:"token_pattern"`
	NgramRange   []int          `json:"ngram_range"`
	StopWords    []string       `json:"stop_words"`
	Binary       bool           `json:"binary"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Norm         *string        `json:"norm"`
}

// TextVectorizer is a bag-of-n-grams vectorizer with optional IDF weighting
type TextVectorizer struct {
	kind         string
	vocabulary   map[string]int
	idf          []float64
	lowercase    bool
	stripAccents bool
	pattern      *regexp.Regexp
	minN, maxN   int
	stopWords    map[string]struct{}
	binary       bool
	sublinearTF  bool
	norm         string
}

func decodeTextVectorizer(kind string, raw json.RawMessage) (*TextVectorizer, error) {
	var p vectorizerParams
	if err := unmarshalParams(raw, &p); err != nil {
		return nil, err
	}

	if len(p.Vocabulary) == 0 {
		return nil, invalid("empty vocabulary")
	}
	dim := len(p.Vocabulary)
	seen := make([]bool, dim)
	for term, col := range p.Vocabulary {
		if col < 0 || col >= dim || seen[col] {
			return nil, invalid("vocabulary column %d for %q is out of range or reused", col, term)
		}
		seen[col] = true
	}

	v := &TextVectorizer{
		kind:         kind,
		vocabulary:   p.Vocabulary,
		lowercase:    true,
		stripAccents: p.StripAccents,
		minN:         1,
		maxN:         1,
		binary:       p.Binary,
		sublinearTF:  p.SublinearTF,
		norm:         normNone,
	}
	if p.Lowercase != nil {
		v.lowercase = *p.Lowercase
	}

	if kind == KindTfidf {
		if len(p.IDF) != dim {
			return nil, invalid("idf has %d weights for %d terms", len(p.IDF), dim)
		}
		for _, w := range p.IDF {
			if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
				return nil, invalid("idf weights must be positive and finite")
			}
		}
		v.idf = p.IDF
		v.norm = normL2
	}
	if p.Norm != nil {
		switch *p.Norm {
		case normL1, normL2:
			v.norm = *p.Norm
		case normNone, "":
			v.norm = normNone
		default:
			return nil, invalid("unsupported norm %q", *p.Norm)
		}
	}

	pattern := p.TokenPattern
	if pattern == "" {
		pattern = defaultTokenPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, invalid("token pattern: %v", err)
	}
	v.pattern = re

	if len(p.NgramRange) > 0 {
		if len(p.NgramRange) != 2 || p.NgramRange[0] < 1 || p.NgramRange[1] < p.NgramRange[0] {
			return nil, invalid("ngram_range must be [min, max] with 1 <= min <= max")
		}
		v.minN, v.maxN = p.NgramRange[0], p.NgramRange[1]
	}

	if len(p.StopWords) > 0 {
		v.stopWords = make(map[string]struct{}, len(p.StopWords))
		for _, w := range p.StopWords {
			v.stopWords[v.normalize(w)] = struct{}{}
		}
	}
	return v, nil
}

// Dimensions returns the vocabulary size
func (v *TextVectorizer) Dimensions() int {
	return len(v.vocabulary)
}

// Kind returns "tfidf" or "count"
func (v *TextVectorizer) Kind() string {
	return v.kind
}

// Transform vectorizes a single text. Input that is not valid UTF-8 or that
// carries binary control characters is rejected.
func (v *TextVectorizer) Transform(text string) (*entity.FeatureVector, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", service.ErrFeatureExtraction)
	}
	for _, r := range text {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return nil, fmt.Errorf("%w: text contains control character %U", service.ErrFeatureExtraction, r)
		}
	}

	counts := make(map[int]float64)
	tokens := v.tokenize(v.normalize(text))
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+n], " ")
			if col, ok := v.vocabulary[term]; ok {
				counts[col]++
			}
		}
	}

	for col, tf := range counts {
		switch {
		case v.binary:
			tf = 1
		case v.sublinearTF:
			tf = 1 + math.Log(tf)
		}
		if v.idf != nil {
			tf *= v.idf[col]
		}
		counts[col] = tf
	}
	v.normalizeWeights(counts)

	return entity.NewFeatureVector(v.Dimensions(), counts), nil
}

func (v *TextVectorizer) normalize(text string) string {
	if v.stripAccents {
		text = stripAccents(text)
	}
	if v.lowercase {
		text = strings.ToLower(text)
	}
	return text
}

func (v *TextVectorizer) tokenize(text string) []string {
	tokens := v.pattern.FindAllString(text, -1)
	if v.stopWords == nil {
		return tokens
	}
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := v.stopWords[tok]; !stop {
			kept = append(kept, tok)
		}
	}
	return kept
}

func (v *TextVectorizer) normalizeWeights(weights map[int]float64) {
	var total float64
	switch v.norm {
	case normL1:
		for _, w := range weights {
			total += math.Abs(w)
		}
	case normL2:
		for _, w := range weights {
			total += w * w
		}
		total = math.Sqrt(total)
	default:
		return
	}
	if total == 0 {
		return
	}
	for col, w := range weights {
		weights[col] = w / total
	}
}

// stripAccents decomposes text and drops combining marks
func stripAccents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFKD.String(text) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
