// internal/app/system/wordcloud/wordcloud.go
//
// Package wordcloud turns free-text comments into weighted words. Weight is
// term frequency after case folding and stop-word removal, scaled into a
// font-size range for the client-side cloud.
package wordcloud

import (
	"slices"
	"strings"
	"unicode"

	"github.com/dalemusser/waffle/pantry/text"
)

// Defaults for the cloud.
const (
	MinFontSize = 20
	MaxFontSize = 60
	MaxWords    = 100
	minWordLen  = 3
)

// Word is one entry of the cloud.
type Word struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
	Size  int    `json:"value"`
}

// Options tune Build; zero fields take the defaults.
type Options struct {
	MinSize  int
	MaxSize  int
	MaxWords int
}

func (o Options) withDefaults() Options {
	if o.MinSize <= 0 {
		o.MinSize = MinFontSize
	}
	if o.MaxSize < o.MinSize {
		o.MaxSize = MaxFontSize
		if o.MaxSize < o.MinSize {
			o.MaxSize = o.MinSize
		}
	}
	if o.MaxWords <= 0 {
		o.MaxWords = MaxWords
	}
	return o
}

// Tokenize splits s on anything that is not a letter, digit or apostrophe,
// trims stray apostrophes, and drops short tokens and stop words. Returned
// tokens are folded.
func Tokenize(s string) []string {
	var out []string
	for _, f := range split(s) {
		if key, ok := token(f); ok {
			out = append(out, key)
		}
	}
	return out
}

func split(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// token returns the folded key for one raw field.
func token(f string) (string, bool) {
	f = strings.Trim(f, "'")
	if len([]rune(f)) < minWordLen || isNumber(f) {
		return "", false
	}
	key := text.Fold(f)
	if _, stop := stopWords[key]; stop {
		return "", false
	}
	return key, true
}

// Build counts words across texts and returns the most frequent, highest
// first (ties alphabetical), with sizes scaled linearly between MinSize and
// MaxSize. The display text of a word is its first lowercased spelling.
func Build(texts []string, opts Options) []Word {
	opts = opts.withDefaults()

	counts := map[string]int{}
	display := map[string]string{}
	for _, t := range texts {
		for _, f := range split(t) {
			key, ok := token(f)
			if !ok {
				continue
			}
			counts[key]++
			if _, seen := display[key]; !seen {
				display[key] = strings.ToLower(strings.Trim(f, "'"))
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}

	words := make([]Word, 0, len(counts))
	for k, n := range counts {
		words = append(words, Word{Text: display[k], Count: n})
	}
	slices.SortFunc(words, func(a, b Word) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Text, b.Text)
	})
	if len(words) > opts.MaxWords {
		words = words[:opts.MaxWords]
	}

	hi, lo := words[0].Count, words[len(words)-1].Count
	for i := range words {
		words[i].Size = scale(words[i].Count, lo, hi, opts.MinSize, opts.MaxSize)
	}
	return words
}

func scale(n, lo, hi, minSize, maxSize int) int {
	if hi == lo {
		return (minSize + maxSize) / 2
	}
	return minSize + (n-lo)*(maxSize-minSize)/(hi-lo)
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

var stopWords = func() map[string]struct{} {
	list := strings.Fields(`
		a about above after again against all also am an and any are aren't as at
		be because been before being below between both but by can can't cannot
		could couldn't did didn't do does doesn't doing don't down during each few
		for from further get got had hadn't has hasn't have haven't having he he'd
		he'll he's her here here's hers herself him himself his how how's i i'd
		i'll i'm i've if in into is isn't it it's its itself just let's me more
		most much mustn't my myself no nor not now of off on once only or other
		ought our ours ourselves out over own really same shan't she she'd she'll
		she's should shouldn't so some such than that that's the their theirs them
		themselves then there there's these they they'd they'll they're they've
		this those through to too under until up very was wasn't we we'd we'll
		we're we've were weren't what what's when when's where where's which while
		who who's whom why why's will with won't would wouldn't you you'd you'll
		you're you've your yours yourself yourselves
	`)
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}()
