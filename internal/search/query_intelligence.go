package search

import (
	"strings"
	"unicode"
)

// MaxVariants caps how many text variants a query expands to.
const MaxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lowercases input, keeps letters, digits and the symbols
// used in technology names (c++, c#, .net), and collapses whitespace.
func NormalizeQuery(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case r == '+' || r == '#' || r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/' || r == ',':
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	out := words[:0]
	for _, w := range words {
		if w = strings.TrimRight(w, "."); w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

// ExpandQuery returns the normalized query followed by its synonym
// variants, at most MaxVariants entries.
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, MaxVariants)
	seen := make(map[string]struct{}, MaxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)

	// Replace a leading one or two word phrase that has synonyms, keeping
	// the rest: "backend berlin" -> "back end berlin".
	tryPrefix := func(phrase string, rest []string) {
		syns := GetSynonyms(phrase)
		restStr := strings.Join(rest, " ")
		for _, syn := range syns {
			add(strings.TrimSpace(syn + " " + restStr))
		}
	}
	if len(words) >= 1 {
		tryPrefix(words[0], words[1:])
	}
	if len(words) >= 2 {
		tryPrefix(words[0]+" "+words[1], words[2:])
	}

	// A compact first word matching a spaced synonym key
	// ("datascientist") expands like the spaced form.
	if len(words) >= 1 {
		if key, ok := spacedKey(words[0]); ok {
			rest := words[1:]
			add(strings.Join(append([]string{key}, rest...), " "))
			tryPrefix(key, rest)
		}
	}

	if len(out) > MaxVariants {
		out = out[:MaxVariants]
	}
	return out
}

func spacedKey(word string) (string, bool) {
	for k := range Synonyms {
		if strings.Contains(k, " ") && strings.ReplaceAll(k, " ", "") == word {
			return k, true
		}
	}
	return "", false
}

func ProcessQuery(input string) QueryContext {
	ctx := QueryContext{Original: input}
	ctx.Normalized = NormalizeQuery(input)
	if ctx.Normalized == "" {
		ctx.Variants = []string{}
		return ctx
	}
	ctx.Variants = ExpandQuery(ctx.Normalized)
	return ctx
}

// FallbackFirstWord returns the first word of a multi-word query, or ""
// when there is nothing shorter to fall back to.
func FallbackFirstWord(normalized string) string {
	words := strings.Fields(normalized)
	if len(words) < 2 {
		return ""
	}
	return words[0]
}
