package importer

import (
	"regexp"
	"sort"
	"strings"
)

var requirementMarkers = []string{"must", "required", "require", "mandatory", "need to", "needs", "minimum", "min."}

// ExtractSkills finds vocabulary entries mentioned in text. A skill counts
// as required when it is mentioned at least three times or appears near a
// requirement marker such as "must" or "required". Results keep the
// vocabulary spelling and are ordered by mention count.
func ExtractSkills(text string, vocabulary []string) (skills, required []string) {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return nil, nil
	}

	type hit struct {
		name  string
		count int
	}
	hits := make([]hit, 0)
	seen := map[string]struct{}{}
	for _, name := range vocabulary {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if c := countMentions(lower, key); c > 0 {
			hits = append(hits, hit{name: name, count: c})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].count == hits[j].count {
			return hits[i].name < hits[j].name
		}
		return hits[i].count > hits[j].count
	})

	for _, h := range hits {
		skills = append(skills, h.name)
		if h.count >= 3 || nearMarker(lower, strings.ToLower(h.name)) {
			required = append(required, h.name)
		}
	}
	return skills, required
}

func countMentions(textLower, skillLower string) int {
	re := regexp.MustCompile(`(^|[^a-z0-9+#.])` + regexp.QuoteMeta(skillLower) + `([^a-z0-9+#]|$)`)
	return len(re.FindAllStringIndex(textLower, -1))
}

func nearMarker(textLower, skillLower string) bool {
	idx := strings.Index(textLower, skillLower)
	if idx < 0 {
		return false
	}
	start := max(idx-80, 0)
	end := min(idx+len(skillLower)+80, len(textLower))
	window := textLower[start:end]
	for _, m := range requirementMarkers {
		if strings.Contains(window, m) {
			return true
		}
	}
	return false
}
