package search

import "strings"

var Synonyms = map[string][]string{
	"frontend":       {"front end", "frontend developer", "ui developer", "react"},
	"backend":        {"back end", "server developer", "api developer"},
	"fullstack":      {"full stack", "full-stack"},
	"devops":         {"site reliability", "sre", "platform engineer"},
	"designer":       {"graphic designer", "ui designer", "ux designer"},
	"developer":      {"engineer", "programmer"},
	"engineer":       {"developer"},
	"golang":         {"go developer", "go"},
	"js":             {"javascript"},
	"ts":             {"typescript"},
	"pm":             {"project manager", "product manager"},
	"qa":             {"quality assurance", "tester"},
	"data scientist": {"machine learning", "data analyst"},
	"admin":          {"administrator", "office admin"},
}

func GetSynonyms(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}
	}
	if v, ok := Synonyms[query]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
