package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"

	"jobboard/internal/search"
	"jobboard/pkg/jobsearch"
)

const (
	SearchCachePrefix = "jobs:search:"
	SearchLockPrefix  = "jobs:lock:"
)

type jobSearchCacheKeyInput struct {
	Query        string   `json:"q"`
	Location     string   `json:"loc"`
	RemoteType   []string `json:"rt"`
	JobType      []string `json:"jt"`
	SalaryRange  [2]int   `json:"sal"`
	Experience   []string `json:"exp"`
	Industry     []string `json:"ind"`
	Skills       []string `json:"sk"`
	Education    []string `json:"edu"`
	Languages    []string `json:"lang"`
	Benefits     []string `json:"ben"`
	CompanySize  []string `json:"cs"`
	Featured     string   `json:"f"`
	Urgent       string   `json:"u"`
	PostedWithin string   `json:"pw"`
	SortBy       string   `json:"sb"`
	SortOrder    string   `json:"so"`
	Page         int      `json:"p"`
	Limit        int      `json:"l"`
}

func normalizeSearchValue(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// normalizeSet lowercases, drops blanks and duplicates, and sorts: facet
// sequences are sets as far as the query is concerned.
func normalizeSet(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = normalizeSearchValue(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// JobsSearchCacheKey derives the cache key of a listing request. Requests
// that differ only in case, spacing or facet order share a key.
func JobsSearchCacheKey(f jobsearch.Filters, page jobsearch.Page) string {
	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = jobsearch.SortRelevance
	}
	sortOrder := f.SortOrder
	if sortOrder == "" {
		sortOrder = jobsearch.OrderDesc
	}

	in := jobSearchCacheKeyInput{
		Query:        search.NormalizeQuery(f.Query),
		Location:     normalizeSearchValue(f.Location),
		RemoteType:   normalizeSet(f.RemoteType),
		JobType:      normalizeSet(f.JobType),
		SalaryRange:  f.SalaryRange,
		Experience:   normalizeSet(f.Experience),
		Industry:     normalizeSet(f.Industry),
		Skills:       normalizeSet(f.Skills),
		Education:    normalizeSet(f.Education),
		Languages:    normalizeSet(f.Languages),
		Benefits:     normalizeSet(f.Benefits),
		CompanySize:  normalizeSet(f.CompanySize),
		Featured:     f.Featured.String(),
		Urgent:       f.Urgent.String(),
		PostedWithin: string(f.PostedWithin),
		SortBy:       string(sortBy),
		SortOrder:    string(sortOrder),
		Page:         page.Number,
		Limit:        page.Size,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return SearchCachePrefix + hex.EncodeToString(sum[:])
}

func JobsSearchLockKey(searchKey string) string {
	return SearchLockPrefix + strings.TrimPrefix(strings.TrimSpace(searchKey), SearchCachePrefix)
}
