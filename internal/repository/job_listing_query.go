package repository

import (
	"strconv"
	"strings"
	"time"

	"jobboard/pkg/jobsearch"
)

// JobListFilter is a validated listing request as the repository sees it.
type JobListFilter struct {
	Filters jobsearch.Filters
	// TextVariants replaces Filters.Query: the normalized query and its
	// synonym expansions, any of which may match.
	TextVariants []string
	// PostedAfter narrows to jobs posted strictly after the instant.
	PostedAfter *time.Time
	Now         time.Time
	Limit       int
	Offset      int
}

// listingQuery accumulates WHERE predicates and their positional args.
type listingQuery struct {
	where []string
	args  []any

	textArg string
}

func (q *listingQuery) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *listingQuery) add(pred string) {
	q.where = append(q.where, pred)
}

func (q *listingQuery) whereSQL() string {
	return "WHERE " + strings.Join(q.where, " AND ")
}

// buildListingQuery translates the facets into SQL. Every facet left at
// its default adds nothing; only active jobs are ever returned.
func buildListingQuery(f JobListFilter) *listingQuery {
	q := &listingQuery{}
	q.add("j.is_active = true")

	if patterns := likePatterns(f.TextVariants); len(patterns) > 0 {
		q.textArg = q.arg(patterns)
		q.add("(j.title ILIKE ANY(" + q.textArg + ") OR j.company ILIKE ANY(" + q.textArg + ") OR j.description ILIKE ANY(" + q.textArg + ") OR array_to_string(j.skills, ' ') ILIKE ANY(" + q.textArg + "))")
	}

	fs := f.Filters
	if loc := strings.TrimSpace(fs.Location); loc != "" {
		q.add("j.location ILIKE " + q.arg("%"+escapeLike(loc)+"%"))
	}
	if len(fs.RemoteType) > 0 {
		q.add("j.remote_type = ANY(" + q.arg(fs.RemoteType) + ")")
	}
	if len(fs.JobType) > 0 {
		q.add("j.job_type = ANY(" + q.arg(fs.JobType) + ")")
	}

	if lo := fs.SalaryRange[0]; lo > jobsearch.MinSalary {
		q.add("j.salary_max >= " + q.arg(lo))
	}
	if hi := fs.SalaryRange[1]; hi < jobsearch.MaxSalary {
		q.add("j.salary_min <= " + q.arg(hi))
	}

	scalarFacets := []struct {
		column string
		values []string
	}{
		{"j.experience_level", fs.Experience},
		{"j.industry", fs.Industry},
		{"j.education", fs.Education},
		{"j.company_size", fs.CompanySize},
	}
	for _, sf := range scalarFacets {
		if len(sf.values) > 0 {
			q.add("lower(" + sf.column + ") = ANY(" + q.arg(lowerAll(sf.values)) + ")")
		}
	}

	arrayFacets := []struct {
		column string
		values []string
	}{
		{"j.skills", fs.Skills},
		{"j.languages", fs.Languages},
		{"j.benefits", fs.Benefits},
	}
	for _, af := range arrayFacets {
		if len(af.values) > 0 {
			q.add("EXISTS (SELECT 1 FROM unnest(" + af.column + ") AS t(v) WHERE lower(t.v) = ANY(" + q.arg(lowerAll(af.values)) + "))")
		}
	}

	if b, ok := fs.Featured.Bool(); ok {
		q.add("j.featured = " + q.arg(b))
	}
	if b, ok := fs.Urgent.Bool(); ok {
		q.add("j.urgent = " + q.arg(b))
	}

	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	if d := postedWindow(fs.PostedWithin); d > 0 {
		q.add("j.posted_at >= " + q.arg(now.Add(-d).UTC()))
	}
	if f.PostedAfter != nil {
		q.add("j.posted_at > " + q.arg(f.PostedAfter.UTC()))
	}

	return q
}

// scoreSQL is the text-match score used by relevance ordering.
func (q *listingQuery) scoreSQL() string {
	if q.textArg == "" {
		return "0"
	}
	return "(CASE WHEN j.title ILIKE ANY(" + q.textArg + ") THEN 3 ELSE 0 END" +
		" + CASE WHEN array_to_string(j.skills, ' ') ILIKE ANY(" + q.textArg + ") THEN 2 ELSE 0 END" +
		" + CASE WHEN j.description ILIKE ANY(" + q.textArg + ") THEN 1 ELSE 0 END" +
		" + CASE WHEN j.company ILIKE ANY(" + q.textArg + ") THEN 1 ELSE 0 END)"
}

// orderBySQL maps a sort key to a fixed ORDER BY. Every ordering ends
// with j.id so pages never overlap or skip rows. relevance, newest,
// oldest, salary_high and salary_low carry their own direction; title,
// company and views follow the requested order.
func (q *listingQuery) orderBySQL(by jobsearch.SortBy, order jobsearch.SortOrder) string {
	dir := "DESC"
	if order == jobsearch.OrderAsc {
		dir = "ASC"
	}

	var keys string
	switch by {
	case jobsearch.SortNewest:
		keys = "j.posted_at DESC"
	case jobsearch.SortOldest:
		keys = "j.posted_at ASC"
	case jobsearch.SortSalaryHigh:
		keys = "j.salary_max DESC, j.salary_min DESC"
	case jobsearch.SortSalaryLow:
		keys = "j.salary_min ASC, j.salary_max ASC"
	case jobsearch.SortTitle:
		keys = "lower(j.title) " + dir
	case jobsearch.SortCompany:
		keys = "lower(j.company) " + dir
	case jobsearch.SortViews:
		keys = "j.views " + dir
	default:
		keys = "score DESC, j.featured DESC, j.posted_at DESC"
	}
	return "ORDER BY " + keys + ", j.id ASC"
}

func postedWindow(p jobsearch.PostedWithin) time.Duration {
	switch p {
	case jobsearch.PostedToday:
		return 24 * time.Hour
	case jobsearch.PostedWeek:
		return 7 * 24 * time.Hour
	case jobsearch.PostedMonth:
		return 30 * 24 * time.Hour
	case jobsearch.Posted3Months:
		return 90 * 24 * time.Hour
	default:
		return 0
	}
}

func likePatterns(variants []string) []string {
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, "%"+escapeLike(v)+"%")
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
