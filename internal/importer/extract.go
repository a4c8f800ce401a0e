package importer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const maxDescriptionRunes = 20000

// extract reads a Posting out of a parsed page. Structured JobPosting data
// wins over meta tags, which win over the visible body text.
func extract(doc *goquery.Selection, pageURL string) Posting {
	p := Posting{URL: pageURL}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if ld, ok := parseJSONLD(s.Text()); ok {
			p = mergePosting(ld, p)
			return false
		}
		return true
	})

	if p.Title == "" {
		p.Title = firstNonEmpty(
			metaContent(doc, `meta[property="og:title"]`),
			collapse(doc.Find("title").First().Text()),
			collapse(doc.Find("h1").First().Text()),
		)
	}
	if p.Company == "" {
		p.Company = metaContent(doc, `meta[property="og:site_name"]`)
	}
	if p.Description == "" {
		p.Description = firstNonEmpty(
			metaContent(doc, `meta[property="og:description"]`),
			metaContent(doc, `meta[name="description"]`),
		)
	}
	if p.Description == "" {
		body := doc.Find("body").First()
		body.Find("script, style, noscript, template").Remove()
		p.Description = truncateRunes(collapse(body.Text()), maxDescriptionRunes)
	}
	if p.RemoteType == "" {
		p.RemoteType = guessRemoteType(p.Title + " " + p.Location)
	}
	return p
}

// mergePosting fills the empty fields of base from ld.
func mergePosting(ld, base Posting) Posting {
	out := ld
	out.URL = base.URL
	if out.Title == "" {
		out.Title = base.Title
	}
	if out.Company == "" {
		out.Company = base.Company
	}
	if out.Description == "" {
		out.Description = base.Description
	}
	return out
}

func metaContent(doc *goquery.Selection, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return collapse(v)
}

// parseJSONLD looks for a schema.org JobPosting in one ld+json block. The
// block may hold a single object, an array or an @graph.
func parseJSONLD(raw string) (Posting, bool) {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil {
		return Posting{}, false
	}
	m, ok := findJobPosting(v)
	if !ok {
		return Posting{}, false
	}

	p := Posting{
		Title:       collapse(str(m["title"])),
		Company:     orgName(m["hiringOrganization"]),
		Location:    locationName(m["jobLocation"]),
		Description: truncateRunes(htmlText(str(m["description"])), maxDescriptionRunes),
		JobType:     jobTypeOf(m["employmentType"]),
		Skills:      stringList(m["skills"]),
	}
	if strings.EqualFold(str(m["jobLocationType"]), "TELECOMMUTE") {
		p.RemoteType = "REMOTE"
	}
	p.SalaryMin, p.SalaryMax = salaryRange(m["baseSalary"])
	if t, ok := parseDate(str(m["datePosted"])); ok {
		p.PostedAt = &t
	}
	return p, true
}

func findJobPosting(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if m, ok := findJobPosting(item); ok {
				return m, true
			}
		}
	case map[string]any:
		if isType(x["@type"], "JobPosting") {
			return x, true
		}
		if g, ok := x["@graph"]; ok {
			return findJobPosting(g)
		}
	}
	return nil, false
}

func isType(v any, want string) bool {
	switch x := v.(type) {
	case string:
		return x == want
	case []any:
		for _, t := range x {
			if s, ok := t.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func str(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}

func orgName(v any) string {
	switch x := v.(type) {
	case string:
		return collapse(x)
	case map[string]any:
		return collapse(str(x["name"]))
	}
	return ""
}

func locationName(v any) string {
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if s := locationName(item); s != "" {
				return s
			}
		}
	case string:
		return collapse(x)
	case map[string]any:
		addr, ok := x["address"]
		if !ok {
			return collapse(str(x["name"]))
		}
		if s, ok := addr.(string); ok {
			return collapse(s)
		}
		a, ok := addr.(map[string]any)
		if !ok {
			return ""
		}
		parts := make([]string, 0, 3)
		for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
			var s string
			if c, ok := a[key].(map[string]any); ok {
				s = str(c["name"])
			} else {
				s = str(a[key])
			}
			if s = collapse(s); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func jobTypeOf(v any) string {
	for _, raw := range stringList(v) {
		switch strings.ToUpper(strings.ReplaceAll(raw, "-", "_")) {
		case "FULL_TIME", "FULLTIME":
			return "FULL_TIME"
		case "PART_TIME", "PARTTIME":
			return "PART_TIME"
		case "CONTRACTOR", "CONTRACT", "TEMPORARY":
			return "CONTRACT"
		case "INTERN", "INTERNSHIP":
			return "INTERNSHIP"
		case "PER_DIEM", "FREELANCE":
			return "FREELANCE"
		}
	}
	return ""
}

func salaryRange(v any) (int, int) {
	m, ok := v.(map[string]any)
	if !ok {
		return 0, 0
	}
	val, ok := m["value"].(map[string]any)
	if !ok {
		n := number(m["value"])
		return n, n
	}
	lo, hi := number(val["minValue"]), number(val["maxValue"])
	if lo == 0 && hi == 0 {
		n := number(val["value"])
		return n, n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func number(v any) int {
	switch x := v.(type) {
	case float64:
		return int(math.Round(x))
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(x), ",", ""), 64)
		if err == nil {
			return int(math.Round(f))
		}
	}
	return 0
}

func stringList(v any) []string {
	var raw []string
	switch x := v.(type) {
	case string:
		raw = strings.Split(x, ",")
	case []any:
		for _, item := range x {
			switch it := item.(type) {
			case string:
				raw = append(raw, it)
			case map[string]any:
				raw = append(raw, str(it["name"]))
			}
		}
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = collapse(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// htmlText strips markup from descriptions that embed HTML.
func htmlText(s string) string {
	if !strings.Contains(s, "<") {
		return collapse(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	return collapse(doc.Text())
}

func guessRemoteType(s string) string {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "hybrid"):
		return "HYBRID"
	case strings.Contains(l, "remote"):
		return "REMOTE"
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
