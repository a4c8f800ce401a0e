package client

import (
	"strconv"

	"jobboard/pkg/jobsearch"

	"github.com/dustin/go-humanize"
)

// Card is a JobSummary prepared for display.
type Card struct {
	ID          string
	Title       string
	Company     string
	Location    string
	SalaryLabel string
	RemoteLabel string
	TypeLabel   string
	Featured    bool
	Urgent      bool
	Saved       bool
	// Relevance is a percentage label such as "87%", empty when the
	// server reported no score.
	Relevance string
}

func (s *Session) Cards() []Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Card, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, NewCard(j, s.saved[j.ID]))
	}
	return out
}

func NewCard(j JobSummary, saved bool) Card {
	c := Card{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		SalaryLabel: SalaryLabel(j.SalaryMin, j.SalaryMax),
		RemoteLabel: remoteLabels[jobsearch.RemoteType(j.RemoteType)],
		TypeLabel:   jobTypeLabels[jobsearch.JobType(j.JobType)],
		Featured:    j.Featured,
		Urgent:      j.Urgent,
		Saved:       saved,
	}
	if c.RemoteLabel == "" {
		c.RemoteLabel = j.RemoteType
	}
	if c.TypeLabel == "" {
		c.TypeLabel = j.JobType
	}
	if j.Relevance > 0 {
		c.Relevance = strconv.Itoa(min(j.Relevance, 100)) + "%"
	}
	return c
}

var remoteLabels = map[jobsearch.RemoteType]string{
	jobsearch.RemoteOnsite: "On-site",
	jobsearch.RemoteHybrid: "Hybrid",
	jobsearch.RemoteRemote: "Remote",
}

var jobTypeLabels = map[jobsearch.JobType]string{
	jobsearch.JobFullTime:   "Full-time",
	jobsearch.JobPartTime:   "Part-time",
	jobsearch.JobContract:   "Contract",
	jobsearch.JobInternship: "Internship",
	jobsearch.JobFreelance:  "Freelance",
}

// SalaryLabel formats a salary range; zero means the bound is unknown.
func SalaryLabel(lo, hi int) string {
	money := func(n int) string { return "$" + humanize.Comma(int64(n)) }
	switch {
	case lo <= 0 && hi <= 0:
		return "Salary not disclosed"
	case hi <= 0:
		return "From " + money(lo)
	case lo <= 0:
		return "Up to " + money(hi)
	case lo == hi:
		return money(lo)
	default:
		return money(lo) + " - " + money(hi)
	}
}
