package search

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job is the subset of a posting the ranker looks at.
type Job struct {
	OriginalIndex int
	ID            uuid.UUID
	Title         string
	Company       string
	Location      string
	Description   string
	Skills        []string
	Source        string
	Featured      bool
	Urgent        bool
	PostedAt      time.Time
}

type JobScore struct {
	JobID         uuid.UUID
	Relevance     float64
	Freshness     float64
	SourceQuality float64
	DataQuality   float64
	Promotion     float64
	FinalScore    float64
}

// Ranked is a job with its score.
type Ranked struct {
	Job   Job
	Score JobScore
	// Percent is FinalScore on a 0..100 scale.
	Percent int
}

var SourceWeights = map[string]float64{
	"direct":   4,
	"imported": 2,
	"seed":     1,
	"unknown":  1,
}

const maxFinalScore = 10*2.0 + 5*1.5 + 4*1.0 + 5*0.5 + 2*1.0

func ComputeRelevance(job Job, queryVariants []string) float64 {
	if len(queryVariants) == 0 {
		return 0
	}

	title := strings.ToLower(job.Title)
	desc := strings.ToLower(job.Description)
	company := strings.ToLower(job.Company)
	skills := strings.ToLower(strings.Join(job.Skills, " "))

	score := 0.0
	for _, v := range queryVariants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if title != "" && strings.Contains(title, v) {
			score += 3
		}
		if skills != "" && strings.Contains(skills, v) {
			score += 2
		}
		if desc != "" && strings.Contains(desc, v) {
			score += 1
		}
		if company != "" && strings.Contains(company, v) {
			score += 1
		}
		if score >= 10 {
			return 10
		}
	}
	return score
}

func ComputeFreshness(job Job, now time.Time) float64 {
	if job.PostedAt.IsZero() {
		return 0
	}

	age := now.Sub(job.PostedAt)
	if age < 0 {
		age = 0
	}

	switch {
	case age <= 24*time.Hour:
		return 5
	case age <= 3*24*time.Hour:
		return 4
	case age <= 7*24*time.Hour:
		return 3
	case age <= 14*24*time.Hour:
		return 2
	case age <= 30*24*time.Hour:
		return 1
	}
	return 0
}

func ComputeSourceQuality(source string) float64 {
	source = strings.TrimSpace(strings.ToLower(source))
	if source == "" {
		source = "unknown"
	}
	if w, ok := SourceWeights[source]; ok {
		return w
	}
	return 1
}

func ComputeDataQuality(job Job) float64 {
	score := 0.0
	if strings.TrimSpace(job.Title) != "" {
		score += 1
	}
	if strings.TrimSpace(job.Company) != "" {
		score += 1
	}
	if strings.TrimSpace(job.Location) != "" {
		score += 1
	}
	if len(strings.TrimSpace(job.Description)) > 100 {
		score += 1
	}
	if len(job.Skills) > 0 {
		score += 1
	}
	return score
}

func ScoreJob(job Job, queryVariants []string, now time.Time) JobScore {
	rel := ComputeRelevance(job, queryVariants)
	fresh := ComputeFreshness(job, now)
	src := ComputeSourceQuality(job.Source)
	qual := ComputeDataQuality(job)
	promo := 0.0
	if job.Featured {
		promo++
	}
	if job.Urgent {
		promo++
	}

	final := (rel * 2.0) + (fresh * 1.5) + (src * 1.0) + (qual * 0.5) + promo

	return JobScore{
		JobID:         job.ID,
		Relevance:     rel,
		Freshness:     fresh,
		SourceQuality: src,
		DataQuality:   qual,
		Promotion:     promo,
		FinalScore:    final,
	}
}

// ScoreJobs scores every job and keeps the input order.
func ScoreJobs(jobs []Job, queryVariants []string, now time.Time) []Ranked {
	out := make([]Ranked, len(jobs))
	for i := range jobs {
		out[i] = Ranked{Job: jobs[i], Score: ScoreJob(jobs[i], queryVariants, now)}
		out[i].Percent = percent(out[i].Score.FinalScore)
	}
	return out
}

// RankJobs orders jobs by score, highest first. Equal scores keep their
// input order, so the database ordering decides ties.
func RankJobs(jobs []Job, queryVariants []string, now time.Time) []Ranked {
	out := ScoreJobs(jobs, queryVariants, now)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score.FinalScore > out[j].Score.FinalScore
	})
	return out
}

func percent(score float64) int {
	if score <= 0 {
		return 0
	}
	p := int(score/maxFinalScore*100 + 0.5)
	if p > 100 {
		return 100
	}
	return p
}
