package importer

import (
	"errors"
	"time"
)

var (
	ErrInvalidURL = errors.New("invalid job url")
	ErrNoContent  = errors.New("page has no job content")
	ErrFetch      = errors.New("fetch job page failed")
)

// Posting is what could be read from a public job page. Enum fields use the
// listing vocabulary (REMOTE, FULL_TIME, ...) and are empty when unknown.
type Posting struct {
	URL         string
	Title       string
	Company     string
	Location    string
	Description string

	RemoteType string
	JobType    string
	SalaryMin  int
	SalaryMax  int

	Skills         []string
	RequiredSkills []string

	PostedAt *time.Time
	// Rendered is set when the page needed a headless browser.
	Rendered bool
}
