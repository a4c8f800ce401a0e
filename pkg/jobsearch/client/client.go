// Package client talks to the job board listing API and keeps the state
// of one search session.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobboard/pkg/jobsearch"
)

var (
	// ErrTransport wraps failures that produced no HTTP response.
	ErrTransport = errors.New("jobsearch: transport failure")
	// ErrStale is returned for a response superseded by a newer request.
	ErrStale = errors.New("jobsearch: stale response")
)

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("jobsearch: status %d", e.StatusCode)
	}
	return fmt.Sprintf("jobsearch: status %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying the same request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

type JobSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	RemoteType  string    `json:"remoteType"`
	JobType     string    `json:"jobType"`
	SalaryMin   int       `json:"salaryMin"`
	SalaryMax   int       `json:"salaryMax"`
	Experience  string    `json:"experience,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	CompanySize string    `json:"companySize,omitempty"`
	Skills      []string  `json:"skills"`
	Featured    bool      `json:"featured"`
	Urgent      bool      `json:"urgent"`
	Views       int       `json:"views"`
	PostedAt    time.Time `json:"postedAt"`
	Relevance   int       `json:"relevance"`
}

type ListResponse struct {
	Jobs       []JobSummary `json:"jobs"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

type SalaryBounds struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// Facets is the catalog of known filter values.
type Facets struct {
	Salary       SalaryBounds `json:"salary"`
	RemoteTypes  []string     `json:"remoteTypes"`
	JobTypes     []string     `json:"jobTypes"`
	PostedWithin []string     `json:"postedWithin"`
	SortKeys     []string     `json:"sortKeys"`
	Locations    []string     `json:"locations"`
	Experience   []string     `json:"experience"`
	Industries   []string     `json:"industries"`
	Education    []string     `json:"education"`
	CompanySizes []string     `json:"companySizes"`
	Languages    []string     `json:"languages"`
	Benefits     []string     `json:"benefits"`
	Skills       []string     `json:"skills"`
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

const (
	listingPath   = "/jobs-listing"
	facetsPath    = "/jobs-listing/facets"
	savedJobsPath = "/api/v1/me/saved-jobs"

	maxErrorBody = 4096
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithToken sets the bearer token sent with saved-job calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("jobsearch: invalid base URL %q", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListJobs fetches one page. A page with no jobs is not an error.
func (c *Client) ListJobs(ctx context.Context, f jobsearch.Filters, page jobsearch.Page) (ListResponse, error) {
	var out ListResponse
	endpoint := c.baseURL + listingPath + "?" + jobsearch.QueryString(f, page)
	if err := c.do(ctx, http.MethodGet, endpoint, false, &out); err != nil {
		return ListResponse{}, err
	}
	if out.Jobs == nil {
		out.Jobs = []JobSummary{}
	}
	return out, nil
}

func (c *Client) Facets(ctx context.Context) (Facets, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, c.baseURL+facetsPath, false, &env); err != nil {
		return Facets{}, err
	}
	var out Facets
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return Facets{}, fmt.Errorf("jobsearch: decode facets: %w", err)
	}
	return out, nil
}

// SavedJobIDs lists the ids of the caller's saved jobs.
func (c *Client) SavedJobIDs(ctx context.Context) ([]string, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, c.baseURL+savedJobsPath, true, &env); err != nil {
		return nil, err
	}
	var out struct {
		IDs []string `json:"ids"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("jobsearch: decode saved jobs: %w", err)
	}
	return out.IDs, nil
}

func (c *Client) SaveJob(ctx context.Context, jobID string) error {
	return c.do(ctx, http.MethodPut, c.savedJobURL(jobID), true, nil)
}

func (c *Client) UnsaveJob(ctx context.Context, jobID string) error {
	return c.do(ctx, http.MethodDelete, c.savedJobURL(jobID), true, nil)
}

func (c *Client) savedJobURL(jobID string) string {
	return c.baseURL + savedJobsPath + "/" + url.PathEscape(jobID)
}

func (c *Client) do(ctx context.Context, method, endpoint string, auth bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrTransport, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := ""
	var env envelope
	if json.Unmarshal(body, &env) == nil {
		msg = env.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}
