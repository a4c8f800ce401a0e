package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard/pkg/jobsearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "not a url", "http://"} {
		_, err := New(raw)
		assert.Error(t, err, raw)
	}
}

func TestClient_ListJobs(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/jobs-listing", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"jobs":[{"id":"a1","title":"Go Developer","salaryMin":50000,"salaryMax":90000,"relevance":80}],"total":31,"page":2,"limit":12,"totalPages":3}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/")
	require.NoError(t, err)

	f := jobsearch.DefaultFilters()
	f.Query = "go"
	f.RemoteType = []string{"REMOTE"}
	res, err := c.ListJobs(context.Background(), f, jobsearch.Page{Number: 2, Size: 12})
	require.NoError(t, err)

	assert.Equal(t, 31, res.Total)
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "Go Developer", res.Jobs[0].Title)
	assert.Equal(t, jobsearch.QueryString(f, jobsearch.Page{Number: 2, Size: 12}), gotQuery)
}

func TestClient_EmptyPageIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jobs":null,"total":0,"page":1,"limit":12,"totalPages":0}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	res, err := c.ListJobs(context.Background(), jobsearch.DefaultFilters(), jobsearch.FirstPage())
	require.NoError(t, err)
	assert.NotNil(t, res.Jobs)
	assert.Empty(t, res.Jobs)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		message   string
		temporary bool
	}{
		{name: "envelope message", status: http.StatusBadRequest, body: `{"status":400,"message":"Bad request","data":null}`, message: "Bad request"},
		{name: "plain body", status: http.StatusBadGateway, body: "upstream down", message: "upstream down", temporary: true},
		{name: "empty body", status: http.StatusTooManyRequests, message: "Too Many Requests", temporary: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := New(srv.URL)
			require.NoError(t, err)

			_, err = c.ListJobs(context.Background(), jobsearch.DefaultFilters(), jobsearch.FirstPage())
			var serr *StatusError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.status, serr.StatusCode)
			assert.Equal(t, tt.message, serr.Message)
			assert.Equal(t, tt.temporary, serr.Temporary())
			assert.NotErrorIs(t, err, ErrTransport)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = c.ListJobs(context.Background(), jobsearch.DefaultFilters(), jobsearch.FirstPage())
	assert.ErrorIs(t, err, ErrTransport)
	var serr *StatusError
	assert.False(t, errors.As(err, &serr))
}

func TestClient_SavedJobs(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authorization"))
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": 200, "message": "ok", "data": map[string]any{"ids": []string{"j1", "j2"}}})
			return
		}
		_, _ = w.Write([]byte(`{"status":200,"message":"ok","data":null}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithToken("tok"))
	require.NoError(t, err)

	require.NoError(t, c.SaveJob(context.Background(), "j1"))
	require.NoError(t, c.UnsaveJob(context.Background(), "j1"))
	ids, err := c.SavedJobIDs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"j1", "j2"}, ids)
	assert.Equal(t, []string{
		"PUT /api/v1/me/saved-jobs/j1 Bearer tok",
		"DELETE /api/v1/me/saved-jobs/j1 Bearer tok",
		"GET /api/v1/me/saved-jobs Bearer tok",
	}, calls)
}

func TestClient_Facets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/jobs-listing/facets", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":200,"message":"ok","data":{"salary":{"min":0,"max":200000,"step":5000},"remoteTypes":["ONSITE","HYBRID","REMOTE"]}}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	f, err := c.Facets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200000, f.Salary.Max)
	assert.Equal(t, []string{"ONSITE", "HYBRID", "REMOTE"}, f.RemoteTypes)
}
