package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adzunaFixture = `{
  "results": [
    {
      "id": "5012345678",
      "title": "IT Support Engineer",
      "company": {"display_name": "Acme Systems"},
      "location": {"display_name": "London, UK"},
      "description": "Supporting Windows and Azure estates for a managed service provider.",
      "redirect_url": "https://www.adzuna.co.uk/jobs/details/5012345678",
      "created": "2026-08-28T09:15:00Z"
    },
    {
      "id": "5012345679",
      "title": "DevOps Engineer",
      "company": {"display_name": "Initech"},
      "location": {"display_name": "Manchester, UK"},
      "description": "Kubernetes, Terraform, CI/CD pipelines.",
      "redirect_url": "https://www.adzuna.co.uk/jobs/details/5012345679",
      "created": "2026-08-29T14:00:00Z"
    }
  ]
}`

func TestAdzunaSearch(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"app_id":  r.URL.Query().Get("app_id"),
			"app_key": r.URL.Query().Get("app_key"),
			"what":    r.URL.Query().Get("what"),
			"where":   r.URL.Query().Get("where"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(adzunaFixture))
	}))
	defer srv.Close()

	a := NewAdzuna("test-id", "test-key")
	a.baseURL = srv.URL

	postings, err := a.Search(context.Background(), Query{
		Keywords: "it support", Location: "London", MaxResults: 10,
	})
	require.NoError(t, err)
	require.Len(t, postings, 2)

	assert.Equal(t, "/gb/search/1", gotPath)
	assert.Equal(t, "test-id", gotQuery["app_id"])
	assert.Equal(t, "test-key", gotQuery["app_key"])
	assert.Equal(t, "it support", gotQuery["what"])
	assert.Equal(t, "London", gotQuery["where"])

	p := postings[0]
	assert.Equal(t, BoardAdzuna, p.Board)
	assert.Equal(t, "adzuna:5012345678", p.ID)
	assert.Equal(t, "IT Support Engineer", p.Title)
	assert.Equal(t, "Acme Systems", p.Company)
	assert.Equal(t, "London, UK", p.Location)
	assert.Equal(t, "https://www.adzuna.co.uk/jobs/details/5012345678", p.URL)
	assert.Equal(t, 2026, p.PostedAt.Year())
	assert.False(t, p.FoundAt.IsZero())
}

func TestAdzunaSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := NewAdzuna("bad", "bad")
	a.baseURL = srv.URL

	_, err := a.Search(context.Background(), Query{Keywords: "devops"})
	assert.Error(t, err)
}

func TestAdzunaCountry(t *testing.T) {
	assert.Equal(t, "gb", adzunaCountry("London, UK"))
	assert.Equal(t, "es", adzunaCountry("Madrid"))
	assert.Equal(t, "de", adzunaCountry("Berlin, Germany"))
	assert.Equal(t, "gb", adzunaCountry(""))
	assert.Equal(t, "gb", adzunaCountry("Remote"))
}
