package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkedinFixture = `<!DOCTYPE html>
<html><body>
<ul class="jobs-search__results-list">
  <li>
    <div class="base-search-card">
      <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/platform-engineer-at-acme-4012345678?refId=x"></a>
      <h3 class="base-search-card__title">Platform Engineer</h3>
      <h4 class="base-search-card__subtitle">Acme Ltd</h4>
      <span class="job-search-card__location">London, England, United Kingdom</span>
      <p class="job-search-card__description">Build and run Kubernetes platforms.</p>
    </div>
  </li>
  <li>
    <div class="base-search-card">
      <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/sre-at-globex-4012345679"></a>
      <h3 class="base-search-card__title">Site Reliability Engineer</h3>
      <h4 class="base-search-card__subtitle">Globex</h4>
      <span class="job-search-card__location">Remote, UK</span>
    </div>
  </li>
  <li>
    <div class="base-search-card">
      <h3 class="base-search-card__title"></h3>
      <h4 class="base-search-card__subtitle">Empty Card Inc</h4>
    </div>
  </li>
</ul>
</body></html>`

func TestLinkedInSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "platform engineer", r.URL.Query().Get("keywords"))
		w.Write([]byte(linkedinFixture))
	}))
	defer srv.Close()

	l := NewLinkedIn()
	l.baseURL = srv.URL

	postings, err := l.Search(context.Background(), Query{Keywords: "platform engineer"})
	require.NoError(t, err)
	require.Len(t, postings, 2) // card without a title is skipped

	p := postings[0]
	assert.Equal(t, BoardLinkedIn, p.Board)
	assert.Equal(t, "Platform Engineer", p.Title)
	assert.Equal(t, "Acme Ltd", p.Company)
	assert.Equal(t, "London, England, United Kingdom", p.Location)
	assert.Equal(t, "Build and run Kubernetes platforms.", p.Snippet)
	assert.Equal(t, "platform-engineer-at-acme-4012345678", p.ExternalID)
	assert.Equal(t, "linkedin:platform-engineer-at-acme-4012345678", p.ID)
}

func TestLinkedInSearchMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(linkedinFixture))
	}))
	defer srv.Close()

	l := NewLinkedIn()
	l.baseURL = srv.URL

	postings, err := l.Search(context.Background(), Query{Keywords: "sre", MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, postings, 1)
}
