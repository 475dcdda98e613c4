package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const jsearchBaseURL = "https://jsearch.p.rapidapi.com"

// JSearch searches Google for Jobs via the JSearch RapidAPI.
type JSearch struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewJSearch creates a new JSearch API client.
func NewJSearch(apiKey string) *JSearch {
	return &JSearch{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: jsearchBaseURL,
		apiKey:  apiKey,
	}
}

func (j *JSearch) Name() BoardType { return BoardJSearch }

func (j *JSearch) Search(ctx context.Context, q Query) ([]Posting, error) {
	query := q.Keywords
	if q.Location != "" {
		query += " " + q.Location
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create jsearch request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", j.apiKey)
	req.Header.Set("X-RapidAPI-Host", "jsearch.p.rapidapi.com")

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jsearch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jsearch API status %d", resp.StatusCode)
	}

	var result jsearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode jsearch response: %w", err)
	}

	max := q.MaxResults
	if max <= 0 || max > len(result.Data) {
		max = len(result.Data)
	}

	now := time.Now().UTC()
	postings := make([]Posting, 0, max)
	for _, jb := range result.Data[:max] {
		externalID := jb.JobID
		if externalID == "" {
			externalID = HashID(jb.Title, jb.Employer)
		}
		location := jb.City
		if location == "" {
			location = jb.Country
		}
		posted, _ := time.Parse(time.RFC3339, jb.PostedAt)
		postings = append(postings, Posting{
			ID:          MakeID(BoardJSearch, externalID),
			Board:       BoardJSearch,
			ExternalID:  externalID,
			Title:       jb.Title,
			Company:     jb.Employer,
			Location:    location,
			Description: jb.Description,
			URL:         jb.ApplyLink,
			PostedAt:    posted,
			FoundAt:     now,
		})
	}
	return postings, nil
}

type jsearchResult struct {
	Data []jsearchJob `json:"data"`
}

type jsearchJob struct {
	JobID       string `json:"job_id"`
	Title       string `json:"job_title"`
	Employer    string `json:"employer_name"`
	City        string `json:"job_city"`
	Country     string `json:"job_country"`
	Description string `json:"job_description"`
	ApplyLink   string `json:"job_apply_link"`
	PostedAt    string `json:"job_posted_at_datetime_utc"`
}
