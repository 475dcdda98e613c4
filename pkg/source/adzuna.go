package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"

// adzunaCountries maps location hints to Adzuna country codes, checked
// in order.
var adzunaCountries = []struct{ hint, code string }{
	{"united kingdom", "gb"},
	{"uk", "gb"},
	{"london", "gb"},
	{"spain", "es"},
	{"madrid", "es"},
	{"france", "fr"},
	{"paris", "fr"},
	{"germany", "de"},
	{"berlin", "de"},
	{"netherlands", "nl"},
	{"amsterdam", "nl"},
}

// Adzuna searches jobs via the official Adzuna API.
type Adzuna struct {
	client  *http.Client
	baseURL string
	appID   string
	appKey  string
}

// NewAdzuna creates a new Adzuna API client.
func NewAdzuna(appID, appKey string) *Adzuna {
	return &Adzuna{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: adzunaBaseURL,
		appID:   appID,
		appKey:  appKey,
	}
}

func (a *Adzuna) Name() BoardType { return BoardAdzuna }

func (a *Adzuna) Search(ctx context.Context, q Query) ([]Posting, error) {
	maxResults := q.MaxResults
	if maxResults <= 0 || maxResults > 50 {
		maxResults = 50
	}

	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", strconv.Itoa(maxResults))
	params.Set("what", q.Keywords)
	if q.Location != "" {
		params.Set("where", q.Location)
	}
	params.Set("content-type", "application/json")

	reqURL := fmt.Sprintf("%s/%s/search/1?%s", a.baseURL, adzunaCountry(q.Location), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create adzuna request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch adzuna: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna API status %d", resp.StatusCode)
	}

	var result adzunaSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode adzuna response: %w", err)
	}

	now := time.Now().UTC()
	postings := make([]Posting, 0, len(result.Results))
	for _, r := range result.Results {
		externalID := r.ID
		if externalID == "" {
			externalID = HashID(r.Title, r.Company.DisplayName)
		}
		created, _ := time.Parse(time.RFC3339, r.Created)
		postings = append(postings, Posting{
			ID:         MakeID(BoardAdzuna, externalID),
			Board:      BoardAdzuna,
			ExternalID: externalID,
			Title:      r.Title,
			Company:    r.Company.DisplayName,
			Location:   r.Location.DisplayName,
			Snippet:    r.Description,
			URL:        r.RedirectURL,
			PostedAt:   created,
			FoundAt:    now,
		})
	}
	return postings, nil
}

// adzunaCountry picks the API country segment from the location string.
// Defaults to the UK.
func adzunaCountry(location string) string {
	lower := strings.ToLower(location)
	for _, c := range adzunaCountries {
		if strings.Contains(lower, c.hint) {
			return c.code
		}
	}
	return "gb"
}

type adzunaSearchResult struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
	Created     string `json:"created"`
}
