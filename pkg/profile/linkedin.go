package profile

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var linkedinProfileRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)linkedin\.com/in/([^/?#]+)`),
	regexp.MustCompile(`(?i)linkedin\.com/pub/([^/?#]+)`),
}

// LinkedIn fetches public LinkedIn profile pages.
type LinkedIn struct {
	client  *http.Client
	baseURL string
}

// NewLinkedIn creates a LinkedIn profile fetcher.
func NewLinkedIn() *LinkedIn {
	return &LinkedIn{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: "https://www.linkedin.com",
	}
}

// ProfileID extracts the profile identifier from a LinkedIn URL.
// Returns an empty string when the URL is not a profile link.
func ProfileID(url string) string {
	for _, re := range linkedinProfileRes {
		if sub := re.FindStringSubmatch(url); sub != nil {
			return sub[1]
		}
	}
	return ""
}

// Fetch downloads the public profile page and extracts a candidate from
// its visible text. Authenticated or JS-only profiles will come back
// thin; the caller should merge configured skills on top.
func (l *LinkedIn) Fetch(ctx context.Context, profileURL string) (*Candidate, error) {
	id := ProfileID(profileURL)
	if id == "" {
		return nil, fmt.Errorf("not a linkedin profile url: %s", profileURL)
	}

	reqURL := l.baseURL + "/in/" + id
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create linkedin request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch linkedin profile %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin profile %s status %d", id, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse linkedin profile %s: %w", id, err)
	}

	return Extract(doc.Text()), nil
}
