package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const indeedBaseURL = "https://uk.indeed.com"

// Indeed scrapes uk.indeed.com search result pages. Indeed blocks
// automated clients aggressively, so callers should treat failures
// here as routine.
type Indeed struct {
	client  *http.Client
	baseURL string
}

// NewIndeed creates a new Indeed scraper.
func NewIndeed() *Indeed {
	return &Indeed{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: indeedBaseURL,
	}
}

func (i *Indeed) Name() BoardType { return BoardIndeed }

func (i *Indeed) Search(ctx context.Context, q Query) ([]Posting, error) {
	params := url.Values{}
	params.Set("q", q.Keywords)
	if q.Location != "" {
		params.Set("l", q.Location)
	}
	params.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.baseURL+"/jobs?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create indeed request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch indeed jobs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("indeed status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse indeed response: %w", err)
	}

	max := q.MaxResults
	if max <= 0 {
		max = 50
	}

	now := time.Now().UTC()
	var postings []Posting
	doc.Find("div.job_seen_beacon").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := strings.TrimSpace(card.Find("h2.jobTitle span").First().Text())
		if title == "" {
			title = strings.TrimSpace(card.Find("h2.jobTitle").First().Text())
		}
		if title == "" {
			return true
		}

		company := strings.TrimSpace(card.Find("span[data-testid=company-name], span.companyName").First().Text())
		location := strings.TrimSpace(card.Find("div[data-testid=text-location], div.companyLocation").First().Text())
		snippet := strings.TrimSpace(card.Find("div.job-snippet").Text())

		externalID, _ := card.Find("a[data-jk]").Attr("data-jk")
		if externalID == "" {
			externalID, _ = card.Find("h2.jobTitle a").Attr("data-jk")
		}
		if externalID == "" {
			externalID = HashID(title, company)
		}

		postings = append(postings, Posting{
			ID:         MakeID(BoardIndeed, externalID),
			Board:      BoardIndeed,
			ExternalID: externalID,
			Title:      title,
			Company:    company,
			Location:   location,
			Snippet:    snippet,
			URL:        i.baseURL + "/viewjob?jk=" + externalID,
			FoundAt:    now,
		})
		return len(postings) < max
	})

	return postings, nil
}
