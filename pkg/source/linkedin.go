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

const linkedInBaseURL = "https://www.linkedin.com/jobs/search"

// LinkedIn scrapes the public LinkedIn jobs search page.
type LinkedIn struct {
	client  *http.Client
	baseURL string
}

// NewLinkedIn creates a new LinkedIn scraper.
func NewLinkedIn() *LinkedIn {
	return &LinkedIn{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: linkedInBaseURL,
	}
}

func (l *LinkedIn) Name() BoardType { return BoardLinkedIn }

func (l *LinkedIn) Search(ctx context.Context, q Query) ([]Posting, error) {
	params := url.Values{}
	params.Set("keywords", q.Keywords)
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	params.Set("sortBy", "R")
	params.Set("f_TPR", "r86400") // last 24 hours

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create linkedin request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch linkedin jobs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse linkedin response: %w", err)
	}

	max := q.MaxResults
	if max <= 0 {
		max = 50
	}

	now := time.Now().UTC()
	var postings []Posting
	doc.Find("div.base-search-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := strings.TrimSpace(card.Find("h3.base-search-card__title").Text())
		company := strings.TrimSpace(card.Find("h4.base-search-card__subtitle").Text())
		if title == "" || company == "" {
			return true
		}

		href, _ := card.Find("a.base-card__full-link").Attr("href")
		location := strings.TrimSpace(card.Find("span.job-search-card__location").Text())
		snippet := strings.TrimSpace(card.Find("p.job-search-card__description").Text())

		externalID := urlSlug(href)
		if externalID == "" {
			externalID = HashID(title, company)
		}

		postings = append(postings, Posting{
			ID:         MakeID(BoardLinkedIn, externalID),
			Board:      BoardLinkedIn,
			ExternalID: externalID,
			Title:      title,
			Company:    company,
			Location:   location,
			Snippet:    snippet,
			URL:        href,
			FoundAt:    now,
		})
		return len(postings) < max
	})

	return postings, nil
}

// urlSlug returns the last path segment of a URL, stripped of query
// parameters. Empty when the URL has no usable path.
func urlSlug(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return ""
	}
	segs := strings.Split(path, "/")
	return segs[len(segs)-1]
}
