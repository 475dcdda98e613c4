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

const reedBaseURL = "https://www.reed.co.uk"

// Reed scrapes reed.co.uk search result pages.
type Reed struct {
	client  *http.Client
	baseURL string
}

// NewReed creates a new Reed scraper.
func NewReed() *Reed {
	return &Reed{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: reedBaseURL,
	}
}

func (r *Reed) Name() BoardType { return BoardReed }

func (r *Reed) Search(ctx context.Context, q Query) ([]Posting, error) {
	kw := strings.ReplaceAll(strings.TrimSpace(q.Keywords), " ", "-")
	searchURL := fmt.Sprintf("%s/jobs/%s-jobs", r.baseURL, url.PathEscape(kw))
	if q.Location != "" {
		loc := strings.ReplaceAll(strings.TrimSpace(q.Location), " ", "-")
		searchURL = fmt.Sprintf("%s/jobs/%s-jobs-in-%s", r.baseURL, url.PathEscape(kw), url.PathEscape(loc))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create reed request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch reed jobs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reed status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse reed response: %w", err)
	}

	max := q.MaxResults
	if max <= 0 {
		max = 50
	}

	now := time.Now().UTC()
	var postings []Posting
	doc.Find("article.job-result, article[data-qa=job-card]").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		titleLink := card.Find("h2 a, h3 a").First()
		title := strings.TrimSpace(titleLink.Text())
		if title == "" {
			return true
		}

		href, _ := titleLink.Attr("href")
		if href != "" && !strings.HasPrefix(href, "http") {
			href = r.baseURL + href
		}

		company := strings.TrimSpace(card.Find("a[data-qa=job-card-posted-by], .gtmJobListingPostedBy").First().Text())
		location := strings.TrimSpace(card.Find("li[data-qa=job-card-location], .job-metadata__item--location").First().Text())
		snippet := strings.TrimSpace(card.Find("p.job-result-description__details, p[data-qa=job-card-description]").First().Text())

		externalID, _ := card.Attr("data-jobid")
		if externalID == "" {
			externalID = urlSlug(href)
		}
		if externalID == "" {
			externalID = HashID(title, company)
		}

		postings = append(postings, Posting{
			ID:         MakeID(BoardReed, externalID),
			Board:      BoardReed,
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
