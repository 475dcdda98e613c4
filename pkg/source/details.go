package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const maxDescriptionLen = 20000

// descriptionSelectors maps a board to the CSS selector of its job
// description container on the detail page.
var descriptionSelectors = map[BoardType]string{
	BoardIndeed:   "div#jobDescriptionText",
	BoardLinkedIn: "div.show-more-less-html__markup",
	BoardReed:     "div.description, div[itemprop=description]",
}

// DetailFetcher fetches full job descriptions from posting URLs.
// Search results usually carry only a short snippet; the full text
// scores far better.
type DetailFetcher struct {
	client *http.Client
}

// NewDetailFetcher creates a detail fetcher with a short timeout so a
// slow board cannot stall a whole trawl.
func NewDetailFetcher() *DetailFetcher {
	return &DetailFetcher{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchDescription loads the posting's URL and fills in Description.
// A posting without a URL or with an unrecognised page layout is
// returned unchanged.
func (d *DetailFetcher) FetchDescription(ctx context.Context, p *Posting) error {
	if p.URL == "" || p.Description != "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return fmt.Errorf("create detail request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch detail page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("detail page status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("parse detail page: %w", err)
	}

	text := ""
	if sel, ok := descriptionSelectors[p.Board]; ok {
		text = strings.TrimSpace(doc.Find(sel).First().Text())
	}
	if text == "" {
		text = strings.TrimSpace(doc.Find("div.description").First().Text())
	}
	if text == "" {
		return nil
	}

	if len(text) > maxDescriptionLen {
		text = text[:maxDescriptionLen]
	}
	p.Description = text
	return nil
}
