package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Feed is a named RSS/Atom job feed URL.
type Feed struct {
	Name string
	URL  string
}

// Feeds collects postings from RSS/Atom job feeds. Many smaller
// boards (WeWorkRemotely, remoteok, company career pages) publish
// new openings as feeds.
type Feeds struct {
	client *http.Client
	parser *gofeed.Parser
	feeds  []Feed
	maxAge time.Duration
}

// NewFeeds creates a new feed collector. maxAge bounds how far back
// entries are accepted; zero means seven days.
func NewFeeds(feeds []Feed, maxAge time.Duration) *Feeds {
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	return &Feeds{
		client: &http.Client{Timeout: 30 * time.Second},
		parser: gofeed.NewParser(),
		feeds:  feeds,
		maxAge: maxAge,
	}
}

func (f *Feeds) Name() BoardType { return BoardFeed }

func (f *Feeds) Search(ctx context.Context, q Query) ([]Posting, error) {
	var all []Posting

	for _, feed := range f.feeds {
		postings, err := f.collectFeed(ctx, feed, q)
		if err != nil {
			fmt.Printf("  feed %s error: %v\n", feed.Name, err)
			continue
		}
		all = append(all, postings...)
	}

	if q.MaxResults > 0 && len(all) > q.MaxResults {
		all = all[:q.MaxResults]
	}
	return all, nil
}

func (f *Feeds) collectFeed(ctx context.Context, feed Feed, q Query) ([]Posting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request %s: %w", feed.Name, err)
	}
	req.Header.Set("User-Agent", "jobtrawl/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feed.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s status %d", feed.Name, resp.StatusCode)
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feed.Name, err)
	}

	keywords := splitTerms(q.Keywords)
	cutoff := time.Now().Add(-f.maxAge)
	now := time.Now().UTC()

	var postings []Posting
	for _, entry := range parsed.Items {
		published := now
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC()
		} else if entry.UpdatedParsed != nil {
			published = entry.UpdatedParsed.UTC()
		}
		if published.Before(cutoff) {
			continue
		}

		// Feeds carry everything the board publishes; keep only
		// entries mentioning at least one query keyword.
		text := strings.ToLower(entry.Title + " " + entry.Description)
		if len(keywords) > 0 && !containsAny(text, keywords) {
			continue
		}

		link := entry.Link
		if link == "" && len(entry.Links) > 0 {
			link = entry.Links[0]
		}

		externalID := entry.GUID
		if externalID == "" {
			externalID = HashID(feed.Name, entry.Title, link)
		}

		company := feed.Name
		if entry.Author != nil && entry.Author.Name != "" {
			company = entry.Author.Name
		}

		postings = append(postings, Posting{
			ID:         MakeID(BoardFeed, externalID),
			Board:      BoardFeed,
			ExternalID: externalID,
			Title:      entry.Title,
			Company:    company,
			Snippet:    truncate(stripTags(entry.Description), 500),
			URL:        link,
			PostedAt:   published,
			FoundAt:    now,
		})
	}

	return postings, nil
}

func splitTerms(keywords string) []string {
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(keywords)) {
		if len(t) >= 3 {
			terms = append(terms, t)
		}
	}
	return terms
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// stripTags drops HTML tags from feed descriptions. Crude but good
// enough for snippet text.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
