package source

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"
)

// BoardType identifies which job board a posting came from.
type BoardType string

const (
	BoardAdzuna   BoardType = "adzuna"
	BoardJSearch  BoardType = "jsearch"
	BoardLinkedIn BoardType = "linkedin"
	BoardReed     BoardType = "reed"
	BoardIndeed   BoardType = "indeed"
	BoardFeed     BoardType = "feed"
)

// Posting is the standardized job record for all boards.
type Posting struct {
	ID          string    `json:"id" db:"id"`
	Board       BoardType `json:"board" db:"board"`
	ExternalID  string    `json:"external_id" db:"external_id"`
	Title       string    `json:"title" db:"title"`
	Company     string    `json:"company" db:"company"`
	Location    string    `json:"location" db:"location"`
	Snippet     string    `json:"snippet" db:"snippet"`
	Description string    `json:"description" db:"description"`
	URL         string    `json:"url" db:"url"`
	PostedAt    time.Time `json:"posted_at" db:"posted_at"`
	FoundAt     time.Time `json:"found_at" db:"found_at"`

	// Set by the matching stage, persisted alongside the posting.
	MatchScore        float64  `json:"match_score" db:"match_score"`
	MatchedSkills     []string `json:"matched_skills" db:"-"`
	Alerted           bool     `json:"alerted" db:"alerted"`
	MatchedSkillsJSON string   `json:"-" db:"matched_skills"`
}

// Query describes a single board search.
type Query struct {
	Keywords   string
	Location   string
	MaxResults int
}

// Board is the interface every job board client must implement.
type Board interface {
	Name() BoardType
	Search(ctx context.Context, q Query) ([]Posting, error)
}

// AllBoardTypes returns all known board types.
func AllBoardTypes() []BoardType {
	return []BoardType{
		BoardAdzuna,
		BoardJSearch,
		BoardLinkedIn,
		BoardReed,
		BoardIndeed,
		BoardFeed,
	}
}

// MakeID builds the stable posting identifier used for dedup.
func MakeID(board BoardType, externalID string) string {
	return string(board) + ":" + externalID
}

// HashID derives an external ID for boards that expose no stable one.
func HashID(parts ...string) string {
	h := sha1.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
