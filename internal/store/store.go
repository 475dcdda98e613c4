package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jobtrawl/jobtrawl/pkg/source"
)

// ListOpts controls posting listing.
type ListOpts struct {
	Board     source.BoardType
	MinScore  float64
	Since     time.Time
	Unalerted bool
	Limit     int
}

// Store is the persistence interface.
type Store interface {
	UpsertPosting(ctx context.Context, p *source.Posting) error
	UpsertPostings(ctx context.Context, postings []source.Posting) error
	GetPosting(ctx context.Context, id string) (*source.Posting, error)
	Seen(ctx context.Context, id string) (bool, error)
	ListPostings(ctx context.Context, opts ListOpts) ([]source.Posting, error)
	CountByBoard(ctx context.Context) (map[source.BoardType]int, error)
	MarkAlerted(ctx context.Context, ids []string) error

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertPosting(ctx context.Context, p *source.Posting) error {
	skillsJSON, _ := json.Marshal(p.MatchedSkills)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO postings (id, board, external_id, title, company, location, snippet, description, url, posted_at, found_at, match_score, matched_skills, alerted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(board, external_id) DO UPDATE SET
			snippet = excluded.snippet,
			description = CASE WHEN excluded.description != '' THEN excluded.description ELSE postings.description END,
			match_score = excluded.match_score,
			matched_skills = excluded.matched_skills
	`, p.ID, p.Board, p.ExternalID, p.Title, p.Company, p.Location,
		p.Snippet, p.Description, p.URL, p.PostedAt, p.FoundAt,
		p.MatchScore, string(skillsJSON), p.Alerted)
	if err != nil {
		return fmt.Errorf("upsert posting %s: %w", p.ID, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertPostings(ctx context.Context, postings []source.Posting) error {
	for i := range postings {
		if err := s.UpsertPosting(ctx, &postings[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) GetPosting(ctx context.Context, id string) (*source.Posting, error) {
	var p source.Posting
	err := s.db.GetContext(ctx, &p, "SELECT * FROM postings WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get posting %s: %w", id, err)
	}
	json.Unmarshal([]byte(p.MatchedSkillsJSON), &p.MatchedSkills)
	return &p, nil
}

// Seen reports whether a posting ID is already stored.
func (s *SQLiteStore) Seen(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.GetContext(ctx, &one, "SELECT 1 FROM postings WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check posting %s: %w", id, err)
	}
	return true, nil
}

func (s *SQLiteStore) ListPostings(ctx context.Context, opts ListOpts) ([]source.Posting, error) {
	query := "SELECT * FROM postings WHERE 1=1"
	var args []any

	if opts.Board != "" {
		query += " AND board = ?"
		args = append(args, opts.Board)
	}
	if opts.MinScore > 0 {
		query += " AND match_score >= ?"
		args = append(args, opts.MinScore)
	}
	if !opts.Since.IsZero() {
		query += " AND found_at >= ?"
		args = append(args, opts.Since)
	}
	if opts.Unalerted {
		query += " AND alerted = 0"
	}

	query += " ORDER BY match_score DESC, found_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT ?"
	args = append(args, limit)

	var postings []source.Posting
	if err := s.db.SelectContext(ctx, &postings, query, args...); err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}

	for i := range postings {
		json.Unmarshal([]byte(postings[i].MatchedSkillsJSON), &postings[i].MatchedSkills)
	}
	return postings, nil
}

func (s *SQLiteStore) CountByBoard(ctx context.Context) (map[source.BoardType]int, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT board, COUNT(*) as cnt FROM postings GROUP BY board")
	if err != nil {
		return nil, fmt.Errorf("count postings by board: %w", err)
	}
	defer rows.Close()

	counts := make(map[source.BoardType]int)
	for rows.Next() {
		var board string
		var cnt int
		if err := rows.Scan(&board, &cnt); err != nil {
			return nil, err
		}
		counts[source.BoardType(board)] = cnt
	}
	return counts, nil
}

func (s *SQLiteStore) MarkAlerted(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, "UPDATE postings SET alerted = 1 WHERE id = ?", id); err != nil {
			return fmt.Errorf("mark alerted %s: %w", id, err)
		}
	}
	return nil
}
