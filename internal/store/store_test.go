package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrawl/jobtrawl/pkg/source"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testPosting(id string) source.Posting {
	return source.Posting{
		ID:            source.MakeID(source.BoardAdzuna, id),
		Board:         source.BoardAdzuna,
		ExternalID:    id,
		Title:         "DevOps Engineer",
		Company:       "Acme",
		Location:      "London, UK",
		Snippet:       "Kubernetes and Terraform.",
		URL:           "https://example.com/" + id,
		PostedAt:      time.Now().UTC().Truncate(time.Second),
		FoundAt:       time.Now().UTC().Truncate(time.Second),
		MatchScore:    0.72,
		MatchedSkills: []string{"kubernetes", "terraform"},
	}
}

func TestUpsertAndGetPosting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testPosting("1001")
	require.NoError(t, s.UpsertPosting(ctx, &p))

	got, err := s.GetPosting(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Company, got.Company)
	assert.InDelta(t, 0.72, got.MatchScore, 0.001)
	assert.Equal(t, []string{"kubernetes", "terraform"}, got.MatchedSkills)
}

func TestUpsertPostingDeduplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testPosting("1001")
	require.NoError(t, s.UpsertPosting(ctx, &p))

	// Same board + external id again, with a fresher score.
	p2 := testPosting("1001")
	p2.MatchScore = 0.91
	require.NoError(t, s.UpsertPosting(ctx, &p2))

	counts, err := s.CountByBoard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[source.BoardAdzuna])

	got, err := s.GetPosting(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.91, got.MatchScore, 0.001)
}

func TestUpsertKeepsExistingDescription(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testPosting("1001")
	p.Description = "full description text"
	require.NoError(t, s.UpsertPosting(ctx, &p))

	again := testPosting("1001")
	require.NoError(t, s.UpsertPosting(ctx, &again))

	got, err := s.GetPosting(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "full description text", got.Description)
}

func TestSeen(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seen, err := s.Seen(ctx, "adzuna:1001")
	require.NoError(t, err)
	assert.False(t, seen)

	p := testPosting("1001")
	require.NoError(t, s.UpsertPosting(ctx, &p))

	seen, err = s.Seen(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestListPostings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	low := testPosting("low")
	low.MatchScore = 0.25
	high := testPosting("high")
	high.MatchScore = 0.85
	reed := testPosting("reed-1")
	reed.ID = source.MakeID(source.BoardReed, "reed-1")
	reed.Board = source.BoardReed
	reed.MatchScore = 0.60

	require.NoError(t, s.UpsertPostings(ctx, []source.Posting{low, high, reed}))

	all, err := s.ListPostings(ctx, ListOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "adzuna:high", all[0].ID) // ordered by score

	scored, err := s.ListPostings(ctx, ListOpts{MinScore: 0.5})
	require.NoError(t, err)
	assert.Len(t, scored, 2)

	byBoard, err := s.ListPostings(ctx, ListOpts{Board: source.BoardReed})
	require.NoError(t, err)
	require.Len(t, byBoard, 1)
	assert.Equal(t, source.BoardReed, byBoard[0].Board)

	limited, err := s.ListPostings(ctx, ListOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestMarkAlerted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testPosting("1001")
	require.NoError(t, s.UpsertPosting(ctx, &p))

	unalerted, err := s.ListPostings(ctx, ListOpts{Unalerted: true})
	require.NoError(t, err)
	require.Len(t, unalerted, 1)

	require.NoError(t, s.MarkAlerted(ctx, []string{p.ID}))

	unalerted, err = s.ListPostings(ctx, ListOpts{Unalerted: true})
	require.NoError(t, err)
	assert.Empty(t, unalerted)
}
