package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrawl/jobtrawl/internal/store"
	"github.com/jobtrawl/jobtrawl/pkg/alert"
	"github.com/jobtrawl/jobtrawl/pkg/match"
	"github.com/jobtrawl/jobtrawl/pkg/source"
)

type fakeBoard struct {
	name     source.BoardType
	postings []source.Posting
	err      error
}

func (f *fakeBoard) Name() source.BoardType { return f.name }
func (f *fakeBoard) Search(context.Context, source.Query) ([]source.Posting, error) {
	return f.postings, f.err
}

type fakeStore struct {
	saved   map[string]source.Posting
	alerted map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		saved:   make(map[string]source.Posting),
		alerted: make(map[string]bool),
	}
}

func (f *fakeStore) UpsertPosting(_ context.Context, p *source.Posting) error {
	f.saved[p.ID] = *p
	return nil
}

func (f *fakeStore) UpsertPostings(ctx context.Context, ps []source.Posting) error {
	for i := range ps {
		f.UpsertPosting(ctx, &ps[i])
	}
	return nil
}

func (f *fakeStore) GetPosting(_ context.Context, id string) (*source.Posting, error) {
	p, ok := f.saved[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &p, nil
}

func (f *fakeStore) Seen(_ context.Context, id string) (bool, error) {
	_, ok := f.saved[id]
	return ok, nil
}

func (f *fakeStore) ListPostings(context.Context, store.ListOpts) ([]source.Posting, error) {
	return nil, nil
}

func (f *fakeStore) CountByBoard(context.Context) (map[source.BoardType]int, error) {
	return nil, nil
}

func (f *fakeStore) MarkAlerted(_ context.Context, ids []string) error {
	for _, id := range ids {
		f.alerted[id] = true
	}
	return nil
}

func (f *fakeStore) Close() error { return nil }

type recordingNotifier struct {
	notifications []*alert.Notification
}

func (r *recordingNotifier) Name() string { return "recording" }
func (r *recordingNotifier) Send(_ context.Context, n *alert.Notification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func posting(board source.BoardType, id, title, desc string) source.Posting {
	return source.Posting{
		ID:          source.MakeID(board, id),
		Board:       board,
		ExternalID:  id,
		Title:       title,
		Description: desc,
		Location:    "London, UK",
		PostedAt:    time.Now().UTC(),
		FoundAt:     time.Now().UTC(),
	}
}

func testMatcher() *match.Matcher {
	return match.New(match.Profile{
		Skills:          []string{"python", "kubernetes", "terraform", "aws"},
		Keywords:        []string{"devops", "platform"},
		ExperienceYears: 6,
	}, match.DefaultConfig())
}

func TestPipelineRun(t *testing.T) {
	strong := posting(source.BoardAdzuna, "1", "Senior DevOps Engineer",
		"Python, Kubernetes, Terraform and AWS on a platform team. 5+ years experience.")
	weak := posting(source.BoardReed, "2", "Head Chef",
		"Run a busy kitchen in central London.")

	st := newFakeStore()
	rec := &recordingNotifier{}
	p := New(
		[]source.Board{
			&fakeBoard{name: source.BoardAdzuna, postings: []source.Posting{strong}},
			&fakeBoard{name: source.BoardReed, postings: []source.Posting{weak}},
		},
		st, testMatcher(), alert.NewManager([]alert.Notifier{rec}), nil,
	)

	stats, err := p.Run(context.Background(), Options{
		Keywords: []string{"devops engineer"},
		MinScore: 0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Found)
	assert.Equal(t, 2, stats.New)
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 1, stats.Alerted)

	// Both postings persisted, only the match alerted.
	require.Len(t, st.saved, 2)
	assert.True(t, st.alerted[strong.ID])
	assert.False(t, st.alerted[weak.ID])

	require.Len(t, rec.notifications, 1)
	require.Len(t, rec.notifications[0].Jobs, 1)
	assert.Equal(t, "Senior DevOps Engineer", rec.notifications[0].Jobs[0].Title)
	assert.Greater(t, rec.notifications[0].Jobs[0].MatchScore, 0.5)
}

func TestPipelineSkipsSeenPostings(t *testing.T) {
	seen := posting(source.BoardAdzuna, "1", "DevOps Engineer", "Kubernetes work.")

	st := newFakeStore()
	require.NoError(t, st.UpsertPosting(context.Background(), &seen))

	p := New(
		[]source.Board{&fakeBoard{name: source.BoardAdzuna, postings: []source.Posting{seen}}},
		st, testMatcher(), nil, nil,
	)

	stats, err := p.Run(context.Background(), Options{Keywords: []string{"devops"}, MinScore: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Found)
	assert.Equal(t, 0, stats.New)
	assert.Equal(t, 0, stats.Matched)
}

func TestPipelineBoardErrorIsNotFatal(t *testing.T) {
	good := posting(source.BoardAdzuna, "1", "DevOps Engineer",
		"Python, Kubernetes, Terraform, AWS platform work. 5+ years experience.")

	st := newFakeStore()
	p := New(
		[]source.Board{
			&fakeBoard{name: source.BoardReed, err: errors.New("blocked")},
			&fakeBoard{name: source.BoardAdzuna, postings: []source.Posting{good}},
		},
		st, testMatcher(), nil, nil,
	)

	stats, err := p.Run(context.Background(), Options{Keywords: []string{"devops"}, MinScore: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Found)
	assert.Equal(t, 1, stats.Matched)
}

func TestPipelineDeduplicatesAcrossQueries(t *testing.T) {
	dup := posting(source.BoardAdzuna, "1", "DevOps Engineer", "Kubernetes work.")

	st := newFakeStore()
	p := New(
		[]source.Board{&fakeBoard{name: source.BoardAdzuna, postings: []source.Posting{dup}}},
		st, testMatcher(), nil, nil,
	)

	// Two keyword queries hit the same board and return the same posting.
	stats, err := p.Run(context.Background(), Options{
		Keywords: []string{"devops engineer", "platform engineer"},
		MinScore: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Found)
}

func TestPipelineDesiredLocationFilter(t *testing.T) {
	london := posting(source.BoardAdzuna, "1", "DevOps Engineer", "Kubernetes work.")
	leeds := posting(source.BoardAdzuna, "2", "DevOps Engineer", "Kubernetes work.")
	leeds.Location = "Leeds, England"
	remote := posting(source.BoardAdzuna, "3", "DevOps Engineer", "Kubernetes work.")
	remote.Location = "Remote"

	st := newFakeStore()
	p := New(
		[]source.Board{&fakeBoard{name: source.BoardAdzuna, postings: []source.Posting{london, leeds, remote}}},
		st, testMatcher(), nil, nil,
	)

	stats, err := p.Run(context.Background(), Options{
		Keywords: []string{"devops"},
		Location: "London",
		MinScore: 0.5,
	})
	require.NoError(t, err)

	// London and Remote pass the desired-location check, Leeds does not.
	assert.Equal(t, 2, stats.Found)
}

func TestPipelineEuropeOnlyFilter(t *testing.T) {
	london := posting(source.BoardAdzuna, "1", "DevOps Engineer",
		"Python, Kubernetes, Terraform, AWS. 5+ years experience.")
	austin := posting(source.BoardAdzuna, "2", "DevOps Engineer",
		"Python, Kubernetes, Terraform, AWS. 5+ years experience.")
	austin.Location = "Austin, TX, USA"

	st := newFakeStore()
	p := New(
		[]source.Board{&fakeBoard{name: source.BoardAdzuna, postings: []source.Posting{london, austin}}},
		st, testMatcher(), nil, nil,
	)

	stats, err := p.Run(context.Background(), Options{
		Keywords:   []string{"devops"},
		EuropeOnly: true,
		MinScore:   0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Found)

	_, err = st.GetPosting(context.Background(), austin.ID)
	assert.Error(t, err)
}
