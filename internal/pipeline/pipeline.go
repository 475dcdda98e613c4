package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobtrawl/jobtrawl/internal/store"
	"github.com/jobtrawl/jobtrawl/pkg/alert"
	"github.com/jobtrawl/jobtrawl/pkg/match"
	"github.com/jobtrawl/jobtrawl/pkg/source"
)

// Options controls a pipeline run.
type Options struct {
	Keywords      []string
	Location      string
	EuropeOnly    bool
	MaxResults    int
	MinScore      float64
	FetchDetails  bool
	DetailWorkers int
}

// Stats summarizes a pipeline run.
type Stats struct {
	Found   int
	New     int
	Matched int
	Alerted int
}

// Pipeline runs one trawl: search all boards, drop postings already
// seen, score the rest against the candidate, persist everything and
// alert on matches.
type Pipeline struct {
	boards   []source.Board
	store    store.Store
	matcher  *match.Matcher
	alertMgr *alert.Manager
	details  *source.DetailFetcher
	filter   *source.LocationFilter
	log      *zap.Logger
}

// New creates a pipeline.
func New(
	boards []source.Board,
	st store.Store,
	matcher *match.Matcher,
	alertMgr *alert.Manager,
	log *zap.Logger,
) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		boards:   boards,
		store:    st,
		matcher:  matcher,
		alertMgr: alertMgr,
		details:  source.NewDetailFetcher(),
		filter:   source.NewLocationFilter(false),
		log:      log,
	}
}

// Run executes one full trawl with the given options.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Stats, error) {
	p.filter = source.NewLocationFilter(opts.EuropeOnly)

	found, err := p.searchAll(ctx, opts)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Found: len(found)}

	fresh := p.dropSeen(ctx, found)
	stats.New = len(fresh)
	p.log.Info("trawl searched",
		zap.Int("found", stats.Found),
		zap.Int("new", stats.New))

	if opts.FetchDetails {
		p.fetchDetails(ctx, fresh, opts.DetailWorkers)
	}

	var matched []source.Posting
	for i := range fresh {
		posting := &fresh[i]
		result := p.matcher.Match(*posting)
		posting.MatchScore = result.Score
		posting.MatchedSkills = result.MatchedSkills

		if err := p.store.UpsertPosting(ctx, posting); err != nil {
			p.log.Warn("store posting failed", zap.String("id", posting.ID), zap.Error(err))
			continue
		}

		if posting.MatchScore >= opts.MinScore {
			matched = append(matched, *posting)
		}
	}
	stats.Matched = len(matched)

	if len(matched) > 0 && p.alertMgr != nil && p.alertMgr.HasNotifiers() {
		n := &alert.Notification{Subject: "New job matches", Jobs: matched}
		if err := p.alertMgr.Broadcast(ctx, n); err != nil {
			p.log.Warn("alert broadcast failed", zap.Error(err))
		} else {
			ids := make([]string, len(matched))
			for i, m := range matched {
				ids[i] = m.ID
			}
			if err := p.store.MarkAlerted(ctx, ids); err != nil {
				p.log.Warn("mark alerted failed", zap.Error(err))
			} else {
				stats.Alerted = len(ids)
			}
		}
	}

	p.log.Info("trawl finished",
		zap.Int("found", stats.Found),
		zap.Int("new", stats.New),
		zap.Int("matched", stats.Matched),
		zap.Int("alerted", stats.Alerted))
	return stats, nil
}

// searchAll fans out every keyword query to every board concurrently.
// A failing board is logged and skipped, not fatal.
func (p *Pipeline) searchAll(ctx context.Context, opts Options) ([]source.Posting, error) {
	var mu sync.Mutex
	var all []source.Posting

	g, gctx := errgroup.WithContext(ctx)
	for _, board := range p.boards {
		for _, kw := range opts.Keywords {
			board, kw := board, kw
			g.Go(func() error {
				q := source.Query{
					Keywords:   kw,
					Location:   opts.Location,
					MaxResults: opts.MaxResults,
				}
				postings, err := board.Search(gctx, q)
				if err != nil {
					p.log.Warn("board search failed",
						zap.String("board", string(board.Name())),
						zap.String("keywords", kw),
						zap.Error(err))
					return nil
				}
				p.log.Debug("board searched",
					zap.String("board", string(board.Name())),
					zap.String("keywords", kw),
					zap.Int("postings", len(postings)))

				mu.Lock()
				all = append(all, postings...)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return p.dedupe(all, opts.Location), nil
}

// dedupe drops postings with repeated IDs and postings outside the
// allowed location footprint or away from the desired location.
func (p *Pipeline) dedupe(postings []source.Posting, desired string) []source.Posting {
	seen := make(map[string]bool, len(postings))
	out := postings[:0]
	for _, posting := range postings {
		if seen[posting.ID] {
			continue
		}
		seen[posting.ID] = true
		if posting.Location != "" {
			if !p.filter.IsAllowed(posting.Location) {
				continue
			}
			if desired != "" && !source.LocationMatches(desired, posting.Location) {
				continue
			}
		}
		out = append(out, posting)
	}
	return out
}

// dropSeen removes postings already present in the store.
func (p *Pipeline) dropSeen(ctx context.Context, postings []source.Posting) []source.Posting {
	out := postings[:0]
	for _, posting := range postings {
		seen, err := p.store.Seen(ctx, posting.ID)
		if err != nil {
			p.log.Warn("seen check failed", zap.String("id", posting.ID), zap.Error(err))
			continue
		}
		if !seen {
			out = append(out, posting)
		}
	}
	return out
}

// fetchDetails loads full descriptions with a bounded worker pool,
// preserving posting order.
func (p *Pipeline) fetchDetails(ctx context.Context, postings []source.Posting, workers int) {
	if workers <= 0 {
		workers = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range postings {
		i := i
		g.Go(func() error {
			if err := p.details.FetchDescription(gctx, &postings[i]); err != nil {
				p.log.Debug("detail fetch failed",
					zap.String("id", postings[i].ID),
					zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
