// Package match scores job postings against a candidate profile.
//
// The scorer is deterministic and rule-based: three independent signals
// (skills, keywords, experience) are combined with fixed weights, then
// bonuses for title matches and match breadth are stacked on top and the
// result is clamped to [0,1]. A Matcher is pure and stateless per call;
// it never mutates its profile, so one Matcher may score postings from
// many goroutines concurrently with no synchronization.
package match

import (
	"math"
	"strings"

	"github.com/jobtrawl/jobtrawl/pkg/source"
)

// Profile is the candidate side of a match: normalized skill and keyword
// sets plus years of experience. Zero years means unknown, not entry
// level. A Profile is immutable once handed to New.
type Profile struct {
	Skills          []string
	Keywords        []string
	ExperienceYears int
}

// Result is the outcome of scoring one posting.
type Result struct {
	Score         float64
	MatchedSkills []string
}

// Config holds the combination weights and bonus caps. The base weights
// intentionally sum to 0.95: the remaining headroom is reserved for
// bonuses, so a posting with partial signals but strong title matches
// can still reach 1.0.
type Config struct {
	SkillWeight      float64
	KeywordWeight    float64
	ExperienceWeight float64

	TitleSkillBonus      float64 // per skill appearing in the title
	TitleSkillBonusCap   float64
	TitleKeywordBonus    float64 // per keyword appearing in the title
	TitleKeywordBonusCap float64

	AnyMatchBonus       float64 // flat bonus for any skill/keyword signal
	MatchFloor          float64 // minimum score once any signal exists
	TitleBoost          float64 // extra boost for strong title + breadth
	TitleBoostThreshold float64 // title bonus required for the boost
}

// DefaultConfig returns the tuned scoring parameters.
func DefaultConfig() Config {
	return Config{
		SkillWeight:      0.60,
		KeywordWeight:    0.20,
		ExperienceWeight: 0.15,

		TitleSkillBonus:      0.10,
		TitleSkillBonusCap:   0.30,
		TitleKeywordBonus:    0.08,
		TitleKeywordBonusCap: 0.20,

		AnyMatchBonus:       0.15,
		MatchFloor:          0.20,
		TitleBoost:          0.10,
		TitleBoostThreshold: 0.20,
	}
}

// Matcher scores postings against one candidate profile.
type Matcher struct {
	profile Profile
	cfg     Config
}

// New builds a Matcher for the given profile. Skills and keywords are
// normalized and deduplicated into private copies, so later mutation of
// the caller's slices cannot affect scoring.
func New(p Profile, cfg Config) *Matcher {
	return &Matcher{
		profile: Profile{
			Skills:          normalizeSet(p.Skills),
			Keywords:        normalizeSet(p.Keywords),
			ExperienceYears: p.ExperienceYears,
		},
		cfg: cfg,
	}
}

// Match scores a single posting. It is total over its input domain:
// empty or missing text fields degrade the score toward zero, they never
// produce an error.
func (m *Matcher) Match(p source.Posting) Result {
	postingText := lowerJoin(p.Title, p.Company, p.Snippet, p.Description)
	title := strings.ToLower(p.Title)

	skillScore, matched := m.skillScore(postingText)
	keywordScore := m.keywordScore(postingText)
	expScore := experienceScore(lowerJoin(p.Title, p.Snippet, p.Description), m.profile.ExperienceYears)
	titleBonus := m.titleBonus(title)

	anyMatch := 0.0
	if len(matched) > 0 || keywordScore > 0 {
		anyMatch = m.cfg.AnyMatchBonus
	}

	base := skillScore*m.cfg.SkillWeight +
		keywordScore*m.cfg.KeywordWeight +
		expScore*m.cfg.ExperienceWeight

	score := math.Min(1.0, base+titleBonus+anyMatch+skillCountBonus(len(matched)))

	// Any relevance signal guarantees a visible, non-trivial score.
	if len(matched) > 0 || keywordScore > 0 {
		score = math.Max(score, m.cfg.MatchFloor)
	}

	if titleBonus > m.cfg.TitleBoostThreshold && len(matched) >= 2 {
		score = math.Min(1.0, score+m.cfg.TitleBoost)
	}

	return Result{Score: score, MatchedSkills: matched}
}

func normalizeSet(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = Normalize(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func lowerJoin(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}
