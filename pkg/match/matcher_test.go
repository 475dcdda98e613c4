package match

import (
	"fmt"
	"testing"

	"github.com/jobtrawl/jobtrawl/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_Bounded(t *testing.T) {
	profiles := []Profile{
		{},
		{Skills: []string{"python"}},
		{Skills: []string{"python", "aws", "docker", "kubernetes", "terraform", "linux"},
			Keywords: []string{"cloud", "automation", "microservices", "security"}, ExperienceYears: 12},
	}
	postings := []source.Posting{
		{},
		{Title: "Python Developer"},
		{Title: "Senior Cloud Engineer", Company: "Acme", Snippet: "python aws docker kubernetes terraform linux",
			Description: "cloud automation microservices security, 3 years of experience"},
	}
	for pi, p := range profiles {
		m := New(p, DefaultConfig())
		for ji, j := range postings {
			res := m.Match(j)
			assert.GreaterOrEqual(t, res.Score, 0.0, "profile %d posting %d", pi, ji)
			assert.LessOrEqual(t, res.Score, 1.0, "profile %d posting %d", pi, ji)
		}
	}
}

func TestMatch_EmptyProfile(t *testing.T) {
	m := New(Profile{}, DefaultConfig())
	res := m.Match(source.Posting{Title: "DevOps Engineer", Description: "kubernetes and terraform"})

	assert.Empty(t, res.MatchedSkills)
	// Only the experience signal contributes: no stated requirement, so
	// 1.0 * 0.15.
	assert.InDelta(t, 0.15, res.Score, 1e-9)
}

func TestMatch_FloorGuarantee(t *testing.T) {
	m := New(Profile{Skills: []string{"python"}}, DefaultConfig())
	res := m.Match(source.Posting{Title: "Python Developer"})

	require.Equal(t, []string{"python"}, res.MatchedSkills)
	assert.GreaterOrEqual(t, res.Score, 0.20)

	// skillScore 0.35 (one match + high-value bonus) weighted 0.6 gives
	// 0.21, experience 0.15, title bonus 0.10, any-match bonus 0.15.
	assert.InDelta(t, 0.61, res.Score, 1e-9)
}

func TestMatch_SynonymEquivalence(t *testing.T) {
	m := New(Profile{Skills: []string{"k8s"}}, DefaultConfig())
	res := m.Match(source.Posting{Title: "Platform Engineer", Description: "kubernetes cluster operations"})
	assert.Equal(t, []string{"k8s"}, res.MatchedSkills)

	m = New(Profile{Skills: []string{"kubernetes"}}, DefaultConfig())
	res = m.Match(source.Posting{Title: "Platform Engineer", Description: "hands-on k8s work"})
	assert.Equal(t, []string{"kubernetes"}, res.MatchedSkills)
}

func TestMatch_ExperienceGating(t *testing.T) {
	weak := New(Profile{Skills: []string{"linux"}, ExperienceYears: 2}, DefaultConfig())
	strong := New(Profile{Skills: []string{"linux"}, ExperienceYears: 8}, DefaultConfig())
	posting := source.Posting{Title: "Sysadmin", Description: "linux estate, 5 years of experience required"}

	assert.Less(t, weak.Match(posting).Score, strong.Match(posting).Score)
}

func TestMatch_MonotonicInSkillCount(t *testing.T) {
	// Growing the matched-skill set never lowers the skill signal.
	skills := []string{"rubrik", "nagios", "nutanix", "sccm", "bitlocker", "forticlient", "veeam"}
	text := ""
	prev := -1.0
	for i := 1; i <= len(skills); i++ {
		text += " " + skills[i-1]
		m := New(Profile{Skills: skills}, DefaultConfig())
		score, matched := m.skillScore(text)
		require.Len(t, matched, i)
		assert.GreaterOrEqual(t, score, prev, "adding skill %d lowered the score", i)
		prev = score
	}
}

func TestMatch_Idempotent(t *testing.T) {
	m := New(Profile{
		Skills:          []string{"Python", "AWS", "Docker"},
		Keywords:        []string{"cloud", "automation"},
		ExperienceYears: 5,
	}, DefaultConfig())
	posting := source.Posting{
		Title:       "Cloud Engineer",
		Company:     "Initech",
		Snippet:     "python and aws automation",
		Description: "docker-based cloud platform, minimum 3 years",
	}

	first := m.Match(posting)
	for i := 0; i < 10; i++ {
		again := m.Match(posting)
		assert.Equal(t, first, again)
	}
}

func TestMatch_CaseInsensitive(t *testing.T) {
	lower := New(Profile{Skills: []string{"python"}, Keywords: []string{"cloud"}}, DefaultConfig())
	upper := New(Profile{Skills: []string{"PYTHON"}, Keywords: []string{"Cloud"}}, DefaultConfig())

	a := source.Posting{Title: "python engineer", Description: "cloud platform"}
	b := source.Posting{Title: "PYTHON Engineer", Description: "CLOUD Platform"}

	assert.Equal(t, lower.Match(a).Score, lower.Match(b).Score)
	assert.Equal(t, lower.Match(a).Score, upper.Match(a).Score)
}

func TestMatch_TitleBoost(t *testing.T) {
	cfg := DefaultConfig()
	m := New(Profile{Skills: []string{"python", "django", "aws"}}, cfg)

	// Three skills in the title: bonus 0.30 crosses the 0.20 threshold
	// and at least two skills matched, so the extra boost applies.
	boosted := m.Match(source.Posting{Title: "python django aws developer"})

	noBoost := New(Profile{Skills: []string{"python"}}, cfg).
		Match(source.Posting{Title: "python developer"})

	assert.Greater(t, boosted.Score, noBoost.Score)
	assert.LessOrEqual(t, boosted.Score, 1.0)
}

func TestMatch_TunableCaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnyMatchBonus = 0
	cfg.MatchFloor = 0
	cfg.TitleSkillBonus = 0
	cfg.TitleSkillBonusCap = 0
	cfg.TitleBoost = 0

	m := New(Profile{Skills: []string{"rubrik"}}, cfg)
	res := m.Match(source.Posting{Title: "Backup Administrator", Description: "rubrik appliance"})

	// With bonuses zeroed only the weighted base remains:
	// 0.30*0.6 + 1.0*0.15.
	assert.InDelta(t, 0.33, res.Score, 1e-9)
}

func TestNew_NormalizesAndDeduplicates(t *testing.T) {
	m := New(Profile{
		Skills:   []string{" Python ", "python", "(AWS)", ""},
		Keywords: []string{"Cloud", "cloud"},
	}, DefaultConfig())

	assert.Equal(t, []string{"python", "aws"}, m.profile.Skills)
	assert.Equal(t, []string{"cloud"}, m.profile.Keywords)
}

func ExampleMatcher_Match() {
	m := New(Profile{
		Skills:          []string{"python", "aws"},
		Keywords:        []string{"cloud"},
		ExperienceYears: 4,
	}, DefaultConfig())

	res := m.Match(source.Posting{
		Title:       "Python Engineer",
		Company:     "Example Ltd",
		Description: "cloud services on aws, minimum 3 years",
	})

	fmt.Println(len(res.MatchedSkills), res.Score > 0.5)
	// Output: 2 true
}
