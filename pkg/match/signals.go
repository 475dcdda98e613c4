package match

import (
	"regexp"
	"strconv"
	"strings"
)

// highValueSkills are core technologies weighted above ordinary skills.
var highValueSkills = map[string]struct{}{
	"aws": {}, "azure": {}, "gcp": {}, "google cloud": {}, "docker": {},
	"kubernetes": {}, "k8s": {}, "terraform": {}, "ansible": {},
	"python": {}, "java": {}, "javascript": {}, "typescript": {},
	"react": {}, "node.js": {}, "devops": {}, "ci/cd": {}, "linux": {},
	"windows server": {}, "active directory": {}, "azure ad": {},
	"postgresql": {}, "mysql": {}, "mongodb": {}, "jenkins": {},
	"git": {}, "agile": {}, "scrum": {}, "itil": {}, "servicenow": {},
	"jira": {},
}

// skillScore maps the number of matched profile skills onto a hand-tuned
// staircase, then adds a bonus for matches on high-value technologies.
// Returns the score and the list of matched skills.
func (m *Matcher) skillScore(postingText string) (float64, []string) {
	if len(m.profile.Skills) == 0 {
		return 0.0, nil
	}

	var matched []string
	for _, skill := range m.profile.Skills {
		if strings.Contains(postingText, skill) || IsPresent(skill, postingText) {
			matched = append(matched, skill)
		}
	}
	if len(matched) == 0 {
		return 0.0, nil
	}

	var score float64
	switch n := len(matched); {
	case n == 1:
		score = 0.30
	case n == 2:
		score = 0.50
	case n == 3:
		score = 0.65
	default:
		score = 0.75 + minFloat(0.20, float64(n-4)*0.05)
	}

	highValue := 0
	for _, skill := range matched {
		if _, ok := highValueSkills[skill]; ok {
			highValue++
		}
	}
	if highValue > 0 {
		score = minFloat(1.0, score+minFloat(0.15, float64(highValue)*0.05))
	}

	return score, matched
}

// keywordScore counts keywords present by plain substring containment.
// No fuzzy fallback: keywords are broader domain terms where a loose
// match would over-fire.
func (m *Matcher) keywordScore(postingText string) float64 {
	if len(m.profile.Keywords) == 0 {
		return 0.0
	}

	count := 0
	for _, kw := range m.profile.Keywords {
		if strings.Contains(postingText, kw) {
			count++
		}
	}

	switch {
	case count == 0:
		return 0.0
	case count == 1:
		return 0.30
	case count == 2:
		return 0.50
	default:
		return 0.70 + minFloat(0.20, float64(count-3)*0.05)
	}
}

var (
	yearsExperienceRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`)
	minimumYearsRe    = regexp.MustCompile(`(?i)(?:minimum|min|at least)\s*(\d+)\s*(?:years?|yrs?)`)
)

// experienceScore compares the candidate's years against a requirement
// scanned out of the posting text. An unstated requirement counts as
// satisfied.
func experienceScore(postingText string, candidateYears int) float64 {
	required := 0
	for _, re := range []*regexp.Regexp{yearsExperienceRe, minimumYearsRe} {
		if sub := re.FindStringSubmatch(postingText); sub != nil {
			required, _ = strconv.Atoi(sub[1])
			break
		}
	}

	switch {
	case required == 0:
		return 1.0
	case candidateYears >= required:
		return 1.0
	case float64(candidateYears) >= float64(required)*0.7:
		return 0.7
	default:
		return 0.3
	}
}

// titleBonus rewards skills and keywords appearing in the title itself,
// which signal relevance far more strongly than body mentions. Clamping
// of the total happens in Match.
func (m *Matcher) titleBonus(title string) float64 {
	if title == "" {
		return 0.0
	}

	skillHits := 0
	for _, skill := range m.profile.Skills {
		if strings.Contains(title, skill) {
			skillHits++
		}
	}
	keywordHits := 0
	for _, kw := range m.profile.Keywords {
		if strings.Contains(title, kw) {
			keywordHits++
		}
	}

	bonus := 0.0
	if skillHits > 0 {
		bonus += minFloat(m.cfg.TitleSkillBonusCap, float64(skillHits)*m.cfg.TitleSkillBonus)
	}
	if keywordHits > 0 {
		bonus += minFloat(m.cfg.TitleKeywordBonusCap, float64(keywordHits)*m.cfg.TitleKeywordBonus)
	}
	return bonus
}

// skillCountBonus rewards breadth of matched skills on a fixed ladder.
func skillCountBonus(matched int) float64 {
	switch {
	case matched >= 5:
		return 0.20
	case matched >= 3:
		return 0.15
	case matched >= 2:
		return 0.10
	default:
		return 0.0
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
