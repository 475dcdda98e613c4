// Package profile extracts a candidate profile (skills, keywords and
// years of experience) from a resume file or a public LinkedIn page.
package profile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jobtrawl/jobtrawl/pkg/match"
)

// Candidate is the structured result of profile extraction.
type Candidate struct {
	Skills          []string
	Keywords        []string
	Roles           []string
	ExperienceYears int
}

// MatchProfile converts the candidate into the scoring engine's profile.
func (c *Candidate) MatchProfile() match.Profile {
	return match.Profile{
		Skills:          c.Skills,
		Keywords:        c.Keywords,
		ExperienceYears: c.ExperienceYears,
	}
}

// AddSkills merges extra manually configured skills into the candidate.
func (c *Candidate) AddSkills(skills ...string) {
	c.Skills = mergeTerms(c.Skills, skills)
	c.Keywords = mergeTerms(c.Keywords, skills)
}

// AddKeywords merges extra manually configured keywords.
func (c *Candidate) AddKeywords(keywords ...string) {
	c.Keywords = mergeTerms(c.Keywords, keywords)
}

func mergeTerms(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[t] = struct{}{}
	}
	out := existing
	for _, t := range extra {
		t = match.Normalize(t)
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

// skillPatterns match known technologies anywhere in the profile text.
var skillPatterns = []*regexp.Regexp{
	// Programming languages.
	regexp.MustCompile(`(?i)\b(?:Python|Java|JavaScript|TypeScript|C\+\+|C#|Go|Rust|Ruby|PHP|Swift|Kotlin|PowerShell|Bash)\b`),
	// Web frameworks.
	regexp.MustCompile(`(?i)\b(?:React|Vue|Angular|Node\.js|Express|Django|Flask|Spring|Laravel)\b`),
	// Cloud platforms and virtualization.
	regexp.MustCompile(`(?i)\b(?:AWS|Azure|GCP|Google Cloud|Hyper-V|VMware|VDI|O365|Office 365)\b`),
	// Containers and IaC.
	regexp.MustCompile(`(?i)\b(?:Docker|Kubernetes|K8s|Terraform|Ansible|Infrastructure as Code|IaC)\b`),
	// Databases.
	regexp.MustCompile(`(?i)\b(?:PostgreSQL|MySQL|MongoDB|Redis|Elasticsearch|Azure SQL|SQL Server|SQL)\b`),
	// DevOps and service management tooling.
	regexp.MustCompile(`(?i)\b(?:Git|Jenkins|CI/CD|DevOps|Agile|Scrum|SAFe|Jira|Confluence|ServiceNow|ITIL)\b`),
	// Operating systems.
	regexp.MustCompile(`(?i)\b(?:Linux|Unix|Windows Server|Windows|CentOS|Ubuntu|macOS)\b`),
	// Directory, messaging and endpoint estate.
	regexp.MustCompile(`(?i)\b(?:Active Directory|Azure AD|Exchange|SCCM|System Center|Group Policy|Nutanix|Rubrik)\b`),
	// Networking.
	regexp.MustCompile(`(?i)\b(?:DNS|DHCP|Load Balancing|Load Balancer|VPN|Firewall|Application Gateway|FortiClient|Fortinet)\b`),
	// Security.
	regexp.MustCompile(`(?i)\b(?:MFA|Multi-Factor Authentication|BitLocker|Identity Management|IAM|Encryption)\b`),
	// Monitoring, backup and storage.
	regexp.MustCompile(`(?i)\b(?:Nagios|Disaster Recovery|RTO|RPO|SLA|SAN|NAS)\b`),
}

// specificTechs are looked up as plain substrings, catching mentions the
// boundary patterns miss (inside compounds, tables, bullet lists).
var specificTechs = []string{
	"active directory", "azure ad", "azure sql", "vmware", "hyper-v", "nutanix",
	"rubrik", "nagios", "sccm", "exchange", "dns", "dhcp", "mfa", "vpn", "bitlocker",
	"servicenow", "jira", "confluence", "itil", "o365", "office 365", "forticlient",
	"windows server", "centos", "ubuntu", "linux", "powershell", "bash",
}

// industryKeywords capture broader domain terms used by the keyword signal.
var industryKeywords = []string{
	"cloud", "microservices", "api", "rest", "graphql",
	"distributed systems", "scalability", "performance",
	"security", "testing", "automation", "monitoring",
	"big data", "analytics", "full stack", "backend", "frontend",
}

// skillSectionRe pulls the body of CORE COMPETENCIES / Skills /
// Technologies sections so listed skills are caught even when no pattern
// knows them.
var skillSectionRe = regexp.MustCompile(`(?is)(?:CORE COMPETENCIES|Skills?|Technologies|Expertise|Competencies)[:]\s*(.+?)(?:\n\n|\n[A-Z][A-Z]+\s|$)`)

var skillDelimiterRe = regexp.MustCompile(`[,;•\-\n\r|]`)

var stopWords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {}, "on": {}, "in": {}, "to": {},
}

var rolePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Senior\s*)?(?:Software\s*)?(?:Engineer|Developer|Programmer)`),
	regexp.MustCompile(`(?i)(?:DevOps|SRE|Site Reliability) Engineer`),
	regexp.MustCompile(`(?i)(?:Infrastructure|Systems?|Cloud) (?:Engineer|Administrator)`),
	regexp.MustCompile(`(?i)(?:Product|Project|Technical) Manager`),
	regexp.MustCompile(`(?i)Architect`),
}

var experienceYearsRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`)

// Extract builds a Candidate from free profile text. It is the shared
// back half of both the resume and LinkedIn front ends.
func Extract(text string) *Candidate {
	c := &Candidate{}
	lower := strings.ToLower(text)

	skills := make(map[string]struct{})
	for _, re := range skillPatterns {
		for _, m := range re.FindAllString(text, -1) {
			if s := match.Normalize(m); s != "" {
				skills[s] = struct{}{}
			}
		}
	}
	for _, tech := range specificTechs {
		if strings.Contains(lower, tech) {
			skills[tech] = struct{}{}
		}
	}
	for _, section := range skillSectionRe.FindAllStringSubmatch(text, -1) {
		for _, raw := range skillDelimiterRe.Split(section[1], -1) {
			s := match.Normalize(raw)
			if len(s) <= 2 {
				continue
			}
			if _, stop := stopWords[s]; stop {
				continue
			}
			skills[s] = struct{}{}
		}
	}
	c.Skills = sortedTerms(skills)

	keywords := make(map[string]struct{}, len(skills))
	for _, kw := range industryKeywords {
		if strings.Contains(lower, kw) {
			keywords[kw] = struct{}{}
		}
	}
	for s := range skills {
		keywords[s] = struct{}{}
	}
	c.Keywords = sortedTerms(keywords)

	if sub := experienceYearsRe.FindStringSubmatch(text); sub != nil {
		c.ExperienceYears, _ = strconv.Atoi(sub[1])
	}

	roles := make(map[string]struct{})
	for _, re := range rolePatterns {
		for _, m := range re.FindAllString(text, -1) {
			roles[strings.TrimSpace(m)] = struct{}{}
		}
	}
	c.Roles = sortedTerms(roles)

	return c
}

func sortedTerms(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
