package match

import "strings"

// Normalize canonicalizes a skill or keyword token: lower-case with
// surrounding whitespace and punctuation stripped. No stemming and no
// synonym rewriting; synonyms are a lookup consulted at match time so
// a term can match in either direction.
func Normalize(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	return strings.Trim(term, ".,;:!?()[]{}\"'`")
}

// synonyms maps short-form terms to their long-form spelling (and for a
// handful of pairs, the other way round too). The table is tuned for
// IT/cloud/ops vocabularies; it is a constant, not derived data.
var synonyms = map[string]string{
	"js":                          "javascript",
	"k8s":                         "kubernetes",
	"kubernetes":                  "k8s",
	"ml":                          "machine learning",
	"ai":                          "artificial intelligence",
	"ad":                          "active directory",
	"azure ad":                    "azure active directory",
	"o365":                        "office 365",
	"office 365":                  "o365",
	"m365":                        "microsoft 365",
	"microsoft 365":               "m365",
	"gcp":                         "google cloud platform",
	"google cloud":                "gcp",
	"aws":                         "amazon web services",
	"node":                        "node.js",
	"nodejs":                      "node.js",
	"react":                       "react.js",
	"vue":                         "vue.js",
	"angular":                     "angular.js",
	"postgres":                    "postgresql",
	"mysql":                       "mariadb",
	"sql server":                  "mssql",
	"mssql":                       "sql server",
	"windows":                     "windows server",
	"linux":                       "unix",
	"unix":                        "linux",
	"ci/cd":                       "continuous integration",
	"devops":                      "dev ops",
	"itil":                        "it service management",
	"sccm":                        "system center configuration manager",
	"exchange":                    "microsoft exchange",
	"dns":                         "domain name system",
	"dhcp":                        "dynamic host configuration protocol",
	"vpn":                         "virtual private network",
	"mfa":                         "multi-factor authentication",
	"multi-factor authentication": "mfa",
}
