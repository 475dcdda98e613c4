package source

import (
	"regexp"
	"strings"
)

var ukIndicators = []string{
	"uk", "united kingdom", "england", "scotland", "wales", "northern ireland",
	"london", "manchester", "birmingham", "edinburgh", "glasgow", "bristol",
	"leeds", "liverpool", "newcastle", "sheffield", "cardiff", "belfast",
	"cambridge", "oxford", "brighton", "york", "nottingham", "leicester",
}

var euCountries = []string{
	"austria", "vienna", "belgium", "brussels", "bulgaria", "sofia",
	"croatia", "zagreb", "cyprus", "nicosia", "czech republic", "prague",
	"denmark", "copenhagen", "estonia", "tallinn", "finland", "helsinki",
	"france", "paris", "lyon", "marseille", "toulouse", "nice", "nantes",
	"germany", "berlin", "munich", "hamburg", "frankfurt", "cologne", "stuttgart",
	"greece", "athens", "thessaloniki", "hungary", "budapest", "ireland", "dublin",
	"italy", "rome", "milan", "naples", "turin", "palermo", "genoa", "bologna",
	"latvia", "riga", "lithuania", "vilnius", "luxembourg", "malta", "valletta",
	"netherlands", "amsterdam", "rotterdam", "the hague", "utrecht", "eindhoven",
	"poland", "warsaw", "krakow", "gdansk", "wroclaw", "portugal", "lisbon", "porto",
	"romania", "bucharest", "cluj", "timisoara", "slovakia", "bratislava",
	"slovenia", "ljubljana", "spain", "madrid", "barcelona", "valencia", "seville",
	"zaragoza", "malaga", "sweden", "stockholm", "gothenburg", "malmo",
}

var europeIndicators = []string{"europe", "european", "eea", "schengen"}

var euCountryCodes = map[string]bool{
	"at": true, "be": true, "bg": true, "hr": true, "cy": true, "cz": true,
	"dk": true, "ee": true, "fi": true, "fr": true, "de": true, "gr": true,
	"hu": true, "ie": true, "it": true, "lv": true, "lt": true, "lu": true,
	"mt": true, "nl": true, "pl": true, "pt": true, "ro": true, "sk": true,
	"si": true, "es": true, "se": true, "gb": true, "uk": true, "eu": true,
}

var nonEuropean = []string{
	"usa", "united states", "u.s.", "america", "american",
	"canada", "mexico", "brazil", "argentina", "chile", "colombia",
	"india", "china", "japan", "south korea", "singapore", "hong kong",
	"australia", "new zealand", "south africa", "nigeria", "egypt",
	"uae", "dubai", "saudi arabia", "israel", "turkey", "russia",
	"bangladesh", "pakistan", "philippines", "indonesia", "vietnam",
	"thailand", "malaysia", "taiwan",
}

var locationWordRe = regexp.MustCompile(`\b\w+\b`)

// LocationFilter decides whether posting locations fall inside the
// UK/EU footprint and whether they match a desired location.
type LocationFilter struct {
	europeOnly bool
}

// NewLocationFilter creates a location filter. When europeOnly is set,
// IsAllowed rejects anything not recognisably in the UK or EU.
func NewLocationFilter(europeOnly bool) *LocationFilter {
	return &LocationFilter{europeOnly: europeOnly}
}

// IsAllowed reports whether the location passes the filter. Unknown
// locations are rejected when europeOnly is set.
func (f *LocationFilter) IsAllowed(location string) bool {
	if !f.europeOnly {
		return true
	}
	return IsEuropean(location)
}

// IsEuropean reports whether a free-form location string names a place
// in the UK or EU. Empty and unrecognised locations return false.
func IsEuropean(location string) bool {
	if location == "" {
		return false
	}
	loc := strings.ToLower(location)

	for _, ind := range nonEuropean {
		if strings.Contains(loc, ind) {
			return false
		}
	}

	for _, ind := range ukIndicators {
		if strings.Contains(loc, ind) {
			return true
		}
	}
	for _, country := range euCountries {
		if strings.Contains(loc, country) {
			return true
		}
	}
	for _, ind := range europeIndicators {
		if strings.Contains(loc, ind) {
			return true
		}
	}

	// 2-letter country codes have to stand alone as words.
	for _, word := range strings.Fields(loc) {
		clean := strings.Trim(word, ".,;:!?()[]{}")
		if len(clean) == 2 && euCountryCodes[clean] {
			return true
		}
	}

	return false
}

var locationStopWords = map[string]bool{
	"or": true, "and": true, "the": true, "a": true, "an": true,
	"in": true, "at": true, "on": true, "for": true,
}

// LocationMatches reports whether a posting's location satisfies the
// desired location. Remote on either side always matches; otherwise
// any shared location word counts.
func LocationMatches(desired, actual string) bool {
	desiredLower := strings.ToLower(desired)
	actualLower := strings.ToLower(actual)

	if strings.Contains(desiredLower, "remote") || strings.Contains(actualLower, "remote") {
		return true
	}

	desiredWords := locationWords(desiredLower)
	actualWords := locationWords(actualLower)
	if len(desiredWords) == 0 || len(actualWords) == 0 {
		return false
	}

	for w := range desiredWords {
		if actualWords[w] {
			return true
		}
	}
	return false
}

func locationWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range locationWordRe.FindAllString(s, -1) {
		if !locationStopWords[w] {
			words[w] = true
		}
	}
	return words
}
