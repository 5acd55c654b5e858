package core

import "strings"

// Platform category names. The external provider's segment/genre taxonomy
// is folded onto this fixed set.
const (
	CategoryMusic         = "Music"
	CategorySports        = "Sports"
	CategoryArtsTheatre   = "Arts & Theatre"
	CategoryComedy        = "Comedy"
	CategoryFamily        = "Family"
	CategoryMiscellaneous = "Miscellaneous"
)

// categoryMapping binds a platform category to its canonical provider
// segment name and the genre keywords that imply it. The keyword lists are
// data; extending them must not change the dispatch order below.
type categoryMapping struct {
	category string
	segment  string
	keywords []string
}

var categoryMappings = []categoryMapping{
	{CategoryMusic, "Music", []string{
		"Rock", "Pop", "Classical", "Jazz", "Country", "Hip-Hop", "Electronic",
		"R&B", "Folk", "Alternative", "Metal", "Reggae", "Blues", "World",
	}},
	{CategorySports, "Sports", []string{
		"Football", "Basketball", "Baseball", "Hockey", "Soccer", "Tennis",
		"Golf", "Racing", "Boxing", "MMA",
	}},
	{CategoryArtsTheatre, "Arts & Theatre", []string{
		"Theatre", "Dance", "Opera", "Classical", "Ballet",
	}},
	{CategoryComedy, "Comedy", []string{"Comedy"}},
	{CategoryFamily, "Family", []string{"Family", "Children"}},
}

// NormalizeCategory maps a provider classification onto the platform
// category set. An exact segment name match wins over any genre keyword
// match; keywords are tried in dispatch order with substring semantics.
// Absent classification or no match falls back to Miscellaneous.
func NormalizeCategory(c *Classification) string {
	if c == nil {
		return CategoryMiscellaneous
	}
	for _, m := range categoryMappings {
		if c.Segment == m.segment {
			return m.category
		}
	}
	for _, m := range categoryMappings {
		for _, kw := range m.keywords {
			if strings.Contains(c.Genre, kw) {
				return m.category
			}
		}
	}
	return CategoryMiscellaneous
}

// SegmentForCategory is the exact inverse of the canonical segment names,
// used when constructing outbound provider queries. Unknown categories
// report false so callers can skip the classification filter entirely.
func SegmentForCategory(category string) (string, bool) {
	for _, m := range categoryMappings {
		if strings.EqualFold(category, m.category) {
			return m.segment, true
		}
	}
	return "", false
}
