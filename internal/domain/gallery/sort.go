package gallery

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NaturalSort orders s in place, comparing digit runs by numeric value.
// A collator is not safe for concurrent use, so each call builds its own.
func NaturalSort(s []string) {
	c := collate.New(language.Japanese, collate.Numeric)
	sort.SliceStable(s, func(i, j int) bool {
		if cmp := c.CompareString(s[i], s[j]); cmp != 0 {
			return cmp < 0
		}
		return s[i] < s[j]
	})
}
