package i18n

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DisplayName returns the CLDR English name of the language's subtag,
// or "" when the language has no subtag.
func (l LanguageInfo) DisplayName() string {
	if !l.HasSubtag() {
		return ""
	}
	tag, err := language.Parse(l.Subtag)
	if err != nil {
		return ""
	}
	return display.English.Tags().Name(tag)
}

// SortedByEnglishName returns the registry ordered by English name.
func SortedByEnglishName() []LanguageInfo {
	langs := Languages()
	c := collate.New(language.English)
	sort.SliceStable(langs, func(i, j int) bool {
		return c.CompareString(langs[i].EnglishName, langs[j].EnglishName) < 0
	})
	return langs
}
