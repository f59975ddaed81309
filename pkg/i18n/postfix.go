package i18n

import (
	"strings"
	"unicode/utf8"
)

// IsTranslated reports whether title ends with the localized suffix of any
// registered language, e.g. "Installation guide (Русский)". Matching is
// exact and case sensitive.
func IsTranslated(title string) bool {
	for _, postfix := range postfixes {
		if strings.HasSuffix(title, postfix) {
			return true
		}
	}
	return false
}

// LanguageOf returns the language whose suffix title carries.
func LanguageOf(title string) (LanguageInfo, bool) {
	for i, postfix := range postfixes {
		if strings.HasSuffix(title, postfix) {
			return languages[i], true
		}
	}
	return LanguageInfo{}, false
}

// Localize appends the localized suffix of lang to an English title.
func Localize(title string, lang LanguageInfo) string {
	return title + " " + lang.Postfix()
}

// RemoveLanguagePostfix strips the localized suffix from a title or a
// "/"-separated subpage path. The suffix is picked by matching the whole
// input; for paths it is then cut from every segment, whether or not that
// segment carries it. Inputs without a suffix are returned unchanged.
func RemoveLanguagePostfix(pageOrTitle string) string {
	for _, postfix := range postfixes {
		if !strings.HasSuffix(pageOrTitle, postfix) {
			continue
		}

		segments := strings.Split(pageOrTitle, "/")
		if len(segments) <= 1 {
			return cutPostfix(pageOrTitle, postfix)
		}
		for i, segment := range segments {
			segments[i] = cutPostfix(segment, postfix)
		}
		return strings.Join(segments, "/")
	}

	return pageOrTitle
}

// cutPostfix drops the postfix and the separator in front of it, counting in
// characters. Targets shorter than that become empty. The kept prefix is
// sliced from target, so its bytes are returned as they were.
func cutPostfix(target, postfix string) string {
	i := len(target)
	for n := 1 + utf8.RuneCountInString(postfix); n > 0; n-- {
		if i == 0 {
			return ""
		}
		_, size := utf8.DecodeLastRuneInString(target[:i])
		i -= size
	}
	return target[:i]
}
