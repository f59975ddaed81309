// Package i18n holds the registry of wiki languages and the helpers that
// recognize translated article titles by their localized language suffix.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrNotFound is matched by errors returned from Get for unknown keys.
var ErrNotFound = errors.New("language not found")

// NotFoundError reports an invalid language key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("invalid language key: %s", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// LanguageInfo describes one language of the wiki.
type LanguageInfo struct {
	Key           string `json:"key" yaml:"key"`
	EnglishName   string `json:"english_name" yaml:"english_name"`
	LocalizedName string `json:"localized_name" yaml:"localized_name"`
	Subtag        string `json:"subtag,omitempty" yaml:"subtag,omitempty"` // empty when the wiki has no subtag for it
}

// HasSubtag reports whether the language takes part in subtag lookups.
func (l LanguageInfo) HasSubtag() bool {
	return l.Subtag != ""
}

// Postfix returns the title suffix used by articles in this language.
func (l LanguageInfo) Postfix() string {
	return "(" + l.LocalizedName + ")"
}

func newLanguage(subtag, englishName, localizedName string, customKey ...string) LanguageInfo {
	key := englishName
	if len(customKey) > 0 {
		key = customKey[0]
	}
	return LanguageInfo{
		Key:           key,
		EnglishName:   englishName,
		LocalizedName: localizedName,
		Subtag:        subtag,
	}
}

// languages is in declaration order; suffix matching walks it front to back.
var languages = []LanguageInfo{
	newLanguage("ar", "Arabic", "العربية"),
	newLanguage("", "Bangla", "বাংলা"),
	newLanguage("bs", "Bosnian", "Bosanski"),
	newLanguage("bg", "Bulgarian", "Български"),
	newLanguage("", "Cantonese", "粵語"),
	newLanguage("ca", "Catalan", "Català"),
	newLanguage("", "Chinese (Classical)", "文言文", "ChineseClassical"),
	newLanguage("zh-hans", "Chinese (Simplified)", "简体中文", "ChineseSimplified"),
	newLanguage("zh-hant", "Chinese (Traditional)", "正體中文", "ChineseTraditional"),
	newLanguage("hr", "Croatian", "Hrvatski"),
	newLanguage("cs", "Czech", "Čeština"),
	newLanguage("da", "Danish", "Dansk"),
	newLanguage("nl", "Dutch", "Nederlands"),
	newLanguage("en", "English", "English"),
	newLanguage("", "Esperanto", "Esperanto"),
	newLanguage("fi", "Finnish", "Suomi"),
	newLanguage("fr", "French", "Français"),
	newLanguage("de", "German", "Deutsch"),
	newLanguage("el", "Greek", "Ελληνικά"),
	newLanguage("he", "Heberew", "עברית", "Hebrew"),
	newLanguage("hu", "Hungarian", "Magyar"),
	newLanguage("id", "Indonesian", "Bahasa Indonesia"),
	newLanguage("it", "Italian", "Italiano"),
	newLanguage("ja", "Japanese", "日本語"),
	newLanguage("ko", "Korean", "한국어"),
	newLanguage("lt", "Lithuanian", "Lietuvių"),
	newLanguage("", "Norwegian (Bokmål)", "Norsk Bokmål", "NorwegianBokmal"),
	newLanguage("pl", "Polish", "Polski"),
	newLanguage("pt", "Portuguese", "Português"),
	newLanguage("", "Romanian", "Română"),
	newLanguage("ru", "Russian", "Русский"),
	newLanguage("sr", "Serbian", "Српски (Srpski)"),
	newLanguage("sk", "Slovak", "Slovenčina"),
	newLanguage("es", "Spanish", "Español"),
	newLanguage("sv", "Swedish", "Svenska"),
	newLanguage("th", "Thai", "ไทย"),
	newLanguage("tr", "Turkish", "Türkçe"),
	newLanguage("uk", "Ukrainian", "Українська"),
	newLanguage("", "Vietnamese", "Tiếng Việt"),
	newLanguage("", "Quechua", "Runa simi"),
}

var (
	byKey       = make(map[string]int, len(languages))
	bySubtag    = make(map[string]int, len(languages))
	postfixes   []string
	validSubtag []string
)

func init() {
	for i, l := range languages {
		byKey[l.Key] = i
		postfixes = append(postfixes, l.Postfix())
		if l.HasSubtag() {
			bySubtag[l.Subtag] = i
			validSubtag = append(validSubtag, l.Subtag)
		}
	}
}

// Languages returns every registered language in declaration order.
func Languages() []LanguageInfo {
	out := make([]LanguageInfo, len(languages))
	copy(out, languages)
	return out
}

// Get looks up a language by its exact key.
func Get(key string) (LanguageInfo, error) {
	i, ok := byKey[key]
	if !ok {
		return LanguageInfo{}, &NotFoundError{Key: key}
	}
	return languages[i], nil
}

// MustGet is Get for keys known at compile time. It panics on unknown keys.
func MustGet(key string) LanguageInfo {
	l, err := Get(key)
	if err != nil {
		panic(err)
	}
	return l
}

// LocalizedPostfixes returns the "(LocalizedName)" suffix of every language,
// in registry order.
func LocalizedPostfixes() []string {
	out := make([]string, len(postfixes))
	copy(out, postfixes)
	return out
}

// ValidSubtags returns the subtags of all languages that have one.
func ValidSubtags() []string {
	out := make([]string, len(validSubtag))
	copy(out, validSubtag)
	return out
}

// BySubtag finds the language using the given subtag.
func BySubtag(subtag string) (LanguageInfo, bool) {
	i, ok := bySubtag[subtag]
	if !ok {
		return LanguageInfo{}, false
	}
	return languages[i], true
}

// IsValidSubtag checks if a subtag belongs to a registered language.
func IsValidSubtag(subtag string) bool {
	_, ok := bySubtag[subtag]
	return ok
}

// ParseSubtags splits a comma-separated subtag list and resolves each entry.
// Unknown subtags are dropped; an empty result falls back to English.
func ParseSubtags(s string) []LanguageInfo {
	var langs []LanguageInfo
	for _, p := range strings.Split(s, ",") {
		if l, ok := BySubtag(strings.TrimSpace(p)); ok {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		return []LanguageInfo{MustGet("English")}
	}
	return langs
}

// Validate reports duplicate keys, localized names or subtags and
// malformed subtags in the registry.
func Validate() error {
	return validate(languages)
}

func validate(langs []LanguageInfo) error {
	keys := make(map[string]bool, len(langs))
	names := make(map[string]bool, len(langs))
	subtags := make(map[string]bool, len(langs))

	var errs []error
	for _, l := range langs {
		if l.Key == "" {
			errs = append(errs, fmt.Errorf("language %q has an empty key", l.EnglishName))
		}
		if keys[l.Key] {
			errs = append(errs, fmt.Errorf("duplicate language key %q", l.Key))
		}
		keys[l.Key] = true

		if names[l.LocalizedName] {
			errs = append(errs, fmt.Errorf("duplicate localized name %q (%s)", l.LocalizedName, l.Key))
		}
		names[l.LocalizedName] = true

		if !l.HasSubtag() {
			continue
		}
		if subtags[l.Subtag] {
			errs = append(errs, fmt.Errorf("duplicate subtag %q (%s)", l.Subtag, l.Key))
		}
		subtags[l.Subtag] = true
		if _, err := language.Parse(l.Subtag); err != nil {
			errs = append(errs, fmt.Errorf("malformed subtag %q (%s): %w", l.Subtag, l.Key, err))
		}
	}
	return errors.Join(errs...)
}
