package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/RobinCoderZhao/archtranslator/pkg/i18n"
)

// TitleInput is the input of the title tools.
type TitleInput struct {
	Title string `json:"title" jsonschema:"wiki page title or subpage path"`
}

// IsTranslatedResult is the output of is_translated.
type IsTranslatedResult struct {
	Translated  bool   `json:"translated"`
	LanguageKey string `json:"language_key,omitempty"`
}

// StripResult is the output of remove_language_postfix.
type StripResult struct {
	Title string `json:"title"`
}

// LanguageInput is the input of language_info.
type LanguageInput struct {
	Key string `json:"key" jsonschema:"registry key such as Russian or ChineseSimplified"`
}

// LanguageResult describes one language.
type LanguageResult struct {
	Key           string `json:"key"`
	EnglishName   string `json:"english_name"`
	LocalizedName string `json:"localized_name"`
	Subtag        string `json:"subtag,omitempty"`
	Postfix       string `json:"postfix"`
}

// ListLanguagesInput is the input of list_languages.
type ListLanguagesInput struct {
	Sorted bool `json:"sorted,omitempty" jsonschema:"sort by English name instead of registry order"`
}

// ListLanguagesResult is the output of list_languages.
type ListLanguagesResult struct {
	Languages []i18n.LanguageInfo `json:"languages"`
}

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "is_translated",
		Description: "Reports whether a wiki title ends with a localized language suffix such as (Русский)",
	}, isTranslatedHandler)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_language_postfix",
		Description: "Strips the localized language suffix from a title or every segment of a subpage path",
	}, stripHandler)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "language_info",
		Description: "Looks up a language of the wiki by its registry key",
	}, languageHandler)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_languages",
		Description: "Lists every language the wiki translates into",
	}, listLanguagesHandler)
}

func isTranslatedHandler(_ context.Context, _ *mcp.CallToolRequest, input TitleInput) (*mcp.CallToolResult, IsTranslatedResult, error) {
	lang, ok := i18n.LanguageOf(input.Title)
	return nil, IsTranslatedResult{Translated: ok, LanguageKey: lang.Key}, nil
}

func stripHandler(_ context.Context, _ *mcp.CallToolRequest, input TitleInput) (*mcp.CallToolResult, StripResult, error) {
	return nil, StripResult{Title: i18n.RemoveLanguagePostfix(input.Title)}, nil
}

func languageHandler(_ context.Context, _ *mcp.CallToolRequest, input LanguageInput) (*mcp.CallToolResult, LanguageResult, error) {
	lang, err := i18n.Get(input.Key)
	if err != nil {
		return nil, LanguageResult{}, err
	}
	return nil, LanguageResult{
		Key:           lang.Key,
		EnglishName:   lang.EnglishName,
		LocalizedName: lang.LocalizedName,
		Subtag:        lang.Subtag,
		Postfix:       lang.Postfix(),
	}, nil
}

func listLanguagesHandler(_ context.Context, _ *mcp.CallToolRequest, input ListLanguagesInput) (*mcp.CallToolResult, ListLanguagesResult, error) {
	langs := i18n.Languages()
	if input.Sorted {
		langs = i18n.SortedByEnglishName()
	}
	return nil, ListLanguagesResult{Languages: langs}, nil
}
