package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/RobinCoderZhao/archtranslator/internal/cache"
	atconfig "github.com/RobinCoderZhao/archtranslator/internal/config"
	"github.com/RobinCoderZhao/archtranslator/internal/render"
	"github.com/RobinCoderZhao/archtranslator/internal/translated"
	"github.com/RobinCoderZhao/archtranslator/pkg/i18n"
	"github.com/RobinCoderZhao/archtranslator/pkg/wiki"
)

func translatedCmd(cfg *atconfig.Config) *cobra.Command {
	var (
		langKey    string
		outputHTML bool
		outputJSON bool
		rendered   bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "translated <page>",
		Short: "List the translations of the links on an English page",
		Long:  "Collects the article links of an English page and reports, for the chosen language, which localized articles exist, which links are redirects and which translations are missing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			lang, err := targetLanguage(langKey, cfg)
			if err != nil {
				return err
			}

			title := args[0]
			if i18n.IsTranslated(title) {
				slog.Info("page is a translation, using its English original", "page", title)
				title = i18n.RemoveLanguagePostfix(title)
			}

			client := wiki.NewClient(cfg.Wiki)

			var lookup translated.PageLookup = translated.RemoteLookup{Source: client}
			if !noCache {
				store, err := cache.Open(ctx, cfg.Cache)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				defer store.Close()
				lookup = translated.NewCachedLookup(client, store)
			}
			resolver := translated.NewResolver(lookup)

			var result *translated.Result
			if rendered {
				page, err := client.Rendered(ctx, title)
				if err != nil {
					return err
				}
				result, err = resolver.Resolve(ctx, page.Links, lang)
				if err != nil {
					return err
				}
			} else {
				content, err := client.PageContent(ctx, title)
				if err != nil {
					return err
				}
				result, err = resolver.ResolveContent(ctx, content, lang)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			switch {
			case outputJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			case outputHTML:
				table, err := render.HTMLTable(result)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, table)
				return err
			default:
				return render.Text(out, result)
			}
		},
	}

	cmd.Flags().StringVarP(&langKey, "lang", "l", "", "language key (default from config)")
	cmd.Flags().BoolVar(&outputHTML, "html", false, "output the localized articles HTML table")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output JSON")
	cmd.Flags().BoolVar(&rendered, "rendered", false, "take links from the rendered page instead of its wikitext")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "query the wiki for every page, bypassing the cache")
	cmd.MarkFlagsMutuallyExclusive("html", "json")
	return cmd
}

// targetLanguage resolves the --lang flag, falling back to the configured
// language.
func targetLanguage(flagKey string, cfg *atconfig.Config) (i18n.LanguageInfo, error) {
	key := flagKey
	if key == "" {
		key = cfg.Language
	}
	return i18n.Get(key)
}

func recordCmd(cfg *atconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "record <page>...",
		Short: "Fetch pages and store their metadata in the cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			store, err := cache.Open(ctx, cfg.Cache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			client := wiki.NewClient(cfg.Wiki)
			recorder := cache.NewRecorder(store)

			for _, title := range args {
				info, err := client.PageInfo(ctx, title)
				if err != nil {
					return err
				}

				var content string
				if info.IsRedirect {
					if content, err = client.PageContent(ctx, title); err != nil {
						return err
					}
				}

				cached, err := recorder.RecordPage(ctx, *info, content)
				if err != nil {
					return err
				}
				printPageInfo(cmd, cached)
			}
			return nil
		},
	}
}
