// ArchTranslator — helper CLI for ArchWiki translators
//
// Usage:
//
//	archtranslator check "Pacman (Русский)"    # is the title translated?
//	archtranslator strip "Pacman (Русский)"    # English title of a translation
//	archtranslator langs                       # supported languages
//	archtranslator translated Pacman -l German # translations of a page's links
//	archtranslator record Pacman               # refresh the page cache
//	archtranslator mcp                         # serve the title tools over MCP stdio
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	atconfig "github.com/RobinCoderZhao/archtranslator/internal/config"
	"github.com/RobinCoderZhao/archtranslator/pkg/i18n"
	"github.com/RobinCoderZhao/archtranslator/pkg/mcpserver"
)

var version = "dev"

type globalFlags struct {
	configPath string
	verbose    bool
}

// configAnnotation marks commands that read the config file. Other commands
// run on defaults, so a broken config file does not get in their way.
const configAnnotation = "archtranslator/config"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags
	cfg := atconfig.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:           "archtranslator",
		Short:         "Helper CLI for ArchWiki translators",
		Long:          "ArchTranslator recognizes translated article titles, caches page metadata and lists the translated counterparts of the links on a page.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if needsConfig(cmd) {
				loaded, err := atconfig.Load(flags.configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}

			level := cfg.Level()
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default .archtranslator.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(stripCmd())
	rootCmd.AddCommand(langCmd())
	rootCmd.AddCommand(langsCmd())
	rootCmd.AddCommand(withConfig(translatedCmd(&cfg)))
	rootCmd.AddCommand(withConfig(recordCmd(&cfg)))
	rootCmd.AddCommand(withConfig(cacheCmd(&cfg)))
	rootCmd.AddCommand(mcpCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func withConfig(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[configAnnotation] = "true"
	return cmd
}

// needsConfig reports whether cmd or one of its parents reads the config.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[configAnnotation] == "true" {
			return true
		}
	}
	return false
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <title>...",
		Short: "Report whether titles carry a localized language suffix",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, title := range args {
				if lang, ok := i18n.LanguageOf(title); ok {
					fmt.Fprintf(out, "%s\ttranslated (%s)\n", title, lang.Key)
				} else {
					fmt.Fprintf(out, "%s\tnot translated\n", title)
				}
			}
		},
	}
}

func stripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip <title>...",
		Short: "Remove the localized language suffix from titles",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, title := range args {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.RemoveLanguagePostfix(title))
			}
		},
	}
}

func langCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "lang <key>",
		Short: "Show one language of the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := i18n.Get(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if outputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(lang)
			}
			subtag := lang.Subtag
			if subtag == "" {
				subtag = "-"
			}
			fmt.Fprintf(out, "Key:        %s\n", lang.Key)
			fmt.Fprintf(out, "English:    %s\n", lang.EnglishName)
			fmt.Fprintf(out, "Localized:  %s\n", lang.LocalizedName)
			fmt.Fprintf(out, "Subtag:     %s\n", subtag)
			fmt.Fprintf(out, "Postfix:    %s\n", lang.Postfix())
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output JSON")
	return cmd
}

func langsCmd() *cobra.Command {
	var check, sorted bool

	cmd := &cobra.Command{
		Use:   "langs",
		Short: "List supported languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if check {
				if err := i18n.Validate(); err != nil {
					return fmt.Errorf("registry is invalid:\n%w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ %d languages, %d subtags, registry is valid\n",
					len(i18n.Languages()), len(i18n.ValidSubtags()))
				return nil
			}

			langs := i18n.Languages()
			if sorted {
				langs = i18n.SortedByEnglishName()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tSUBTAG\tENGLISH\tLOCALIZED\tCLDR NAME")
			for _, l := range langs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.Key, dash(l.Subtag), l.EnglishName, l.LocalizedName, dash(l.DisplayName()))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "validate the registry instead of listing")
	cmd.Flags().BoolVar(&sorted, "sort", false, "sort by English name")
	return cmd
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the title tools as an MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return mcpserver.New(version).RunStdio(ctx)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "archtranslator %s\n", version)
		},
	}
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
