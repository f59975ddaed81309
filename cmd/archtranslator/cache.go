package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RobinCoderZhao/archtranslator/internal/cache"
	atconfig "github.com/RobinCoderZhao/archtranslator/internal/config"
	"github.com/RobinCoderZhao/archtranslator/pkg/wiki"
)

func cacheCmd(cfg *atconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and edit the page-info cache",
	}

	withStore := func(run func(cmd *cobra.Command, store *cache.Store, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			store, err := cache.Open(cmd.Context(), cfg.Cache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()
			return run(cmd, store, args)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <page>",
		Short: "Show the cached info of a page",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, store *cache.Store, args []string) error {
			info, err := store.Get(cmd.Context(), wiki.TitleToPageName(args[0]))
			if err != nil {
				return err
			}
			printPageInfo(cmd, info)
			return nil
		}),
	})

	var redirectsTo string
	var revision int64
	put := &cobra.Command{
		Use:   "put <page> <english|translated|redirect>",
		Short: "Store page info by hand",
		Args:  cobra.ExactArgs(2),
		RunE: withStore(func(cmd *cobra.Command, store *cache.Store, args []string) error {
			info := cache.PageInfo{
				PageName:         wiki.TitleToPageName(args[0]),
				LatestRevisionID: revision,
				Type:             cache.PageType(args[1]),
				RedirectsTo:      redirectsTo,
			}
			if info.Type == cache.Redirect && info.RedirectsTo == "" {
				return fmt.Errorf("redirect pages need --to")
			}
			if err := store.Set(cmd.Context(), info); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ cached %s\n", info.PageName)
			return nil
		}),
	}
	put.Flags().StringVar(&redirectsTo, "to", "", "redirect target")
	put.Flags().Int64Var(&revision, "revision", 0, "latest revision id")
	cmd.AddCommand(put)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <page>...",
		Short: "Remove pages from the cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, store *cache.Store, args []string) error {
			for _, title := range args {
				if err := store.Delete(cmd.Context(), wiki.TitleToPageName(title)); err != nil {
					return err
				}
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Count cached pages",
		RunE: withStore(func(cmd *cobra.Command, store *cache.Store, args []string) error {
			n, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(n))
			return nil
		}),
	})

	var listType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List cached pages",
		RunE: withStore(func(cmd *cobra.Command, store *cache.Store, args []string) error {
			t := cache.PageType(listType)
			if t != "" && !t.Valid() {
				return fmt.Errorf("unknown page type %q", listType)
			}
			infos, err := store.List(cmd.Context(), t)
			if err != nil {
				return err
			}
			for i := range infos {
				printPageInfo(cmd, &infos[i])
			}
			return nil
		}),
	}
	list.Flags().StringVar(&listType, "type", "", "only pages of this type")
	cmd.AddCommand(list)

	return cmd
}

func printPageInfo(cmd *cobra.Command, info *cache.PageInfo) {
	line := fmt.Sprintf("%s\t%s\trev %d", info.PageName, info.Type, info.LatestRevisionID)
	if info.RedirectsTo != "" {
		line += "\t-> " + info.RedirectsTo
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
}
