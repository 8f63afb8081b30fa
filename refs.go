package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRefsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refs",
		Short: "List the reference collections (categories, subcategories, stores)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.browser.LoadAll(cmd.Context()); err != nil {
				// Collections that did load are still worth printing.
				fmt.Fprintln(os.Stderr, "Warning: some collections failed to load")
			}
			refs := a.browser.References()

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

			fmt.Fprintln(tw, "CATEGORIES")
			if len(refs.Categories) == 0 {
				fmt.Fprintln(tw, "  (none — create a category first)")
			}
			for _, c := range refs.Categories {
				fmt.Fprintf(tw, "  %d\t%s\n", c.ID, c.Name)
			}

			fmt.Fprintln(tw, "SUBCATEGORIES")
			if len(refs.SubCategories) == 0 {
				fmt.Fprintln(tw, "  (none — create a subcategory first)")
			}
			for _, sc := range refs.SubCategories {
				fmt.Fprintf(tw, "  %d\t%s\t(category %d)\n", sc.ID, sc.Name, sc.CategoryID)
			}

			fmt.Fprintln(tw, "STORES")
			if len(refs.Stores) == 0 {
				fmt.Fprintln(tw, "  (none — create a store first)")
			}
			for _, s := range refs.Stores {
				fmt.Fprintf(tw, "  %s\t%s\n", s.ID, s.Name)
			}

			return tw.Flush()
		},
	}
}
