package main

import (
	"github.com/nikolayk812/storefront-cart/internal/catalog"
	"github.com/nikolayk812/storefront-cart/internal/render"
	"github.com/spf13/cobra"
	"slices"
)

func (a *app) newCatalogCmd() *cobra.Command {
	var search, section string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List products, optionally filtered",
		Long: `Lists the products that can be added to the cart.

Example:
  storefront catalog --search rose
  storefront catalog --section fresh-picks`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(a.cfg.Catalog.Path)
			if err != nil {
				return err
			}

			products := cat.Filter(search)
			if section != "" {
				inSection := make(map[string]bool)
				for _, p := range cat.Section(section) {
					inSection[p.Name] = true
				}
				products = slices.DeleteFunc(products, func(p catalog.Product) bool {
					return !inSection[p.Name]
				})
			}

			return render.RenderProducts(a.out, products, a.unit)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&section, "section", "", "only products of this section")

	return cmd
}
