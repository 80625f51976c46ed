package main

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/catalog"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/render"
	"github.com/spf13/cobra"
)

func (a *app) newCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the cart",
	}

	cmd.AddCommand(
		a.newCartShowCmd(),
		a.newCartAddCmd(),
		a.newCartRemoveCmd(),
		a.newCartClearCmd(),
	)

	return cmd
}

func (a *app) newCartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			store, closeFn, err := a.openCart(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			return a.renderer.Render(a.out, store.Snapshot())
		},
	}
}

func (a *app) newCartAddCmd() *cobra.Command {
	var price int64

	cmd := &cobra.Command{
		Use:   "add [product]",
		Short: "Add a product to the cart",
		Long: `Adds one line for the product. The price comes from the catalog unless
--price is given, which also allows products outside the catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			name := args[0]
			priceSet := cmd.Flags().Changed("price")

			cat, err := catalog.Load(a.cfg.Catalog.Path)
			if err != nil {
				return err
			}
			if p, ok := cat.Lookup(name); ok {
				name = p.Name
				if !priceSet {
					price = p.Price
				}
			} else if !priceSet {
				return a.fail(fmt.Sprintf("%s is not in the catalog", name), fmt.Errorf("unknown product %q", name))
			}
			if price < 0 {
				return fmt.Errorf("price must not be negative, got %d", price)
			}

			store, closeFn, err := a.openCart(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			snapshot, err := store.AddItem(ctx, name, price)
			if err != nil {
				return fmt.Errorf("store.AddItem: %w", err)
			}

			a.notifier.Notify(port.NotifySuccess, render.MsgAdded(name))
			return a.renderer.Render(a.out, snapshot)
		},
	}

	cmd.Flags().Int64Var(&price, "price", 0, "price in whole currency units")

	return cmd
}

func (a *app) newCartRemoveCmd() *cobra.Command {
	var lineID string

	cmd := &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove one line from the cart",
		Long: `Removes the first line with the given name, or exactly the line with the
given id when --id is set.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("id") {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			byID := cmd.Flags().Changed("id")

			var id uuid.UUID
			if byID {
				parsed, err := uuid.Parse(lineID)
				if err != nil {
					return fmt.Errorf("invalid line id %q: %w", lineID, err)
				}
				id = parsed
			}

			store, closeFn, err := a.openCart(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			before := store.Snapshot()

			var (
				name     string
				snapshot domain.Snapshot
			)
			if byID {
				name = lineName(before, id)
				snapshot, err = store.RemoveLine(ctx, id)
			} else {
				name = args[0]
				snapshot, err = store.RemoveItem(ctx, name)
			}
			if err != nil {
				return fmt.Errorf("remove from cart: %w", err)
			}

			if snapshot.Count() == before.Count() {
				what := name
				if what == "" {
					what = lineID
				}
				a.notifier.Notify(port.NotifyInfo, fmt.Sprintf("%s is not in your cart", what))
			} else {
				a.notifier.Notify(port.NotifyInfo, render.MsgRemoved(name))
			}

			return a.renderer.Render(a.out, snapshot)
		},
	}

	cmd.Flags().StringVar(&lineID, "id", "", "line id shown by 'cart show'")

	return cmd
}

func lineName(snapshot domain.Snapshot, id uuid.UUID) string {
	for _, item := range snapshot.Items {
		if item.ID == id {
			return item.Name
		}
	}
	return ""
}

func (a *app) newCartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			store, closeFn, err := a.openCart(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			snapshot, err := store.Clear(ctx)
			if err != nil {
				return fmt.Errorf("store.Clear: %w", err)
			}

			a.notifier.Notify(port.NotifyInfo, "Cart cleared")
			return a.renderer.Render(a.out, snapshot)
		},
	}
}
