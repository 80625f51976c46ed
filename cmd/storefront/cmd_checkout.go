package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/storefront-cart/internal/checkout"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/export"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"io"
)

func (a *app) newCheckoutCmd() *cobra.Command {
	var form checkout.OrderForm

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place the order and save it to the export target",
		Long: `Places an order for everything in the cart. The order is saved as JSON to
the configured export target; the cart is emptied only when that succeeds.

Example:
  storefront checkout --name "Jane Doe" --email jane@example.com \
    --phone "+91 98765 43210" --address "12 MG Road, Bengaluru"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			store, closeFn, err := a.openCart(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			exporter, err := export.New(ctx, a.cfg.Export, a.in, a.out, a.logger)
			if err != nil {
				return fmt.Errorf("export.New: %w", err)
			}
			if c, ok := exporter.(io.Closer); ok {
				defer func() {
					if err := c.Close(); err != nil {
						a.logger.Warn("failed to close exporter", zap.Error(err))
					}
				}()
			}

			svc := checkout.NewService(store, exporter, checkout.WithLogger(a.logger))

			exportCtx, cancelExport := context.WithTimeout(ctx, a.cfg.GetExportTimeout())
			defer cancelExport()

			receipt, err := svc.Submit(exportCtx, form)
			return a.reportCheckout(svc.Target(), receipt, err, store.Snapshot())
		},
	}

	cmd.Flags().StringVar(&form.CustomerName, "name", "", "customer name")
	cmd.Flags().StringVar(&form.Email, "email", "", "customer email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "customer phone")
	cmd.Flags().StringVar(&form.Address, "address", "", "delivery address")

	return cmd
}

func (a *app) reportCheckout(target string, receipt checkout.Receipt, err error, after domain.Snapshot) error {
	var verr *checkout.ValidationError

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrEmptyCart):
		return a.fail(render.MsgEmptyCart, err)
	case errors.As(err, &verr):
		for _, f := range verr.Fields {
			a.logger.Debug("invalid checkout field", zap.String("field", f.Field), zap.String("rule", f.Rule))
		}
		return a.fail(render.MsgMissingFields, err)
	case errors.Is(err, domain.ErrExportFailed):
		return a.fail(render.MsgOrderNotSaved(target), err)
	case receipt.FileName != "":
		// exported, but the cart could not be emptied
		a.notifier.Notify(port.NotifySuccess, render.MsgOrderSaved(target))
		return a.fail("Your cart could not be emptied", err)
	default:
		return err
	}

	a.notifier.Notify(port.NotifySuccess, render.MsgOrderSaved(target))
	a.notifier.Notify(port.NotifyInfo, fmt.Sprintf("Order %s: %s", receipt.FileName, receipt.Location))
	return a.renderer.Render(a.out, after)
}
