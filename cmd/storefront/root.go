package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/storefront-cart/internal/cart"
	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/logging"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/render"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"io"
	"time"
)

// errNotified marks failures the Notifier already reported.
var errNotified = errors.New("reported to the shopper")

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool
	timeout    time.Duration

	cfg      *config.Config
	unit     currency.Unit
	logger   *zap.Logger
	notifier *render.Notifier
	renderer *render.CartRenderer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Flower shop cart in the terminal",
		Long: `storefront keeps a shopping cart across runs and places orders.

The cart lives in the configured key/value store (sqlite by default). Placed
orders are saved as JSON to a local folder, Google Cloud Storage or Google Drive.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "storefront.yaml", "config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 5*time.Minute, "overall command timeout")

	root.AddCommand(
		a.newCatalogCmd(),
		a.newCartCmd(),
		a.newCheckoutCmd(),
		a.newSignInCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return fmt.Errorf("currency %q: %w", cfg.Currency, err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development, a.verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.unit = unit
	a.logger = logger.With(zap.String("command", cmd.Name()))
	a.notifier = render.NewNotifier(a.out, a.logger)
	a.renderer = render.NewCartRenderer(unit)
	return nil
}

func (a *app) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

// openCart opens the backend and loads this run's cart. The returned func
// closes the backend.
func (a *app) openCart(ctx context.Context) (*cart.Store, func(), error) {
	kv, err := repository.Open(ctx, a.cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("repository.Open: %w", err)
	}

	store := cart.Open(ctx, kv,
		cart.WithKeyPrefix(a.cfg.Store.KeyPrefix),
		cart.WithLogger(a.logger),
	)

	closeFn := func() {
		if err := kv.Close(); err != nil {
			a.logger.Warn("failed to close store", zap.Error(err))
		}
	}
	return store, closeFn, nil
}

func (a *app) fail(message string, err error) error {
	a.notifier.Notify(port.NotifyError, message)
	return fmt.Errorf("%w: %w", errNotified, err)
}
