// Package checkout turns the current cart into a placed order and hands it
// to the configured export service.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"time"
)

type CartStore interface {
	Snapshot() domain.Snapshot
	Clear(ctx context.Context) (domain.Snapshot, error)
}

type Receipt struct {
	Order    domain.Order
	FileName string
	Location string
}

type Service struct {
	store    CartStore
	exporter port.OrderExporter
	validate *validator.Validate
	logger   *zap.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

func NewService(store CartStore, exporter port.OrderExporter, opts ...Option) *Service {
	s := &Service{
		store:    store,
		exporter: exporter,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   zap.NewNop(),
		tracer:   otel.Tracer("github.com/nikolayk812/storefront-cart/internal/checkout"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Target names the export destination for user facing messages.
func (s *Service) Target() string {
	return s.exporter.Name()
}

// Submit places the order. The cart is cleared only after the export
// succeeded; on domain.ErrExportFailed it is left intact for a retry.
func (s *Service) Submit(ctx context.Context, form OrderForm) (_ Receipt, err error) {
	ctx, span := s.tracer.Start(ctx, "checkout.Submit")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	snapshot := s.store.Snapshot()
	if snapshot.IsEmpty() {
		return Receipt{}, domain.ErrEmptyCart
	}

	form = form.trimmed()
	if err := validateForm(s.validate, form); err != nil {
		return Receipt{}, err
	}

	placedAt := s.now()
	order := domain.NewOrder(form.CustomerName, form.Email, form.Phone, form.Address, snapshot, placedAt)
	fileName := FileName(form.CustomerName, placedAt)

	span.SetAttributes(
		attribute.Int("order.items", len(order.Items)),
		attribute.Int64("order.total", order.Total),
		attribute.String("order.file", fileName),
	)

	body, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return Receipt{}, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	location, err := s.exporter.Export(ctx, fileName, body)
	if err != nil {
		s.logger.Error("order export failed",
			zap.String("file", fileName), zap.String("target", s.exporter.Name()), zap.Error(err))
		return Receipt{}, fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}

	receipt := Receipt{Order: order, FileName: fileName, Location: location}
	s.logger.Info("order exported",
		zap.String("file", fileName), zap.String("location", location), zap.Int64("total", order.Total))

	if _, err := s.store.Clear(ctx); err != nil {
		return receipt, fmt.Errorf("store.Clear: %w", err)
	}

	return receipt, nil
}
