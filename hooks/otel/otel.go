// Package otelhook counts cachestore hook events as OpenTelemetry metrics.
//
//	hooks, err := otelhook.New(otel.GetMeterProvider().Meter("cachestore"))
//	store, _ := cachestore.New(cachestore.Options{Provider: p, Hooks: hooks})
package otelhook

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/unkn0wn-root/cachestore"
)

// Metric names.
const (
	RejectedName     = "cachestore.rejected"
	StoreErrorsName  = "cachestore.store_errors"
	DecodeErrorsName = "cachestore.decode_errors"
	WrapFailuresName = "cachestore.wrap_set_failures"
)

type Hooks struct {
	rejected     metric.Int64Counter
	storeErrors  metric.Int64Counter
	decodeErrors metric.Int64Counter
	wrapFailures metric.Int64Counter
}

var _ cachestore.Hooks = (*Hooks)(nil)

// New registers the counters on meter. Keys are never recorded as attributes.
func New(meter metric.Meter) (*Hooks, error) {
	if meter == nil {
		return nil, errors.New("otelhook: nil meter")
	}
	var (
		h   Hooks
		err error
	)
	if h.rejected, err = meter.Int64Counter(RejectedName,
		metric.WithDescription("Values refused by the cacheability policy."),
		metric.WithUnit("{value}")); err != nil {
		return nil, err
	}
	if h.storeErrors, err = meter.Int64Counter(StoreErrorsName,
		metric.WithDescription("Failed store commands."),
		metric.WithUnit("{error}")); err != nil {
		return nil, err
	}
	if h.decodeErrors, err = meter.Int64Counter(DecodeErrorsName,
		metric.WithDescription("Stored entries that could not be decoded."),
		metric.WithUnit("{error}")); err != nil {
		return nil, err
	}
	if h.wrapFailures, err = meter.Int64Counter(WrapFailuresName,
		metric.WithDescription("Wrap results returned without being cached."),
		metric.WithUnit("{value}")); err != nil {
		return nil, err
	}
	return &h, nil
}

func (h *Hooks) ValueRejected(op, _ string) {
	h.rejected.Add(context.Background(), 1, metric.WithAttributes(attribute.String("op", op)))
}

func (h *Hooks) StoreError(op string, _ error) {
	h.storeErrors.Add(context.Background(), 1, metric.WithAttributes(attribute.String("op", op)))
}

func (h *Hooks) DecodeError(string, error) {
	h.decodeErrors.Add(context.Background(), 1)
}

func (h *Hooks) WrapSetFailed(string, error) {
	h.wrapFailures.Add(context.Background(), 1)
}
