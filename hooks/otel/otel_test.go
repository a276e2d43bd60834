package otelhook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, r *sdkmetric.ManualReader) map[string]metricdata.Sum[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, r.Collect(context.Background(), &rm))
	out := map[string]metricdata.Sum[int64]{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if s, ok := m.Data.(metricdata.Sum[int64]); ok {
				out[m.Name] = s
			}
		}
	}
	return out
}

func total(s metricdata.Sum[int64]) int64 {
	var n int64
	for _, dp := range s.DataPoints {
		n += dp.Value
	}
	return n
}

func TestCountersRecordEvents(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	h, err := New(mp.Meter("test"))
	require.NoError(t, err)

	h.ValueRejected("set", "k1")
	h.ValueRejected("mset", "k2")
	h.ValueRejected("set", "k3")
	h.StoreError("get", errors.New("down"))
	h.DecodeError("k", errors.New("corrupt"))
	h.WrapSetFailed("k", errors.New("down"))
	h.WrapSetFailed("k", errors.New("down"))

	got := collect(t, reader)
	assert.Equal(t, int64(3), total(got[RejectedName]))
	assert.Equal(t, int64(1), total(got[StoreErrorsName]))
	assert.Equal(t, int64(1), total(got[DecodeErrorsName]))
	assert.Equal(t, int64(2), total(got[WrapFailuresName]))

	bySet := int64(0)
	for _, dp := range got[RejectedName].DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key("op")); ok && v.AsString() == "set" {
			bySet = dp.Value
		}
	}
	assert.Equal(t, int64(2), bySet)
}

func TestNewRejectsNilMeter(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
