package metrics

import (
	"errors"
	"testing"

	"parcelhub/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	if out.Counter != nil {
		return out.Counter.GetValue()
	}
	return out.Gauge.GetValue()
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{errs.NewValueIsRequiredError("zone"), "validation"},
		{errs.NewTransitionIsNotAllowedError("SD0001", "BOOKED", "DELIVERED", "skips the hub"), "validation"},
		{errs.NewObjectNotFoundError("parcel", "x"), "not_found"},
		{errs.NewConflictError("parcel", "x", "parcel changed concurrently"), "conflict"},
		{errs.NewAmountMismatchError("PKR", decimal.NewFromInt(1000), decimal.NewFromInt(900)), "conflict"},
		{errs.NewUpstreamError("publish", errors.New("broker down")), "upstream"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}

func TestCountersAreRegistered(t *testing.T) {
	before := value(t, ParcelTransitionsTotal.WithLabelValues("DELIVERED"))
	ParcelTransitionsTotal.WithLabelValues("DELIVERED").Inc()
	assert.InDelta(t, before+1, value(t, ParcelTransitionsTotal.WithLabelValues("DELIVERED")), 0.0001)

	UnreconciledCODAmount.WithLabelValues("driver-1").Set(750)
	assert.InDelta(t, 750, value(t, UnreconciledCODAmount.WithLabelValues("driver-1")), 0.0001)
}
