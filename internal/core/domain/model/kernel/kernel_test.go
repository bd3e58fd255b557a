package kernel_test

import (
	"testing"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("new uuid is valid and unique", func(t *testing.T) {
		a, b := kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, a.Validate())
		assert.False(t, a.IsEqual(b))
	})

	t.Run("round trips through string and bytes", func(t *testing.T) {
		id := kernel.NewUUID()

		fromString, err := kernel.UUIDFromString(id.String())
		require.NoError(t, err)
		assert.True(t, id.IsEqual(fromString))

		raw := id.Bytes()
		fromBytes, err := kernel.UUIDFromBytes(raw[:])
		require.NoError(t, err)
		assert.True(t, id.IsEqual(fromBytes))
	})

	t.Run("rejects nil and malformed input", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = kernel.UUIDFromString("not-a-uuid")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		var zero kernel.UUID
		require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("parses lists", func(t *testing.T) {
		a, b := kernel.NewUUID(), kernel.NewUUID()
		ids, err := kernel.UUIDsFromStrings([]string{a.String(), b.String()})
		require.NoError(t, err)
		assert.Len(t, ids, 2)

		_, err = kernel.UUIDsFromStrings([]string{a.String(), "bad"})
		require.Error(t, err)
	})

	t.Run("pointer comparison", func(t *testing.T) {
		id := kernel.NewUUID()
		same := id
		assert.True(t, id.IsEqualPtr(&same))
		assert.False(t, id.IsEqualPtr(nil))
	})
}

func TestGeoPoint(t *testing.T) {
	p, err := kernel.NewGeoPoint(31.5204, 74.3587)
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.InDelta(t, 31.5204, p.Lat(), 1e-9)
	assert.InDelta(t, 74.3587, p.Lng(), 1e-9)

	_, err = kernel.NewGeoPoint(91, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = kernel.NewGeoPoint(0, -181)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	var zero kernel.GeoPoint
	require.Error(t, zero.Validate())
}

func TestAmountsMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		entered  string
		match    bool
	}{
		{"exact", "1000", "1000", true},
		{"within tolerance", "1000", "1000.009", true},
		{"at tolerance", "1000", "1000.01", false},
		{"short by ten", "1000", "990", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kernel.AmountsMatch(decimal.RequireFromString(tt.expected), decimal.RequireFromString(tt.entered))
			assert.Equal(t, tt.match, got)
		})
	}
}

func TestSumAndFormat(t *testing.T) {
	total := kernel.SumAmounts(decimal.NewFromInt(500), decimal.NewFromInt(300), decimal.NewFromInt(200))
	assert.Equal(t, "PKR 1000.00", kernel.FormatMoney(total))
	assert.True(t, kernel.SumAmounts().IsZero())
}
