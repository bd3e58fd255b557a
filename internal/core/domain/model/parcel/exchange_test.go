package parcel_test

import (
	"testing"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exchangeOrder() parcel.ExchangeOrder {
	return parcel.ExchangeOrder{
		OrderRef:        "ORD-1-X",
		ItemDescription: "kurta (size L)",
		CODAmount:       d("500"),
		ReturnItems:     []parcel.ReturnItem{{Name: "kurta (size M)", Quantity: 1}},
	}
}

func newPair(t *testing.T, c cast) (*parcel.Parcel, parcel.ExchangePair) {
	t.Helper()
	original := book(t, c, "2000")
	deliver(t, c, original)

	q, err := c.brand.Quote(d("0.7"))
	require.NoError(t, err)
	pair, err := parcel.NewExchangePair(original, c.brand, exchangeOrder(), q, "SD0777", as(c.brand), now)
	require.NoError(t, err)
	return original, pair
}

func TestNewExchangePair(t *testing.T) {
	c := newCast(t)
	original, pair := newPair(t, c)
	out, ret := pair.Outbound, pair.Return

	assert.Equal(t, parcel.Booked, out.Status())
	assert.True(t, out.IsExchange())
	assert.True(t, out.CODAmount().Equal(d("500")))
	assert.True(t, out.DeliveryCharge().Equal(original.DeliveryCharge()))
	assert.Equal(t, original.Recipient(), out.Recipient())

	assert.Equal(t, parcel.PendingExchangePickup, ret.Status())
	assert.True(t, ret.CODAmount().IsZero())
	assert.True(t, ret.IsCODReconciled())
	assert.Equal(t, parcel.TrackingNumber("RTN-SD0777"), ret.TrackingNumber())
	assert.Equal(t, "Acme Apparel", ret.Recipient().Name)
	assert.Equal(t, "12 Mall Road", ret.Recipient().Address)
	assert.Len(t, ret.ReturnItems(), 1)

	assert.True(t, ret.ID().IsEqualPtr(out.LinkedParcelID()))
	assert.True(t, out.ID().IsEqualPtr(ret.LinkedParcelID()))
	assertHistoryMatchesStatus(t, out)
	assertHistoryMatchesStatus(t, ret)
}

func TestNewExchangePair_Validation(t *testing.T) {
	c := newCast(t)
	q, err := c.brand.Quote(d("0.7"))
	require.NoError(t, err)

	t.Run("original must be delivered", func(t *testing.T) {
		p := book(t, c, "100")
		_, err := parcel.NewExchangePair(p, c.brand, exchangeOrder(), q, "SD0777", as(c.brand), now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("return items are required with positive quantities", func(t *testing.T) {
		p := book(t, c, "100")
		deliver(t, c, p)

		o := exchangeOrder()
		o.ReturnItems = nil
		_, err := parcel.NewExchangePair(p, c.brand, o, q, "SD0777", as(c.brand), now)
		require.ErrorIs(t, err, parcel.ErrReturnItemsAreRequired)

		o.ReturnItems = []parcel.ReturnItem{{Name: "shirt", Quantity: 0}}
		_, err = parcel.NewExchangePair(p, c.brand, o, q, "SD0777", as(c.brand), now)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCompleteExchange(t *testing.T) {
	c := newCast(t)
	_, pair := newPair(t, c)
	out, ret := pair.Outbound, pair.Return

	t.Run("outbound cannot be delivered by a single transition", func(t *testing.T) {
		advance(t, c, out)
		err := out.Transition(parcel.Delivered, as(c.driver), parcel.TransitionDetails{}, now)
		require.ErrorIs(t, err, errs.ErrTransitionIsNotAllowed)
		assert.Equal(t, parcel.OutForDelivery, out.Status())
	})

	t.Run("return leg cannot be picked up by a single transition", func(t *testing.T) {
		err := ret.Transition(parcel.PickedUp, as(c.driver), parcel.TransitionDetails{}, now)
		require.ErrorIs(t, err, errs.ErrTransitionIsNotAllowed)
	})

	t.Run("other drivers cannot complete", func(t *testing.T) {
		err := parcel.CompleteExchange(out, ret, as(c.driver2), "", now)
		require.ErrorIs(t, err, errs.ErrTransitionIsNotAllowed)
		assert.Equal(t, parcel.OutForDelivery, out.Status())
		assert.Equal(t, parcel.PendingExchangePickup, ret.Status())
	})

	t.Run("completion moves both legs", func(t *testing.T) {
		require.NoError(t, parcel.CompleteExchange(out, ret, as(c.driver), "old item checked", now))

		assert.Equal(t, parcel.Delivered, out.Status())
		assert.Equal(t, parcel.PickedUp, ret.Status())
		assert.True(t, c.driver.ID().IsEqualPtr(ret.PickupDriverID()))
		assert.Contains(t, out.LastEvent().Notes, "delivered & exchange collected")
		assertHistoryMatchesStatus(t, out)
		assertHistoryMatchesStatus(t, ret)
	})

	t.Run("completion is not repeatable", func(t *testing.T) {
		err := parcel.CompleteExchange(out, ret, as(c.driver), "", now)
		require.ErrorIs(t, err, errs.ErrTransitionIsNotAllowed)
	})

	t.Run("return leg is delivered back to the brand", func(t *testing.T) {
		require.NoError(t, ret.Transition(parcel.AtHub, as(c.warehouse), parcel.TransitionDetails{Zone: "Gulberg"}, now))
		require.NoError(t, ret.Transition(parcel.OutForDelivery, as(c.warehouse), parcel.TransitionDetails{Driver: c.driver}, now))
		require.NoError(t, ret.Transition(parcel.Delivered, as(c.driver), parcel.TransitionDetails{}, now))

		assert.Equal(t, parcel.Delivered, ret.Status())
		assertHistoryMatchesStatus(t, ret)
	})

	t.Run("exchange legs cannot be deleted", func(t *testing.T) {
		require.Error(t, ret.EnsureDeletable(as(c.admin)))
	})
}
