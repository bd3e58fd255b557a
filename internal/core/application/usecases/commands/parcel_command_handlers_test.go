package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func exchangeOrder() parcel.ExchangeOrder {
	return parcel.ExchangeOrder{
		ItemDescription: "kurta size L",
		CODAmount:       d("0"),
		ReturnItems:     []parcel.ReturnItem{{Name: "kurta size M", Quantity: 1}},
	}
}

func TestCreateExchangeCommandHandler_Handle(t *testing.T) {
	t.Run("stores both legs in one transaction", func(t *testing.T) {
		ctx := t.Context()
		c := newCast(t)
		original := delivered(t, c, "2500")

		uow := newMockUoW()
		uow.users.withUsers(c.brand)
		uow.parcels.On("Get", ctx, original.ID()).Return(original, nil).Once()
		uow.parcels.On("TrackingNumberExists", ctx, parcel.TrackingNumber("SD7777")).Return(false, nil).Once()
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.parcels.On("Add", ctx, mock.MatchedBy(func(p *parcel.Parcel) bool {
				return p.Status() == parcel.Booked
			})).Return(nil).Once(),
			uow.parcels.On("Add", ctx, mock.MatchedBy(func(p *parcel.Parcel) bool {
				return p.Status() == parcel.PendingExchangePickup
			})).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
		)
		uow.On("Rollback", ctx).Return(nil).Maybe()

		cmd, err := commands.NewCreateExchangeCommand(c.brand.ID(), original.ID(), exchangeOrder())
		require.NoError(t, err)

		pair, err := commands.NewCreateExchangeCommandHandler(parcelFactory{uow}, fixedTrackingNumbers("SD7777")).
			Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, parcel.TrackingNumber("SD7777"), pair.Outbound.TrackingNumber())
		assert.Equal(t, parcel.TrackingNumber("RTN-SD7777"), pair.Return.TrackingNumber())
		assert.True(t, pair.Outbound.ID().IsEqualPtr(pair.Return.LinkedParcelID()))
		assert.True(t, pair.Return.ID().IsEqualPtr(pair.Outbound.LinkedParcelID()))
		uow.assertAll(t)
	})

	t.Run("original must be delivered", func(t *testing.T) {
		ctx := t.Context()
		c := newCast(t)
		original := booked(t, c, "2500")

		uow := newMockUoW()
		uow.users.withUsers(c.brand)
		uow.expectTx(ctx, false, false)
		uow.parcels.On("Get", ctx, original.ID()).Return(original, nil).Once()
		uow.parcels.On("TrackingNumberExists", ctx, mock.Anything).Return(false, nil).Maybe()

		cmd, err := commands.NewCreateExchangeCommand(c.brand.ID(), original.ID(), exchangeOrder())
		require.NoError(t, err)

		_, err = commands.NewCreateExchangeCommandHandler(parcelFactory{uow}, nil).Handle(ctx, cmd)

		require.Error(t, err)
		uow.parcels.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}

func TestCompleteExchangeCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	c := newCast(t)
	original := delivered(t, c, "2500")
	quote, err := c.brand.Quote(original.Weight())
	require.NoError(t, err)
	pair, err := parcel.NewExchangePair(original, c.brand, exchangeOrder(), quote, "SD8888",
		parcel.ActorFromUser(c.brand), original.UpdatedAt())
	require.NoError(t, err)
	walk(t, c, pair.Outbound, parcel.PickedUp, parcel.AtHub, parcel.OutForDelivery)

	uow := newMockUoW()
	uow.users.withUsers(c.driver)
	uow.expectTx(ctx, false, true)
	uow.parcels.On("Get", ctx, pair.Outbound.ID()).Return(pair.Outbound, nil).Once()
	uow.parcels.On("Get", ctx, pair.Return.ID()).Return(pair.Return, nil).Once()
	uow.parcels.On("Update", ctx, pair.Outbound).Return(nil).Once()
	uow.parcels.On("Update", ctx, pair.Return).Return(nil).Once()

	cmd, err := commands.NewCompleteExchangeCommand(c.driver.ID(), pair.Outbound.ID(), "swapped at door")
	require.NoError(t, err)

	got, err := commands.NewCompleteExchangeCommandHandler(parcelFactory{uow}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.Delivered, got.Outbound.Status())
	assert.Equal(t, parcel.PickedUp, got.Return.Status())
	require.NotNil(t, got.Return.PickupDriverID())
	assert.True(t, c.driver.ID().IsEqual(*got.Return.PickupDriverID()))
	uow.assertAll(t)
}

func TestAddRemarkCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	c := newCast(t)
	p := booked(t, c, "100")

	uow := newMockUoW()
	uow.users.withUsers(c.brand)
	uow.expectTx(ctx, false, true)
	uow.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	uow.parcels.On("Update", ctx, p).Return(nil).Once()

	cmd, err := commands.NewAddRemarkCommand(c.brand.ID(), p.ID(), "call before arriving")
	require.NoError(t, err)

	got, err := commands.NewAddRemarkCommandHandler(parcelFactory{uow}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.Booked, got.Status())
	assert.Len(t, got.History(), 2)
	assert.Contains(t, got.LastEvent().Notes, "call before arriving")
	uow.assertAll(t)
}

func TestDeleteParcelCommandHandler_Handle(t *testing.T) {
	t.Run("owner deletes a booked parcel", func(t *testing.T) {
		ctx := t.Context()
		c := newCast(t)
		p := booked(t, c, "100")

		uow := newMockUoW()
		uow.users.withUsers(c.brand)
		uow.expectTx(ctx, false, true)
		uow.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
		uow.parcels.On("Delete", ctx, p).Return(nil).Once()

		cmd, err := commands.NewDeleteParcelCommand(c.brand.ID(), p.ID())
		require.NoError(t, err)

		require.NoError(t, commands.NewDeleteParcelCommandHandler(parcelFactory{uow}).Handle(ctx, cmd))
		uow.assertAll(t)
	})

	t.Run("parcels in flight are kept", func(t *testing.T) {
		ctx := t.Context()
		c := newCast(t)
		p := booked(t, c, "100")
		walk(t, c, p, parcel.PickedUp)

		uow := newMockUoW()
		uow.users.withUsers(c.admin)
		uow.expectTx(ctx, false, false)
		uow.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

		cmd, err := commands.NewDeleteParcelCommand(c.admin.ID(), p.ID())
		require.NoError(t, err)

		err = commands.NewDeleteParcelCommandHandler(parcelFactory{uow}).Handle(ctx, cmd)

		require.Error(t, err)
		uow.parcels.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestUnitOfWorkErrors(t *testing.T) {
	ctx := t.Context()
	c := newCast(t)
	p := booked(t, c, "100")

	uow := newMockUoW()
	uow.users.withUsers(c.brand)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(errs.NewConflictError("parcel", p.ID().String(), "serialization failure")).Once()
	uow.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	uow.parcels.On("Update", ctx, p).Return(nil).Once()

	cmd, err := commands.NewAddRemarkCommand(c.brand.ID(), p.ID(), "note")
	require.NoError(t, err)

	_, err = commands.NewAddRemarkCommandHandler(parcelFactory{uow}).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.assertAll(t)
}
