package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetDriverDutyCommandHandler_Handle(t *testing.T) {
	t.Run("driver goes on duty", func(t *testing.T) {
		ctx := t.Context()
		c := newCast(t)

		uow := newMockUoW()
		uow.users.withUsers(c.driver)
		uow.expectTx(ctx, false, true)
		uow.users.On("Update", ctx, c.driver).Return(nil).Once()
		uow.users.On("AppendDutyLog", ctx, mock.MatchedBy(func(e user.DutyLogEntry) bool {
			return e.OnDuty && e.DriverID.IsEqual(c.driver.ID())
		})).Return(nil).Once()

		cmd, err := commands.NewSetDriverDutyCommand(c.driver.ID(), c.driver.ID(), true)
		require.NoError(t, err)

		got, err := commands.NewSetDriverDutyCommandHandler(userFactory{uow}).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, got.OnDuty())
		uow.assertAll(t)
	})

	t.Run("unchanged duty writes nothing", func(t *testing.T) {
		ctx := t.Context()
		c := newCast(t)

		uow := newMockUoW()
		uow.users.withUsers(c.warehouse, c.driver)
		uow.expectTx(ctx, false, false)

		cmd, err := commands.NewSetDriverDutyCommand(c.warehouse.ID(), c.driver.ID(), false)
		require.NoError(t, err)

		got, err := commands.NewSetDriverDutyCommandHandler(userFactory{uow}).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, got.OnDuty())
		uow.users.AssertNotCalled(t, "AppendDutyLog", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("brands may not switch drivers", func(t *testing.T) {
		ctx := t.Context()
		c := newCast(t)

		uow := newMockUoW()
		uow.users.withUsers(c.brand)
		uow.expectTx(ctx, false, false)

		cmd, err := commands.NewSetDriverDutyCommand(c.brand.ID(), c.driver.ID(), true)
		require.NoError(t, err)

		_, err = commands.NewSetDriverDutyCommandHandler(userFactory{uow}).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestUpdateDriverLocationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()

	uow := newMockUoW()
	uow.users.On("UpdateLocation", ctx, driverID, mock.MatchedBy(func(p kernel.GeoPoint) bool {
		return p.Lat() == 31.5204 && p.Lng() == 74.3587
	}), mock.Anything).Return(nil).Once()

	cmd, err := commands.NewUpdateDriverLocationCommand(driverID, driverID, 31.5204, 74.3587)
	require.NoError(t, err)

	require.NoError(t, commands.NewUpdateDriverLocationCommandHandler(userFactory{uow}).Handle(ctx, cmd))
	uow.assertAll(t)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}
