package commands_test

import (
	"context"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Delete(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) TrackingNumberExists(ctx context.Context, tn parcel.TrackingNumber) (bool, error) {
	args := m.Called(ctx, tn)
	return args.Bool(0), args.Error(1)
}

func (m *MockParcelRepository) Find(ctx context.Context, filter ports.ParcelFilter) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) AppendDutyLog(ctx context.Context, entry user.DutyLogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockUserRepository) UpdateLocation(ctx context.Context, driverID kernel.UUID, at kernel.GeoPoint, seenAt time.Time) error {
	return m.Called(ctx, driverID, at, seenAt).Error(0)
}

// withUsers registers Get expectations for every given user.
func (m *MockUserRepository) withUsers(users ...*user.User) *MockUserRepository {
	for _, u := range users {
		m.On("Get", mock.Anything, u.ID()).Return(u, nil).Maybe()
	}
	return m
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

type MockSalaryPaymentRepository struct{ mock.Mock }

func (m *MockSalaryPaymentRepository) Add(ctx context.Context, p *salary.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockSalaryPaymentRepository) Find(ctx context.Context, userID kernel.UUID, period salary.Period) (*salary.Payment, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salary.Payment), args.Error(1)
}

// MockUoW satisfies every unit of work view used by the handlers.
type MockUoW struct {
	mock.Mock
	parcels  *MockParcelRepository
	users    *MockUserRepository
	invoices *MockInvoiceRepository
	salaries *MockSalaryPaymentRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		parcels:  new(MockParcelRepository),
		users:    new(MockUserRepository),
		invoices: new(MockInvoiceRepository),
		salaries: new(MockSalaryPaymentRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) BeginSnapshot(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	return m.parcels
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.users
}

func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository {
	return m.invoices
}

func (m *MockUoW) SalaryPaymentRepository() ports.SalaryPaymentRepository {
	return m.salaries
}

// expectTx registers the transaction lifecycle: begin (plain or snapshot),
// optional commit, and the deferred rollback.
func (m *MockUoW) expectTx(ctx context.Context, snapshot, commit bool) {
	if snapshot {
		m.On("BeginSnapshot", ctx).Return(nil).Once()
	} else {
		m.On("Begin", ctx).Return(nil).Once()
	}
	if commit {
		m.On("Commit", ctx).Return(nil).Once()
	}
	m.On("Rollback", ctx).Return(nil).Maybe()
}

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.parcels.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.invoices.AssertExpectations(t)
	m.salaries.AssertExpectations(t)
}

type parcelFactory struct{ uow *MockUoW }

func (f parcelFactory) Create() commands.ParcelUoW { return f.uow }

type financeFactory struct{ uow *MockUoW }

func (f financeFactory) Create() commands.FinanceUoW { return f.uow }

type userFactory struct{ uow *MockUoW }

func (f userFactory) Create() commands.UserUoW { return f.uow }
