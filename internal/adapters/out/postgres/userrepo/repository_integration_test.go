package userrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/adapters/out/postgres/userrepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/pricing"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *userrepo.GormUserRepository
	tracker    *MockAggregateTracker
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&userrepo.UserDTO{}, &userrepo.DutyLogDTO{}))
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users, driver_duty_log").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = userrepo.NewGormUserRepository(suite.db, suite.tracker)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func TestUserRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}

func (suite *UserRepositoryIntegrationTestSuite) TestBrandProfile_RoundTrips() {
	ctx := context.Background()
	brand, err := user.NewUser(kernel.NewUUID(), "Acme Apparel", user.RoleBrand)
	suite.Require().NoError(err)
	card, err := pricing.NewRateCard([]pricing.Tier{
		{MaxWeight: dec("0.5"), Charge: dec("100")},
		{MaxWeight: dec("1"), Charge: dec("150")},
	}, dec("10"))
	suite.Require().NoError(err)
	suite.Require().NoError(brand.SetRateCard(card))
	suite.Require().NoError(brand.AddPickupLocation(user.PickupLocation{
		Name: "Main", Phone: "0300-1111111", Address: "12 Mall Road", City: "Lahore",
	}))

	suite.Require().NoError(suite.repository.Add(ctx, brand))

	got, err := suite.repository.Get(ctx, brand.ID())
	suite.Require().NoError(err)
	suite.Equal(user.RoleBrand, got.Role())
	suite.Equal(brand.PickupLocations(), got.PickupLocations())
	quote, err := got.Quote(dec("0.7"))
	suite.Require().NoError(err)
	suite.True(dec("165").Equal(quote.DeliveryCharge))
}

func (suite *UserRepositoryIntegrationTestSuite) TestSalesManagerCompensation_RoundTrips() {
	ctx := context.Background()
	brandID := kernel.NewUUID()
	manager, err := user.NewUser(kernel.NewUUID(), "Hina", user.RoleSalesManager)
	suite.Require().NoError(err)
	suite.Require().NoError(manager.SetCompensation(user.Compensation{
		BaseSalary:       dec("50000"),
		BrandCommissions: []user.BrandCommission{{BrandID: brandID, Pct: dec("2.5")}},
	}))
	suite.Require().NoError(suite.repository.Add(ctx, manager))

	got, err := suite.repository.Get(ctx, manager.ID())
	suite.Require().NoError(err)
	comp := got.Compensation()
	suite.True(dec("50000").Equal(comp.BaseSalary))
	suite.Require().Len(comp.BrandCommissions, 1)
	suite.True(brandID.IsEqual(comp.BrandCommissions[0].BrandID))
	suite.True(dec("2.5").Equal(comp.BrandCommissions[0].Pct))
}

func (suite *UserRepositoryIntegrationTestSuite) TestDutyAndLocation() {
	ctx := context.Background()
	driver, err := user.NewUser(kernel.NewUUID(), "Bilal", user.RoleDriver)
	suite.Require().NoError(err)
	suite.Require().NoError(driver.SetZones([]string{"gulberg", "dha"}))
	suite.Require().NoError(suite.repository.Add(ctx, driver))

	point, err := kernel.NewGeoPoint(31.5204, 74.3587)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateLocation(ctx, driver.ID(), point, time.Now()))

	entry, err := driver.SetDuty(true, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, driver))
	suite.Require().NoError(suite.repository.AppendDutyLog(ctx, *entry))

	got, err := suite.repository.Get(ctx, driver.ID())
	suite.Require().NoError(err)
	suite.True(got.OnDuty())
	suite.True(got.CoversZone("DHA"))
	suite.Require().NotNil(got.Location(), "profile update must keep the reported location")
	suite.InDelta(31.5204, got.Location().Lat(), 1e-9)

	var logs int64
	suite.Require().NoError(suite.db.Model(&userrepo.DutyLogDTO{}).Count(&logs).Error)
	suite.Equal(int64(1), logs)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdateLocation_UnknownDriver_ReturnsNotFound() {
	point, err := kernel.NewGeoPoint(0, 0)
	suite.Require().NoError(err)

	err = suite.repository.UpdateLocation(context.Background(), kernel.NewUUID(), point, time.Now())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) TestFindByRole_OrdersByName() {
	ctx := context.Background()
	for _, name := range []string{"Zafar", "Asad"} {
		u, err := user.NewUser(kernel.NewUUID(), name, user.RoleDriver)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, u))
	}
	admin, err := user.NewUser(kernel.NewUUID(), "Ops", user.RoleAdmin)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, admin))

	drivers, err := suite.repository.FindByRole(ctx, user.RoleDriver)

	suite.Require().NoError(err)
	suite.Require().Len(drivers, 2)
	suite.Equal("Asad", drivers[0].Name())
	suite.Equal("Zafar", drivers[1].Name())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
