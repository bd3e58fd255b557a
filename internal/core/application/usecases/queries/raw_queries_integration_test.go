package queries_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/adapters/out/postgres/parcelrepo"
	"parcelhub/internal/adapters/out/postgres/userrepo"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type discardTracker struct{}

func (discardTracker) TrackAggregate(kernel.UUID, any) {}

type RawQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	unreconciled queries.GetUnreconciledParcelsQueryHandler
	summary      queries.GetUnreconciledCODSummaryQueryHandler
	cast         cast
}

func (suite *RawQueriesTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&userrepo.UserDTO{}, &userrepo.DutyLogDTO{},
		&parcelrepo.ParcelDTO{}, &parcelrepo.HistoryDTO{}, &parcelrepo.ReturnItemDTO{},
	)
	suite.Require().NoError(err)

	suite.unreconciled = queries.NewGetUnreconciledParcelsQueryHandler(db)
	suite.summary = queries.NewGetUnreconciledCODSummaryQueryHandler(db)
}

func (suite *RawQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RawQueriesTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE users, driver_duty_log, parcels, parcel_history, parcel_return_items").Error
	suite.Require().NoError(err)

	suite.cast = newCast(suite.T())
	users := userrepo.NewGormUserRepository(suite.db, discardTracker{})
	for _, u := range []*user.User{suite.cast.brand, suite.cast.driver, suite.cast.admin} {
		suite.Require().NoError(users.Add(context.Background(), u))
	}
}

func TestRawQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RawQueriesTestSuite))
}

func (suite *RawQueriesTestSuite) TestUnreconciledParcels_ListsOnlyOpenCashWithSum() {
	ctx := context.Background()
	c := suite.cast
	first := delivered(suite.T(), c, "SD1001", "500")
	second := delivered(suite.T(), c, "SD1002", "300")
	settled := delivered(suite.T(), c, "SD1003", "200")
	suite.Require().NoError(settled.MarkCODReconciled(parcel.ActorFromUser(c.admin), "cash", time.Now().UTC()))
	suite.save(first, second, settled)

	query, err := queries.NewGetUnreconciledParcelsQuery(c.admin.ID(), c.driver.ID())
	suite.Require().NoError(err)

	got, err := suite.unreconciled.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(got.Parcels, 2)
	suite.Equal("SD1001", got.Parcels[0].TrackingNumber)
	suite.Equal("SD1002", got.Parcels[1].TrackingNumber)
	suite.True(d("800").Equal(got.TotalCOD))
	suite.Equal(c.brand.ID(), got.Parcels[0].BrandID)
	suite.Equal("Sara", got.Parcels[0].RecipientName)
}

func (suite *RawQueriesTestSuite) TestUnreconciledParcels_DriverReadsOwnList() {
	c := suite.cast
	suite.save(delivered(suite.T(), c, "SD1004", "100"))

	query, err := queries.NewGetUnreconciledParcelsQuery(c.driver.ID(), c.driver.ID())
	suite.Require().NoError(err)

	got, err := suite.unreconciled.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(got.Parcels, 1)
}

func (suite *RawQueriesTestSuite) TestUnreconciledParcels_BrandIsForbidden() {
	c := suite.cast
	query, err := queries.NewGetUnreconciledParcelsQuery(c.brand.ID(), c.driver.ID())
	suite.Require().NoError(err)

	_, err = suite.unreconciled.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *RawQueriesTestSuite) TestUnreconciledParcels_UnknownDriverOrActor_NotFound() {
	c := suite.cast

	query, err := queries.NewGetUnreconciledParcelsQuery(c.admin.ID(), c.brand.ID())
	suite.Require().NoError(err)
	_, err = suite.unreconciled.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "a brand is not a driver")

	query, err = queries.NewGetUnreconciledParcelsQuery(kernel.NewUUID(), c.driver.ID())
	suite.Require().NoError(err)
	_, err = suite.unreconciled.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RawQueriesTestSuite) TestUnreconciledParcels_NoCash_ReturnsEmptyList() {
	c := suite.cast
	query, err := queries.NewGetUnreconciledParcelsQuery(c.admin.ID(), c.driver.ID())
	suite.Require().NoError(err)

	got, err := suite.unreconciled.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(got.Parcels)
	suite.Empty(got.Parcels)
	suite.True(got.TotalCOD.IsZero())
}

func (suite *RawQueriesTestSuite) TestCODSummary_GroupsByDriver() {
	c := suite.cast
	suite.save(
		delivered(suite.T(), c, "SD1005", "500"),
		delivered(suite.T(), c, "SD1006", "250"),
		delivered(suite.T(), c, "SD1007", "0"),
	)

	got, err := suite.summary.Handle(context.Background(), queries.NewGetUnreconciledCODSummaryQuery())

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(c.driver.ID(), got[0].DriverID)
	suite.Equal("Bilal", got[0].DriverName)
	suite.Equal(3, got[0].Parcels)
	suite.True(d("750").Equal(got[0].TotalCOD))
}

func (suite *RawQueriesTestSuite) TestCODSummary_NothingOutstanding_ReturnsEmpty() {
	got, err := suite.summary.Handle(context.Background(), queries.NewGetUnreconciledCODSummaryQuery())

	suite.Require().NoError(err)
	suite.NotNil(got)
	suite.Empty(got)
}

func (suite *RawQueriesTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.summary.Handle(context.Background(), queries.GetUnreconciledCODSummaryQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetUnreconciledCODSummaryQueryIsNotConstructed)

	_, err = suite.unreconciled.Handle(context.Background(), queries.GetUnreconciledParcelsQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetUnreconciledParcelsQueryIsNotConstructed)
}

func (suite *RawQueriesTestSuite) save(parcels ...*parcel.Parcel) {
	repo := parcelrepo.NewGormParcelRepository(suite.db, discardTracker{})
	for _, p := range parcels {
		suite.Require().NoError(repo.Add(context.Background(), p))
	}
}
