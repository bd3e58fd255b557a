package queries_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name  string
		query interface{ Validate() error }
		want  error
	}{
		{"unreconciled parcels", queries.GetUnreconciledParcelsQuery{}, queries.ErrGetUnreconciledParcelsQueryIsNotConstructed},
		{"cod summary", queries.GetUnreconciledCODSummaryQuery{}, queries.ErrGetUnreconciledCODSummaryQueryIsNotConstructed},
		{"pending payouts", queries.GetPendingPayoutsQuery{}, queries.ErrGetPendingPayoutsQueryIsNotConstructed},
		{"commission", queries.ComputeCommissionQuery{}, queries.ErrComputeCommissionQueryIsNotConstructed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.query.Validate(), tt.want)
		})
	}
}

func TestNewGetUnreconciledParcelsQuery(t *testing.T) {
	q, err := queries.NewGetUnreconciledParcelsQuery(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, q.Validate())

	_, err = queries.NewGetUnreconciledParcelsQuery(kernel.NewUUID(), kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetPendingPayoutsQuery(t *testing.T) {
	q, err := queries.NewGetPendingPayoutsQuery(kernel.NewUUID(), nil)
	require.NoError(t, err)
	require.NoError(t, q.Validate())

	empty := kernel.UUID{}
	_, err = queries.NewGetPendingPayoutsQuery(kernel.NewUUID(), &empty)
	assert.Error(t, err)
}

func TestNewComputeCommissionQuery_RejectsInvertedPeriod(t *testing.T) {
	now := time.Now().UTC()

	_, err := queries.NewComputeCommissionQuery(kernel.NewUUID(), kernel.NewUUID(),
		salary.Period{Start: now, End: now.Add(-time.Hour)})

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewGetUnreconciledCODSummaryQuery(t *testing.T) {
	require.NoError(t, queries.NewGetUnreconciledCODSummaryQuery().Validate())
}
