package salary_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	p, err := salary.NewPeriod(start, end)
	require.NoError(t, err)

	assert.True(t, p.Contains(start))
	assert.True(t, p.Contains(end))
	assert.False(t, p.Contains(end.Add(time.Second)))
	assert.Equal(t, "2025-03-01..2025-03-31", p.String())

	_, err = salary.NewPeriod(end, start)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = salary.NewPeriod(time.Time{}, end)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewPayment(t *testing.T) {
	period, err := salary.NewPeriod(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	st := salary.Statement{
		UserID:     kernel.NewUUID(),
		Period:     period,
		BaseSalary: decimal.NewFromInt(30000),
		Commission: decimal.NewFromInt(4500),
	}
	assert.True(t, st.Total().Equal(decimal.NewFromInt(34500)))

	pay, err := salary.NewPayment(kernel.NewUUID(), st, kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	assert.True(t, pay.Total().Equal(decimal.NewFromInt(34500)))
	assert.Equal(t, period, pay.Period())

	_, err = salary.NewPayment(kernel.NewUUID(), salary.Statement{Period: period}, kernel.NewUUID(), time.Now())
	require.Error(t, err)
}
