package salary

import (
	"fmt"
	"time"

	"parcelhub/internal/pkg/errs"
)

// Period is an inclusive [Start, End] window applied to parcel creation time.
type Period struct {
	Start time.Time
	End   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if start.IsZero() {
		return Period{}, errs.NewValueIsRequiredError("period start")
	}
	if end.IsZero() {
		return Period{}, errs.NewValueIsRequiredError("period end")
	}
	if end.Before(start) {
		return Period{}, errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("end %s is before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly)))
	}
	return Period{Start: start.UTC(), End: end.UTC()}, nil
}

// Contains reports whether t falls inside the window, bounds included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

func (p Period) String() string {
	return p.Start.Format(time.DateOnly) + ".." + p.End.Format(time.DateOnly)
}
