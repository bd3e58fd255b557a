package invoice

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

func (s Status) Validate() error {
	if s != StatusPending && s != StatusPaid {
		return errs.NewValueIsInvalidErrorWithCause("invoice status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
