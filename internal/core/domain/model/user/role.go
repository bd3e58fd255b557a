package user

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Role determines what a user may do and which profile fields apply.
type Role string

const (
	RoleBrand        Role = "BRAND"
	RoleDriver       Role = "DRIVER"
	RoleAdmin        Role = "ADMIN"
	RoleWarehouse    Role = "WAREHOUSE"
	RoleSalesManager Role = "SALES_MANAGER"
	RoleDirectSales  Role = "DIRECT_SALES"
	RoleCustomer     Role = "CUSTOMER"
)

var validRoles = map[Role]struct{}{
	RoleBrand:        {},
	RoleDriver:       {},
	RoleAdmin:        {},
	RoleWarehouse:    {},
	RoleSalesManager: {},
	RoleDirectSales:  {},
	RoleCustomer:     {},
}

func (r Role) Validate() error {
	if _, ok := validRoles[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}

// IsSalaried reports whether the role is paid a salary through the commission calculator.
func (r Role) IsSalaried() bool {
	switch r {
	case RoleDriver, RoleAdmin, RoleWarehouse, RoleSalesManager, RoleDirectSales:
		return true
	default:
		return false
	}
}

// Status gates assignability to new work.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Validate() error {
	if s != StatusActive && s != StatusInactive {
		return errs.NewValueIsInvalidErrorWithCause("user status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}
