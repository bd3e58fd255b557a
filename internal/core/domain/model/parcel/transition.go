package parcel

import (
	"slices"

	"parcelhub/internal/core/domain/model/user"
)

type requirement uint8

const (
	needsZone requirement = 1 << iota
	needsDriver
	needsDriverUnlessSelf
	needsReason
	needsProof
)

// rule describes one legal current -> target edge. Admin is allowed on every edge.
type rule struct {
	roles []user.Role
	// requires lists the details the caller must supply.
	requires requirement
	// ownerOnly restricts brand actors to their own parcels.
	ownerOnly bool
	// assignedDriverOnly restricts driver actors to parcels assigned to them.
	assignedDriverOnly bool
}

func (r rule) has(req requirement) bool {
	return r.requires&req != 0
}

var (
	operationalStatuses = []Status{PickedUp, AtHub, OutForDelivery, DeliveryFailed, CustomerRefused, PendingDelivery}
	exceptionStatuses   = []Status{Lost, Damaged, Fraudulent, Solved}

	transitionTable = buildTransitionTable()
)

func buildTransitionTable() map[Status]map[Status]rule {
	t := map[Status]map[Status]rule{}
	add := func(from, to Status, r rule) {
		if t[from] == nil {
			t[from] = map[Status]rule{}
		}
		t[from][to] = r
	}

	add(Booked, PickedUp, rule{roles: []user.Role{user.RoleDriver}, requires: needsDriverUnlessSelf})
	add(Booked, Canceled, rule{roles: []user.Role{user.RoleBrand}, ownerOnly: true})
	add(PickedUp, AtHub, rule{roles: []user.Role{user.RoleWarehouse}, requires: needsZone})

	dispatch := rule{roles: []user.Role{user.RoleWarehouse}, requires: needsDriver}
	add(AtHub, OutForDelivery, dispatch)
	add(PendingDelivery, OutForDelivery, dispatch)

	add(OutForDelivery, Delivered, rule{roles: []user.Role{user.RoleDriver}, assignedDriverOnly: true})
	failure := rule{roles: []user.Role{user.RoleDriver}, requires: needsReason | needsProof, assignedDriverOnly: true}
	add(OutForDelivery, DeliveryFailed, failure)
	add(OutForDelivery, CustomerRefused, failure)

	reintake := rule{roles: []user.Role{user.RoleWarehouse}}
	add(DeliveryFailed, PendingDelivery, reintake)
	add(CustomerRefused, PendingDelivery, reintake)

	recall := rule{roles: []user.Role{user.RoleBrand, user.RoleWarehouse}, ownerOnly: true}
	for _, from := range operationalStatuses {
		add(from, PendingReturn, recall)
	}
	add(PendingReturn, OutForReturn, rule{
		roles:    []user.Role{user.RoleDriver, user.RoleWarehouse},
		requires: needsDriverUnlessSelf,
	})
	add(OutForReturn, Returned, rule{roles: []user.Role{user.RoleDriver}, assignedDriverOnly: true})

	for _, from := range AllStatuses() {
		if from.IsTerminal() {
			continue
		}
		for _, to := range exceptionStatuses {
			add(from, to, rule{requires: needsReason})
		}
	}

	return t
}

// LegalSuccessors returns the statuses reachable from s with a single Transition,
// sorted by declaration order. Composite-only edges are not included.
func LegalSuccessors(s Status) []Status {
	out := make([]Status, 0, len(transitionTable[s]))
	for to := range transitionTable[s] {
		out = append(out, to)
	}
	slices.Sort(out)
	return out
}

// CanTransition reports whether target is a legal successor of s.
func CanTransition(s, target Status) bool {
	_, ok := transitionTable[s][target]
	return ok
}

func (r rule) allows(role user.Role) bool {
	return role == user.RoleAdmin || slices.Contains(r.roles, role)
}
