// Package services provides domain services for the business rules that span
// several aggregates and therefore do not belong to a single one.
//
// The package includes:
//   - ExchangeCoordinator: prices and creates exchange pairs, completes them as one unit
//   - CODReconciler: all-or-nothing settlement of a driver's collected cash
//   - PayoutCalculator: groups deliverable payouts per brand and issues invoices
//   - CommissionCalculator: role-specific pay over a date window
//
// All services are stateless and never touch the store; the application layer
// loads the aggregates (inside one snapshot for the financial ones) and
// persists the result.
package services
