// Package user models the people and organisations acting on parcels.
//
// A User is role-tagged; the role decides which profile fields are meaningful:
//   - Brand: pickup locations, rate card (tiers + fuel surcharge)
//   - Driver: covered zones, duty state, last known location, per-pickup and
//     per-delivery rates
//   - SalesManager: base salary and a commission percentage per managed brand
//   - DirectSales: base salary and a personal commission percentage
//   - Admin, Warehouse: base salary only
//   - Customer: no profile
//
// Only ACTIVE users can be assigned new work.
package user
