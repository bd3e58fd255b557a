// Package kernel holds the value objects shared by every parcelhub aggregate:
//   - UUID: entity identifier wrapping github.com/google/uuid
//   - GeoPoint: a driver's last known position
//   - money helpers: currency, settlement tolerance and rounding on shopspring/decimal
//
// All kernel values are immutable and safe for concurrent use.
package kernel
