// Package invoice holds the brand payout Invoice aggregate.
//
// An invoice is a frozen monetary snapshot over a set of delivered parcels of
// one brand. It starts PENDING and can only move to PAID, once, with a
// transaction reference. Later edits to the parcels never change its totals.
package invoice
