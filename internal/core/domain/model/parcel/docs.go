// Package parcel implements the Parcel aggregate and its lifecycle state machine.
//
// A parcel is created BOOKED by a brand and from then on changes status only
// through Transition (or the exchange composite), each call appending one
// HistoryEvent so that the last history entry always carries the current status.
//
// Status workflow:
//
//	BOOKED ──> PICKED_UP ──> AT_HUB ──> OUT_FOR_DELIVERY ──> DELIVERED
//	   │                                   │      ▲
//	   │                                   ▼      │
//	   │                 DELIVERY_FAILED / CUSTOMER_REFUSED ──> PENDING_DELIVERY
//	   │
//	   └──> CANCELED
//
//	(operational states) ──> PENDING_RETURN ──> OUT_FOR_RETURN ──> RETURNED
//	(any non-terminal)   ──> LOST | DAMAGED | FRAUDULENT | SOLVED   (admin)
//
// Exchange pairs add PENDING_EXCHANGE_PICKUP for the return leg; the pair is
// completed only through CompleteExchange.
//
// Money fields (COD, delivery charge, tax) are frozen once an invoice id is stamped.
package parcel
