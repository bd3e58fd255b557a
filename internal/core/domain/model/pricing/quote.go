package pricing

import "github.com/shopspring/decimal"

// Quote is the result of pricing one parcel.
type Quote struct {
	Weight         decimal.Decimal
	TierWeight     decimal.Decimal
	Charge         decimal.Decimal
	Surcharge      decimal.Decimal
	DeliveryCharge decimal.Decimal
	Tax            decimal.Decimal
}

// Total is what the brand owes for the delivery: charge plus tax.
func (q Quote) Total() decimal.Decimal {
	return q.DeliveryCharge.Add(q.Tax)
}

// NetOnDelivery is what the brand receives for a delivered parcel collecting cod.
func (q Quote) NetOnDelivery(cod decimal.Decimal) decimal.Decimal {
	return cod.Sub(q.DeliveryCharge).Sub(q.Tax)
}
