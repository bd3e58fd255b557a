package http

import (
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// Request bodies. Money and weight travel as decimal strings or numbers.
type (
	Recipient struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		City    string `json:"city"`
	}

	BookParcelRequest struct {
		BrandID         string          `json:"brandId"`
		PickupLocation  string          `json:"pickupLocation"`
		Recipient       Recipient       `json:"recipient"`
		OrderRef        string          `json:"orderRef"`
		ItemDescription string          `json:"itemDescription"`
		Instructions    string          `json:"instructions"`
		CODAmount       decimal.Decimal `json:"codAmount"`
		Weight          decimal.Decimal `json:"weight"`
	}

	TransitionRequest struct {
		Status     string           `json:"status"`
		Zone       string           `json:"zone,omitempty"`
		DriverID   *string          `json:"driverId,omitempty"`
		Weight     *decimal.Decimal `json:"weight,omitempty"`
		ReasonCode string           `json:"reasonCode,omitempty"`
		Proof      string           `json:"proof,omitempty"`
		Notes      string           `json:"notes,omitempty"`
	}

	BulkTransitionRequest struct {
		ParcelIDs []string `json:"parcelIds"`
		TransitionRequest
	}

	RemarkRequest struct {
		Remark string `json:"remark"`
	}

	ReturnItem struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}

	CreateExchangeRequest struct {
		OrderRef        string          `json:"orderRef"`
		ItemDescription string          `json:"itemDescription"`
		CODAmount       decimal.Decimal `json:"codAmount"`
		Instructions    string          `json:"instructions"`
		ReturnItems     []ReturnItem    `json:"returnItems"`
	}

	CompleteExchangeRequest struct {
		Notes string `json:"notes"`
	}

	Transfer struct {
		Amount    decimal.Decimal `json:"amount"`
		Reference string          `json:"reference"`
	}

	ReconcileRequest struct {
		ParcelIDs []string        `json:"parcelIds"`
		Cash      decimal.Decimal `json:"cash"`
		Transfers []Transfer      `json:"transfers"`
	}

	LocationRequest struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}

	DutyRequest struct {
		OnDuty bool `json:"onDuty"`
	}

	GenerateInvoiceRequest struct {
		BrandID   string   `json:"brandId"`
		ParcelIDs []string `json:"parcelIds"`
	}

	MarkPaidRequest struct {
		TransactionRef string `json:"transactionRef"`
	}

	PeriodRequest struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
)

// Response bodies.
type (
	HistoryEvent struct {
		ID         string    `json:"id"`
		Status     string    `json:"status"`
		At         time.Time `json:"at"`
		ActorID    string    `json:"actorId"`
		ActorName  string    `json:"actorName"`
		Notes      string    `json:"notes,omitempty"`
		ReasonCode string    `json:"reasonCode,omitempty"`
		Proof      string    `json:"proof,omitempty"`
	}

	Parcel struct {
		ID               string          `json:"id"`
		TrackingNumber   string          `json:"trackingNumber"`
		BrandID          string          `json:"brandId"`
		Status           string          `json:"status"`
		Recipient        Recipient       `json:"recipient"`
		PickupLocation   string          `json:"pickupLocation"`
		OrderRef         string          `json:"orderRef"`
		ItemDescription  string          `json:"itemDescription"`
		Instructions     string          `json:"instructions,omitempty"`
		CODAmount        decimal.Decimal `json:"codAmount"`
		DeliveryCharge   decimal.Decimal `json:"deliveryCharge"`
		Tax              decimal.Decimal `json:"tax"`
		Weight           decimal.Decimal `json:"weight"`
		Zone             string          `json:"zone,omitempty"`
		PickupDriverID   *string         `json:"pickupDriverId,omitempty"`
		DeliveryDriverID *string         `json:"deliveryDriverId,omitempty"`
		CODReconciled    bool            `json:"codReconciled"`
		InvoiceID        *string         `json:"invoiceId,omitempty"`
		IsExchange       bool            `json:"isExchange"`
		LinkedParcelID   *string         `json:"linkedParcelId,omitempty"`
		ReturnItems      []ReturnItem    `json:"returnItems,omitempty"`
		CreatedAt        time.Time       `json:"createdAt"`
		UpdatedAt        time.Time       `json:"updatedAt"`
		History          []HistoryEvent  `json:"history"`
	}

	BulkOutcome struct {
		ParcelID string  `json:"parcelId"`
		Parcel   *Parcel `json:"parcel,omitempty"`
		Error    string  `json:"error,omitempty"`
	}

	BulkResponse struct {
		Succeeded int           `json:"succeeded"`
		Failed    int           `json:"failed"`
		Outcomes  []BulkOutcome `json:"outcomes"`
	}

	ExchangeResponse struct {
		Outbound Parcel `json:"outbound"`
		Return   Parcel `json:"return"`
	}

	UnreconciledParcel struct {
		ID             string          `json:"id"`
		TrackingNumber string          `json:"trackingNumber"`
		BrandID        string          `json:"brandId"`
		RecipientName  string          `json:"recipientName"`
		City           string          `json:"city"`
		CODAmount      decimal.Decimal `json:"codAmount"`
		DeliveredAt    time.Time       `json:"deliveredAt"`
	}

	UnreconciledResponse struct {
		DriverID string               `json:"driverId"`
		Parcels  []UnreconciledParcel `json:"parcels"`
		TotalCOD decimal.Decimal      `json:"totalCod"`
	}

	ReconciliationResponse struct {
		DriverID  string          `json:"driverId"`
		ParcelIDs []string        `json:"parcelIds"`
		Expected  decimal.Decimal `json:"expected"`
		Entered   decimal.Decimal `json:"entered"`
		Method    string          `json:"method"`
	}

	Driver struct {
		ID     string   `json:"id"`
		Name   string   `json:"name"`
		OnDuty bool     `json:"onDuty"`
		Lat    *float64 `json:"lat,omitempty"`
		Lng    *float64 `json:"lng,omitempty"`
	}

	Totals struct {
		COD       decimal.Decimal `json:"cod"`
		Charges   decimal.Decimal `json:"charges"`
		Tax       decimal.Decimal `json:"tax"`
		NetPayout decimal.Decimal `json:"netPayout"`
	}

	PayoutParcel struct {
		ID             string          `json:"id"`
		TrackingNumber string          `json:"trackingNumber"`
		CODAmount      decimal.Decimal `json:"codAmount"`
		DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
		Tax            decimal.Decimal `json:"tax"`
	}

	PendingPayout struct {
		BrandID   string         `json:"brandId"`
		BrandName string         `json:"brandName"`
		Parcels   []PayoutParcel `json:"parcels"`
		Totals    Totals         `json:"totals"`
	}

	Invoice struct {
		ID             string     `json:"id"`
		BrandID        string     `json:"brandId"`
		ParcelIDs      []string   `json:"parcelIds"`
		Totals         Totals     `json:"totals"`
		Status         string     `json:"status"`
		TransactionRef string     `json:"transactionRef,omitempty"`
		CreatedBy      string     `json:"createdBy"`
		CreatedAt      time.Time  `json:"createdAt"`
		PaidBy         *string    `json:"paidBy,omitempty"`
		PaidAt         *time.Time `json:"paidAt,omitempty"`
	}

	CommissionLine struct {
		Label  string          `json:"label"`
		Basis  decimal.Decimal `json:"basis"`
		Rate   decimal.Decimal `json:"rate"`
		Amount decimal.Decimal `json:"amount"`
	}

	Statement struct {
		UserID     string           `json:"userId"`
		From       string           `json:"from"`
		To         string           `json:"to"`
		BaseSalary decimal.Decimal  `json:"baseSalary"`
		Commission decimal.Decimal  `json:"commission"`
		Total      decimal.Decimal  `json:"total"`
		Lines      []CommissionLine `json:"lines"`
	}

	CommissionResponse struct {
		Statement
		AlreadyPaid bool `json:"alreadyPaid"`
	}

	SalaryPaymentResponse struct {
		ID        string    `json:"id"`
		PaidBy    string    `json:"paidBy"`
		PaidAt    time.Time `json:"paidAt"`
		Statement Statement `json:"statement"`
	}
)

func (r TransitionRequest) toInput() (parcel.Status, commands.TransitionInput, error) {
	target, err := parcel.ParseStatus(r.Status)
	if err != nil {
		return parcel.Unknown, commands.TransitionInput{}, err
	}
	in := commands.TransitionInput{
		Zone:       r.Zone,
		Weight:     r.Weight,
		ReasonCode: r.ReasonCode,
		Proof:      r.Proof,
		Notes:      r.Notes,
	}
	if r.DriverID != nil {
		id, err := kernel.UUIDFromString(*r.DriverID)
		if err != nil {
			return parcel.Unknown, commands.TransitionInput{}, err
		}
		in.DriverID = &id
	}
	return target, in, nil
}

func (r CreateExchangeRequest) toOrder() parcel.ExchangeOrder {
	items := make([]parcel.ReturnItem, len(r.ReturnItems))
	for i, it := range r.ReturnItems {
		items[i] = parcel.ReturnItem{Name: it.Name, Quantity: it.Quantity}
	}
	return parcel.ExchangeOrder{
		OrderRef:        r.OrderRef,
		ItemDescription: r.ItemDescription,
		CODAmount:       r.CODAmount,
		Instructions:    r.Instructions,
		ReturnItems:     items,
	}
}

func (r ReconcileRequest) toSettlement() services.Settlement {
	transfers := make([]services.Transfer, len(r.Transfers))
	for i, t := range r.Transfers {
		transfers[i] = services.Transfer{Amount: t.Amount, Reference: t.Reference}
	}
	return services.Settlement{Cash: r.Cash, Transfers: transfers}
}

// toPeriod reads from/to as calendar dates; the window covers the whole of
// the last day.
func (r PeriodRequest) toPeriod() (salary.Period, error) {
	from, err := time.Parse(time.DateOnly, r.From)
	if err != nil {
		return salary.Period{}, badRequest("from must be a YYYY-MM-DD date")
	}
	to, err := time.Parse(time.DateOnly, r.To)
	if err != nil {
		return salary.Period{}, badRequest("to must be a YYYY-MM-DD date")
	}
	return salary.NewPeriod(from, to.Add(24*time.Hour-time.Nanosecond))
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func idStrings(ids []kernel.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func toParcel(p *parcel.Parcel) Parcel {
	r := p.Recipient()
	history := make([]HistoryEvent, 0, len(p.History()))
	for _, e := range p.History() {
		history = append(history, HistoryEvent{
			ID:         e.ID.String(),
			Status:     e.Status.String(),
			At:         e.At,
			ActorID:    e.ActorID.String(),
			ActorName:  e.ActorName,
			Notes:      e.Notes,
			ReasonCode: e.ReasonCode,
			Proof:      e.Proof,
		})
	}
	var items []ReturnItem
	for _, it := range p.ReturnItems() {
		items = append(items, ReturnItem{Name: it.Name, Quantity: it.Quantity})
	}
	return Parcel{
		ID:               p.ID().String(),
		TrackingNumber:   p.TrackingNumber().String(),
		BrandID:          p.BrandID().String(),
		Status:           p.Status().String(),
		Recipient:        Recipient{Name: r.Name, Phone: r.Phone, Address: r.Address, City: r.City},
		PickupLocation:   p.PickupLocation(),
		OrderRef:         p.OrderRef(),
		ItemDescription:  p.ItemDescription(),
		Instructions:     p.Instructions(),
		CODAmount:        p.CODAmount(),
		DeliveryCharge:   p.DeliveryCharge(),
		Tax:              p.Tax(),
		Weight:           p.Weight(),
		Zone:             p.Zone(),
		PickupDriverID:   optionalID(p.PickupDriverID()),
		DeliveryDriverID: optionalID(p.DeliveryDriverID()),
		CODReconciled:    p.IsCODReconciled(),
		InvoiceID:        optionalID(p.InvoiceID()),
		IsExchange:       p.IsExchange(),
		LinkedParcelID:   optionalID(p.LinkedParcelID()),
		ReturnItems:      items,
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
		History:          history,
	}
}

func toBulkResponse(res commands.BulkResult) BulkResponse {
	out := BulkResponse{
		Succeeded: res.Succeeded(),
		Failed:    res.Failed(),
		Outcomes:  make([]BulkOutcome, len(res.Outcomes)),
	}
	for i, o := range res.Outcomes {
		item := BulkOutcome{ParcelID: o.ParcelID.String()}
		if o.Err != nil {
			item.Error = o.Err.Error()
		} else if o.Parcel != nil {
			p := toParcel(o.Parcel)
			item.Parcel = &p
		}
		out.Outcomes[i] = item
	}
	return out
}

func toUnreconciled(res queries.GetUnreconciledParcelsQueryResponse) UnreconciledResponse {
	parcels := make([]UnreconciledParcel, len(res.Parcels))
	for i, p := range res.Parcels {
		parcels[i] = UnreconciledParcel{
			ID:             p.ID.String(),
			TrackingNumber: p.TrackingNumber,
			BrandID:        p.BrandID.String(),
			RecipientName:  p.RecipientName,
			City:           p.City,
			CODAmount:      p.CODAmount,
			DeliveredAt:    p.DeliveredAt,
		}
	}
	return UnreconciledResponse{DriverID: res.DriverID.String(), Parcels: parcels, TotalCOD: res.TotalCOD}
}

func toReconciliation(res services.ReconciliationResult) ReconciliationResponse {
	ids := make([]string, len(res.Parcels))
	for i, p := range res.Parcels {
		ids[i] = p.ID().String()
	}
	return ReconciliationResponse{
		DriverID:  res.DriverID.String(),
		ParcelIDs: ids,
		Expected:  res.Expected,
		Entered:   res.Entered,
		Method:    res.Method,
	}
}

func toDriver(u *user.User) Driver {
	d := Driver{ID: u.ID().String(), Name: u.Name(), OnDuty: u.OnDuty()}
	if loc := u.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		d.Lat, d.Lng = &lat, &lng
	}
	return d
}

func toTotals(t invoice.Totals) Totals {
	return Totals{COD: t.COD, Charges: t.Charges, Tax: t.Tax, NetPayout: t.NetPayout()}
}

func toPendingPayouts(payouts []queries.PendingPayout) []PendingPayout {
	out := make([]PendingPayout, len(payouts))
	for i, p := range payouts {
		parcels := make([]PayoutParcel, len(p.Parcels))
		for j, pp := range p.Parcels {
			parcels[j] = PayoutParcel{
				ID:             pp.ID.String(),
				TrackingNumber: pp.TrackingNumber,
				CODAmount:      pp.CODAmount,
				DeliveryCharge: pp.DeliveryCharge,
				Tax:            pp.Tax,
			}
		}
		out[i] = PendingPayout{
			BrandID:   p.BrandID.String(),
			BrandName: p.BrandName,
			Parcels:   parcels,
			Totals:    toTotals(p.Totals),
		}
	}
	return out
}

func toInvoice(inv *invoice.Invoice) Invoice {
	return Invoice{
		ID:             inv.ID().String(),
		BrandID:        inv.BrandID().String(),
		ParcelIDs:      idStrings(inv.ParcelIDs()),
		Totals:         toTotals(inv.Totals()),
		Status:         inv.Status().String(),
		TransactionRef: inv.TransactionRef(),
		CreatedBy:      inv.CreatedBy().String(),
		CreatedAt:      inv.CreatedAt(),
		PaidBy:         optionalID(inv.PaidBy()),
		PaidAt:         inv.PaidAt(),
	}
}

func toStatement(s salary.Statement) Statement {
	lines := make([]CommissionLine, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = CommissionLine{Label: l.Label, Basis: l.Basis, Rate: l.Rate, Amount: l.Amount}
	}
	return Statement{
		UserID:     s.UserID.String(),
		From:       s.Period.Start.Format(time.DateOnly),
		To:         s.Period.End.Format(time.DateOnly),
		BaseSalary: s.BaseSalary,
		Commission: s.Commission,
		Total:      s.Total(),
		Lines:      lines,
	}
}
