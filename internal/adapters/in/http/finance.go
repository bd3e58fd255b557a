package http

import (
	"net/http"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/metrics"

	"github.com/labstack/echo/v4"
)

// GetUnreconciledParcels handles GET /api/v1/drivers/:id/unreconciled.
func (s *Server) GetUnreconciledParcels(ctx echo.Context) error {
	actor, driverID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	q, err := queries.NewGetUnreconciledParcelsQuery(actor, driverID)
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.h.UnreconciledParcels.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toUnreconciled(res))
}

// ReconcileCOD handles POST /api/v1/drivers/:id/reconciliations.
func (s *Server) ReconcileCOD(ctx echo.Context) error {
	actor, driverID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req ReconcileRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	ids, err := kernel.UUIDsFromStrings(req.ParcelIDs)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewReconcileCODCommand(actor, driverID, ids, req.toSettlement())
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.ReconcileCOD.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		metrics.CODReconciliationsTotal.WithLabelValues(metrics.ErrorKind(err)).Inc()
		return s.fail(ctx, err)
	}
	metrics.CODReconciliationsTotal.WithLabelValues("reconciled").Inc()
	return ctx.JSON(http.StatusOK, toReconciliation(res))
}

// UpdateDriverLocation handles PUT /api/v1/drivers/:id/location.
func (s *Server) UpdateDriverLocation(ctx echo.Context) error {
	actor, driverID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req LocationRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateDriverLocationCommand(actor, driverID, req.Lat, req.Lng)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.h.UpdateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetDriverDuty handles PUT /api/v1/drivers/:id/duty.
func (s *Server) SetDriverDuty(ctx echo.Context) error {
	actor, driverID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req DutyRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSetDriverDutyCommand(actor, driverID, req.OnDuty)
	if err != nil {
		return s.fail(ctx, err)
	}
	u, err := s.h.SetDuty.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDriver(u))
}

// GetPendingPayouts handles GET /api/v1/payouts/pending[?brandId=].
func (s *Server) GetPendingPayouts(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var brandID *kernel.UUID
	if raw := ctx.QueryParam("brandId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return s.fail(ctx, err)
		}
		brandID = &id
	}
	q, err := queries.NewGetPendingPayoutsQuery(actor, brandID)
	if err != nil {
		return s.fail(ctx, err)
	}
	payouts, err := s.h.PendingPayouts.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toPendingPayouts(payouts))
}

// GenerateInvoice handles POST /api/v1/invoices.
func (s *Server) GenerateInvoice(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req GenerateInvoiceRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	brandID, err := kernel.UUIDFromString(req.BrandID)
	if err != nil {
		return s.fail(ctx, err)
	}
	ids, err := kernel.UUIDsFromStrings(req.ParcelIDs)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewGenerateInvoiceCommand(actor, brandID, ids)
	if err != nil {
		return s.fail(ctx, err)
	}
	inv, err := s.h.GenerateInvoice.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	metrics.InvoicesGeneratedTotal.Inc()
	return ctx.JSON(http.StatusCreated, toInvoice(inv))
}

// MarkInvoicePaid handles POST /api/v1/invoices/:id/pay.
func (s *Server) MarkInvoicePaid(ctx echo.Context) error {
	actor, invoiceID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req MarkPaidRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewMarkInvoicePaidCommand(actor, invoiceID, req.TransactionRef)
	if err != nil {
		return s.fail(ctx, err)
	}
	inv, err := s.h.MarkInvoicePaid.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	metrics.InvoicesPaidTotal.Inc()
	return ctx.JSON(http.StatusOK, toInvoice(inv))
}

// GetCommission handles GET /api/v1/users/:id/commission?from=&to=.
func (s *Server) GetCommission(ctx echo.Context) error {
	actor, userID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	period, err := PeriodRequest{From: ctx.QueryParam("from"), To: ctx.QueryParam("to")}.toPeriod()
	if err != nil {
		return s.fail(ctx, err)
	}
	q, err := queries.NewComputeCommissionQuery(actor, userID, period)
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.h.ComputeCommission.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, CommissionResponse{
		Statement:   toStatement(res.Statement),
		AlreadyPaid: res.AlreadyPaid,
	})
}

// RecordSalaryPayment handles POST /api/v1/users/:id/salary-payments.
func (s *Server) RecordSalaryPayment(ctx echo.Context) error {
	actor, userID, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req PeriodRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	period, err := req.toPeriod()
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewRecordSalaryPaymentCommand(actor, userID, period)
	if err != nil {
		return s.fail(ctx, err)
	}
	payment, statement, err := s.h.RecordSalaryPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	metrics.SalaryPaymentsTotal.Inc()
	return ctx.JSON(http.StatusCreated, SalaryPaymentResponse{
		ID:        payment.ID().String(),
		PaidBy:    payment.PaidBy().String(),
		PaidAt:    payment.PaidAt(),
		Statement: toStatement(statement),
	})
}
