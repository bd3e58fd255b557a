package http

import (
	"net/http"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/metrics"

	"github.com/labstack/echo/v4"
)

// BookParcel handles POST /api/v1/parcels.
func (s *Server) BookParcel(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req BookParcelRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	brandID, err := kernel.UUIDFromString(req.BrandID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewBookParcelCommand(actor, brandID, req.PickupLocation,
		parcel.Recipient{
			Name:    req.Recipient.Name,
			Phone:   req.Recipient.Phone,
			Address: req.Recipient.Address,
			City:    req.Recipient.City,
		},
		req.OrderRef, req.ItemDescription, req.Instructions, req.CODAmount, req.Weight)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.h.BookParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	metrics.ParcelTransitionsTotal.WithLabelValues(p.Status().String()).Inc()
	return ctx.JSON(http.StatusCreated, toParcel(p))
}

// DeleteParcel handles DELETE /api/v1/parcels/:id.
func (s *Server) DeleteParcel(ctx echo.Context) error {
	actor, id, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteParcelCommand(actor, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.h.DeleteParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// TransitionParcel handles POST /api/v1/parcels/:id/transitions.
func (s *Server) TransitionParcel(ctx echo.Context) error {
	actor, id, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req TransitionRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	target, input, err := req.toInput()
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewTransitionParcelCommand(actor, id, target, input)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.h.TransitionParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		metrics.TransitionRejectionsTotal.WithLabelValues(metrics.ErrorKind(err)).Inc()
		return s.fail(ctx, err)
	}
	metrics.ParcelTransitionsTotal.WithLabelValues(p.Status().String()).Inc()
	return ctx.JSON(http.StatusOK, toParcel(p))
}

// BulkTransition handles POST /api/v1/parcels/transitions/bulk. Items fail
// independently, so the response is 200 with one outcome per parcel.
func (s *Server) BulkTransition(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req BulkTransitionRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	ids, err := kernel.UUIDsFromStrings(req.ParcelIDs)
	if err != nil {
		return s.fail(ctx, err)
	}
	target, input, err := req.toInput()
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewBulkTransitionCommand(actor, ids, target, input)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.BulkTransition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	for _, o := range res.Outcomes {
		if o.Err != nil {
			metrics.TransitionRejectionsTotal.WithLabelValues(metrics.ErrorKind(o.Err)).Inc()
			continue
		}
		metrics.ParcelTransitionsTotal.WithLabelValues(target.String()).Inc()
	}
	return ctx.JSON(http.StatusOK, toBulkResponse(res))
}

// AddRemark handles POST /api/v1/parcels/:id/remarks.
func (s *Server) AddRemark(ctx echo.Context) error {
	actor, id, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req RemarkRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAddRemarkCommand(actor, id, req.Remark)
	if err != nil {
		return s.fail(ctx, err)
	}
	p, err := s.h.AddRemark.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toParcel(p))
}

// CreateExchange handles POST /api/v1/parcels/:id/exchange.
func (s *Server) CreateExchange(ctx echo.Context) error {
	actor, id, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req CreateExchangeRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateExchangeCommand(actor, id, req.toOrder())
	if err != nil {
		return s.fail(ctx, err)
	}
	pair, err := s.h.CreateExchange.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, ExchangeResponse{
		Outbound: toParcel(pair.Outbound),
		Return:   toParcel(pair.Return),
	})
}

// CompleteExchange handles POST /api/v1/parcels/:id/exchange/complete, where
// :id is the outbound parcel.
func (s *Server) CompleteExchange(ctx echo.Context) error {
	actor, id, err := actorAndPathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req CompleteExchangeRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCompleteExchangeCommand(actor, id, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}
	pair, err := s.h.CompleteExchange.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		metrics.TransitionRejectionsTotal.WithLabelValues(metrics.ErrorKind(err)).Inc()
		return s.fail(ctx, err)
	}
	metrics.ParcelTransitionsTotal.WithLabelValues(pair.Outbound.Status().String()).Inc()
	metrics.ParcelTransitionsTotal.WithLabelValues(pair.Return.Status().String()).Inc()
	return ctx.JSON(http.StatusOK, ExchangeResponse{
		Outbound: toParcel(pair.Outbound),
		Return:   toParcel(pair.Return),
	})
}
