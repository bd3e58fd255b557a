package http

import (
	"context"
	"net/http"
	"strings"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/invoice"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/salary"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ActorHeader carries the id of the authenticated user. Authentication
// happens upstream; the application loads the user record behind the id.
const ActorHeader = "X-Actor-ID"

// Use case contracts the server depends on. The concrete handlers in the
// commands and queries packages satisfy them.
type (
	BookParcelHandler interface {
		Handle(ctx context.Context, cmd commands.BookParcelCommand) (*parcel.Parcel, error)
	}
	DeleteParcelHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteParcelCommand) error
	}
	TransitionParcelHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionParcelCommand) (*parcel.Parcel, error)
	}
	BulkTransitionHandler interface {
		Handle(ctx context.Context, cmd commands.BulkTransitionCommand) (commands.BulkResult, error)
	}
	AddRemarkHandler interface {
		Handle(ctx context.Context, cmd commands.AddRemarkCommand) (*parcel.Parcel, error)
	}
	CreateExchangeHandler interface {
		Handle(ctx context.Context, cmd commands.CreateExchangeCommand) (parcel.ExchangePair, error)
	}
	CompleteExchangeHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteExchangeCommand) (parcel.ExchangePair, error)
	}
	ReconcileCODHandler interface {
		Handle(ctx context.Context, cmd commands.ReconcileCODCommand) (services.ReconciliationResult, error)
	}
	UpdateDriverLocationHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDriverLocationCommand) error
	}
	SetDriverDutyHandler interface {
		Handle(ctx context.Context, cmd commands.SetDriverDutyCommand) (*user.User, error)
	}
	GenerateInvoiceHandler interface {
		Handle(ctx context.Context, cmd commands.GenerateInvoiceCommand) (*invoice.Invoice, error)
	}
	MarkInvoicePaidHandler interface {
		Handle(ctx context.Context, cmd commands.MarkInvoicePaidCommand) (*invoice.Invoice, error)
	}
	RecordSalaryPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.RecordSalaryPaymentCommand) (*salary.Payment, salary.Statement, error)
	}
	UnreconciledParcelsHandler interface {
		Handle(ctx context.Context, q queries.GetUnreconciledParcelsQuery) (queries.GetUnreconciledParcelsQueryResponse, error)
	}
	PendingPayoutsHandler interface {
		Handle(ctx context.Context, q queries.GetPendingPayoutsQuery) ([]queries.PendingPayout, error)
	}
	ComputeCommissionHandler interface {
		Handle(ctx context.Context, q queries.ComputeCommissionQuery) (queries.ComputeCommissionQueryResponse, error)
	}
)

// Handlers groups every use case exposed over HTTP.
type Handlers struct {
	BookParcel          BookParcelHandler
	DeleteParcel        DeleteParcelHandler
	TransitionParcel    TransitionParcelHandler
	BulkTransition      BulkTransitionHandler
	AddRemark           AddRemarkHandler
	CreateExchange      CreateExchangeHandler
	CompleteExchange    CompleteExchangeHandler
	ReconcileCOD        ReconcileCODHandler
	UpdateLocation      UpdateDriverLocationHandler
	SetDuty             SetDriverDutyHandler
	GenerateInvoice     GenerateInvoiceHandler
	MarkInvoicePaid     MarkInvoicePaidHandler
	RecordSalaryPayment RecordSalaryPaymentHandler
	UnreconciledParcels UnreconciledParcelsHandler
	PendingPayouts      PendingPayoutsHandler
	ComputeCommission   ComputeCommissionHandler
}

// Server translates HTTP requests into commands and queries and maps the
// results back to JSON.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

func NewServer(h Handlers, logger *zap.Logger) *Server {
	return &Server{h: h, logger: logger.With(zap.String("component", "http"))}
}

// RegisterRoutes mounts the API, /health and /metrics on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(RequestLogger(s.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	api.POST("/parcels", s.BookParcel)
	api.DELETE("/parcels/:id", s.DeleteParcel)
	api.POST("/parcels/transitions/bulk", s.BulkTransition)
	api.POST("/parcels/:id/transitions", s.TransitionParcel)
	api.POST("/parcels/:id/remarks", s.AddRemark)
	api.POST("/parcels/:id/exchange", s.CreateExchange)
	api.POST("/parcels/:id/exchange/complete", s.CompleteExchange)

	api.GET("/drivers/:id/unreconciled", s.GetUnreconciledParcels)
	api.POST("/drivers/:id/reconciliations", s.ReconcileCOD)
	api.PUT("/drivers/:id/location", s.UpdateDriverLocation)
	api.PUT("/drivers/:id/duty", s.SetDriverDuty)

	api.GET("/payouts/pending", s.GetPendingPayouts)
	api.POST("/invoices", s.GenerateInvoice)
	api.POST("/invoices/:id/pay", s.MarkInvoicePaid)

	api.GET("/users/:id/commission", s.GetCommission)
	api.POST("/users/:id/salary-payments", s.RecordSalaryPayment)
}

func actorID(ctx echo.Context) (kernel.UUID, error) {
	raw := strings.TrimSpace(ctx.Request().Header.Get(ActorHeader))
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(ActorHeader)
	}
	return kernel.UUIDFromString(raw)
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// actorAndPathID reads the two ids nearly every route needs.
func actorAndPathID(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	actor, err := actorID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	id, err := pathID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return actor, id, nil
}

func bind(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}
