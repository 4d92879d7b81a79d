package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/metrics"
	"github.com/mmynk/splitbill/internal/models"
)

const transport = "connect"

// FormatDateRequest asks for the display form of an ISO date.
type FormatDateRequest struct {
	Date string `json:"date"`
}

// FormatDateResponse holds the formatted date.
type FormatDateResponse struct {
	Formatted string `json:"formatted"`
}

// CalculateTipRequest asks for the tip on a subtotal.
type CalculateTipRequest struct {
	SubTotal      decimal.Decimal `json:"subTotal"`
	TipPercentage decimal.Decimal `json:"tipPercentage"`
}

// CalculateTipResponse holds the rounded tip and the resulting total.
type CalculateTipResponse struct {
	Tip         decimal.Decimal `json:"tip"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// SplitService implements the Connect SplitService
type SplitService struct {
	metrics *metrics.Metrics
}

// NewSplitService creates a new SplitService. m may be nil to disable metrics.
func NewSplitService(m *metrics.Metrics) *SplitService {
	return &SplitService{metrics: m}
}

// SplitBill handles bill split calculation
func (s *SplitService) SplitBill(ctx context.Context, req *connect.Request[models.BillInput]) (*connect.Response[models.BillOutput], error) {
	for i, item := range req.Msg.Items {
		slog.Debug("Processing item",
			"index", i+1,
			"name", item.Name,
			"price", item.Price,
			"shared", item.IsShared,
			"person", item.Person,
		)
	}

	split, err := calculator.Calculate(*req.Msg)
	if err != nil {
		if errors.Is(err, calculator.ErrNoPersons) {
			s.metrics.ObserveFailure(transport, metrics.OutcomeInvalid)
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		s.metrics.ObserveFailure(transport, metrics.OutcomeError)
		slog.Error("SplitBill failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	for _, person := range split.Output.Items {
		slog.Debug("Person share", "person", person.Name, "amount", person.Amount)
	}
	slog.Debug("Bill split",
		"location", split.Output.Location,
		"total", split.Output.TotalAmount,
		"persons", len(split.Output.Items),
		"reconciliation", split.Reconciliation,
		"difference", split.Difference,
		"adjustment", split.Adjustment,
		"finalDifference", split.FinalDifference,
	)
	s.metrics.ObserveSplit(transport, split.Reconciliation.String(), len(split.Output.Items))

	return connect.NewResponse(&split.Output), nil
}

// FormatDate handles date formatting
func (s *SplitService) FormatDate(ctx context.Context, req *connect.Request[FormatDateRequest]) (*connect.Response[FormatDateResponse], error) {
	return connect.NewResponse(&FormatDateResponse{
		Formatted: calculator.FormatDate(req.Msg.Date),
	}), nil
}

// CalculateTip handles tip calculation
func (s *SplitService) CalculateTip(ctx context.Context, req *connect.Request[CalculateTipRequest]) (*connect.Response[CalculateTipResponse], error) {
	tip := calculator.CalculateTip(req.Msg.SubTotal, req.Msg.TipPercentage)
	return connect.NewResponse(&CalculateTipResponse{
		Tip:         tip,
		TotalAmount: req.Msg.SubTotal.Add(tip),
	}), nil
}
