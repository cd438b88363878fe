package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"biblioteca-console/internal/domains/fine"
	"biblioteca-console/internal/gateway"
)

type fineServiceImpl struct {
	api *gateway.Client
}

func NewFineService(api *gateway.Client) fine.Service {
	return &fineServiceImpl{api: api}
}

// createFinePayload is the wire shape the backend expects for a manual
// fine: the loan link, not the member, carries the association.
type createFinePayload struct {
	LoanID      int64           `json:"prestamoId"`
	Amount      decimal.Decimal `json:"monto"`
	Reason      string          `json:"motivo"`
	Description string          `json:"descripcion"`
}

func (s *fineServiceImpl) List(ctx context.Context) ([]fine.Fine, error) {
	var fines []fine.Fine
	if err := s.api.Get(ctx, "/multas", &fines); err != nil {
		return nil, fmt.Errorf("list fines: %w", err)
	}
	return fines, nil
}

func (s *fineServiceImpl) Get(ctx context.Context, id int64) (*fine.Fine, error) {
	var f fine.Fine
	if err := s.api.Get(ctx, fmt.Sprintf("/multas/%d", id), &f); err != nil {
		return nil, fmt.Errorf("get fine: %w", err)
	}
	return &f, nil
}

func (s *fineServiceImpl) Active(ctx context.Context) ([]fine.Fine, error) {
	var fines []fine.Fine
	if err := s.api.Get(ctx, "/multas/activas", &fines); err != nil {
		return nil, fmt.Errorf("active fines: %w", err)
	}
	return fines, nil
}

func (s *fineServiceImpl) ActiveByMember(ctx context.Context, memberID int64) ([]fine.Fine, error) {
	var fines []fine.Fine
	if err := s.api.Get(ctx, fmt.Sprintf("/multas/socio/%d/activas", memberID), &fines); err != nil {
		return nil, fmt.Errorf("active fines by member: %w", err)
	}
	return fines, nil
}

func (s *fineServiceImpl) Create(ctx context.Context, req fine.CreateFineReq) (*fine.Fine, error) {
	payload := createFinePayload{
		LoanID:      req.LoanID,
		Amount:      req.Amount,
		Reason:      req.Reason,
		Description: req.Description,
	}

	var created fine.Fine
	if err := s.api.Post(ctx, "/multas", payload, &created); err != nil {
		return nil, fmt.Errorf("create fine: %w", err)
	}
	return &created, nil
}

func (s *fineServiceImpl) GenerateForLoan(ctx context.Context, loanID int64) (*fine.Fine, error) {
	var generated fine.Fine
	if err := s.api.Post(ctx, fmt.Sprintf("/multas/prestamo/%d/generar", loanID), nil, &generated); err != nil {
		return nil, fmt.Errorf("generate fine: %w", err)
	}
	return &generated, nil
}

func (s *fineServiceImpl) Pay(ctx context.Context, id int64) (*fine.Fine, error) {
	var paid fine.Fine
	if err := s.api.Put(ctx, fmt.Sprintf("/multas/%d/pagar", id), nil, &paid); err != nil {
		return nil, fmt.Errorf("pay fine: %w", err)
	}
	return &paid, nil
}

func (s *fineServiceImpl) PendingTotal(ctx context.Context, memberID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := s.api.Get(ctx, fmt.Sprintf("/multas/socio/%d/total-pendiente", memberID), &total); err != nil {
		return decimal.Zero, fmt.Errorf("pending total: %w", err)
	}
	return total, nil
}

func (s *fineServiceImpl) HasPending(ctx context.Context, memberID int64) (bool, error) {
	var pending bool
	if err := s.api.Get(ctx, fmt.Sprintf("/multas/socio/%d/tiene-pendientes", memberID), &pending); err != nil {
		return false, fmt.Errorf("has pending: %w", err)
	}
	return pending, nil
}
