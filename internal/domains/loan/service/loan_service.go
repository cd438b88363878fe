package service

import (
	"context"
	"fmt"

	"biblioteca-console/internal/domains/loan"
	"biblioteca-console/internal/gateway"
)

type loanServiceImpl struct {
	api *gateway.Client
}

func NewLoanService(api *gateway.Client) loan.Service {
	return &loanServiceImpl{api: api}
}

func (s *loanServiceImpl) List(ctx context.Context) ([]loan.Loan, error) {
	var loans []loan.Loan
	if err := s.api.Get(ctx, "/prestamos", &loans); err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

func (s *loanServiceImpl) Get(ctx context.Context, id int64) (*loan.Loan, error) {
	var l loan.Loan
	if err := s.api.Get(ctx, fmt.Sprintf("/prestamos/%d", id), &l); err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &l, nil
}

func (s *loanServiceImpl) Active(ctx context.Context) ([]loan.Loan, error) {
	var loans []loan.Loan
	if err := s.api.Get(ctx, "/prestamos/activos", &loans); err != nil {
		return nil, fmt.Errorf("active loans: %w", err)
	}
	return loans, nil
}

func (s *loanServiceImpl) ActiveByMember(ctx context.Context, memberID int64) ([]loan.Loan, error) {
	var loans []loan.Loan
	if err := s.api.Get(ctx, fmt.Sprintf("/prestamos/socio/%d/activos", memberID), &loans); err != nil {
		return nil, fmt.Errorf("active loans by member: %w", err)
	}
	return loans, nil
}

func (s *loanServiceImpl) Overdue(ctx context.Context) ([]loan.Loan, error) {
	var loans []loan.Loan
	if err := s.api.Get(ctx, "/prestamos/retraso", &loans); err != nil {
		return nil, fmt.Errorf("overdue loans: %w", err)
	}
	return loans, nil
}

func (s *loanServiceImpl) Create(ctx context.Context, req loan.CreateLoanReq) (*loan.Loan, error) {
	var created loan.Loan
	if err := s.api.Post(ctx, "/prestamos", req, &created); err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}
	return &created, nil
}

func (s *loanServiceImpl) Return(ctx context.Context, id int64, req loan.ReturnLoanReq) (*loan.Loan, error) {
	var returned loan.Loan
	if err := s.api.Put(ctx, fmt.Sprintf("/prestamos/%d/devolucion", id), req, &returned); err != nil {
		return nil, fmt.Errorf("return loan: %w", err)
	}
	return &returned, nil
}

func (s *loanServiceImpl) Renew(ctx context.Context, id int64, req loan.RenewLoanReq) (*loan.Loan, error) {
	var renewed loan.Loan
	if err := s.api.Put(ctx, fmt.Sprintf("/prestamos/%d/renovar", id), req, &renewed); err != nil {
		return nil, fmt.Errorf("renew loan: %w", err)
	}
	return &renewed, nil
}
