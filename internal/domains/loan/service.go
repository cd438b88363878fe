package loan

import "context"

// Service maps every loan operation to its backend call. Due-date defaults
// and ordering checks happen in the workflow coordinator before Create is
// reached.
type Service interface {
	List(ctx context.Context) ([]Loan, error)
	Get(ctx context.Context, id int64) (*Loan, error)
	Active(ctx context.Context) ([]Loan, error)
	ActiveByMember(ctx context.Context, memberID int64) ([]Loan, error)
	Overdue(ctx context.Context) ([]Loan, error)
	Create(ctx context.Context, req CreateLoanReq) (*Loan, error)
	Return(ctx context.Context, id int64, req ReturnLoanReq) (*Loan, error)
	Renew(ctx context.Context, id int64, req RenewLoanReq) (*Loan, error)
}
