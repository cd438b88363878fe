package fine

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service maps every fine operation to its backend call. Payment is a
// single irreversible operation: no partials, no unpay.
type Service interface {
	List(ctx context.Context) ([]Fine, error)
	Get(ctx context.Context, id int64) (*Fine, error)
	Active(ctx context.Context) ([]Fine, error)
	ActiveByMember(ctx context.Context, memberID int64) ([]Fine, error)
	Create(ctx context.Context, req CreateFineReq) (*Fine, error)
	GenerateForLoan(ctx context.Context, loanID int64) (*Fine, error)
	Pay(ctx context.Context, id int64) (*Fine, error)
	PendingTotal(ctx context.Context, memberID int64) (decimal.Decimal, error)
	HasPending(ctx context.Context, memberID int64) (bool, error)
}
