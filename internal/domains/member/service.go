package member

import "context"

// Service maps every member operation to its backend call. Number
// allocation lives in the workflow coordinator, not here.
type Service interface {
	List(ctx context.Context) ([]Member, error)
	Get(ctx context.Context, id int64) (*Member, error)
	ByDNI(ctx context.Context, dni string) (*Member, error)
	ByNumber(ctx context.Context, number int64) (*Member, error)
	SearchByName(ctx context.Context, name string) ([]Member, error)
	HasActiveLoans(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, req CreateMemberReq) (*Member, error)
	Update(ctx context.Context, id int64, req UpdateMemberReq) (*Member, error)
	Delete(ctx context.Context, id int64) error
}
