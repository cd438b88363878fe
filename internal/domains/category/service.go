package category

import "context"

// Service maps every category operation to its backend call. Deletion of a
// referenced category is blocked by the backend, not checked here.
type Service interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int64) (*Category, error)
	SearchByName(ctx context.Context, name string) ([]Category, error)
	Create(ctx context.Context, req SaveCategoryReq) (*Category, error)
	Update(ctx context.Context, id int64, req SaveCategoryReq) (*Category, error)
	Delete(ctx context.Context, id int64) error
}
