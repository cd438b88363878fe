package book

import "context"

// Service maps every book operation to its backend call, including the
// read projections the loan form uses (disponibles, estado, disponible).
type Service interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (*Book, error)
	Available(ctx context.Context) ([]Book, error)
	ByState(ctx context.Context, state State) ([]Book, error)
	SearchByTitle(ctx context.Context, title string) ([]Book, error)
	SearchByAuthor(ctx context.Context, author string) ([]Book, error)
	CheckAvailability(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, req SaveBookReq) (*Book, error)
	Update(ctx context.Context, id int64, req SaveBookReq) (*Book, error)
	Delete(ctx context.Context, id int64) error
}
